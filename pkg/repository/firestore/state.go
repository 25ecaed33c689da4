package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultCollection is the collection holding state documents
	DefaultCollection = "jsmconf_states"
	// DefaultDocument is the state document ID used when none is given
	DefaultDocument = "default"
)

// StateRepository stores the state record in one Firestore document.
// The record is kept as its JSON encoding so every backend stores identical bytes.
type StateRepository struct {
	client     *firestore.Client
	collection string
	document   string
}

var _ interfaces.StateRepository = &StateRepository{}

type stateDoc struct {
	Payload   string    `firestore:"payload"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// Option is a functional option for StateRepository
type Option func(*StateRepository)

// WithCollection overrides the collection name
func WithCollection(name string) Option {
	return func(r *StateRepository) {
		r.collection = name
	}
}

// WithDocument overrides the state document ID
func WithDocument(name string) Option {
	return func(r *StateRepository) {
		if name != "" {
			r.document = name
		}
	}
}

// New creates a Firestore backed state repository. The caller must call Close.
func New(ctx context.Context, projectID, databaseID string, clientOpts []option.ClientOption, opts ...Option) (*StateRepository, error) {
	if projectID == "" {
		return nil, goerr.New("project ID is required for firestore state backend")
	}
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	r := &StateRepository{
		client:     client,
		collection: DefaultCollection,
		document:   DefaultDocument,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *StateRepository) docRef() *firestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(r.document)
}

func (r *StateRepository) Load(ctx context.Context) (*model.StateRecord, error) {
	doc, err := r.docRef().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrStateNotFound, "state document not found", goerr.V("document", r.document))
		}
		return nil, goerr.Wrap(err, "failed to get state document", goerr.V("document", r.document))
	}

	var d stateDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal state document", goerr.V("document", r.document))
	}

	return model.UnmarshalState([]byte(d.Payload))
}

func (r *StateRepository) Save(ctx context.Context, rec *model.StateRecord) error {
	data, err := model.MarshalState(rec)
	if err != nil {
		return err
	}

	d := &stateDoc{
		Payload:   string(data),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.docRef().Set(ctx, d); err != nil {
		return goerr.Wrap(err, "failed to save state document", goerr.V("document", r.document))
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context) error {
	if _, err := r.docRef().Delete(ctx); err != nil && status.Code(err) != codes.NotFound {
		return goerr.Wrap(err, "failed to delete state document", goerr.V("document", r.document))
	}
	return nil
}

// Close releases the Firestore client
func (r *StateRepository) Close() error {
	return r.client.Close()
}
