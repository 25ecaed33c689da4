package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/jsmconf/pkg/domain/interfaces"
	"github.com/secmon-lab/jsmconf/pkg/domain/model"
	"github.com/secmon-lab/jsmconf/pkg/utils/safe"
	"google.golang.org/api/option"
)

// DefaultObject is the object name used when none is given
const DefaultObject = "jsmconf/state.json"

// StateRepository stores the state record as a JSON object in a Cloud Storage bucket
type StateRepository struct {
	client *storage.Client
	bucket string
	object string
}

var _ interfaces.StateRepository = &StateRepository{}

// New creates a Cloud Storage backed state repository. The caller must call Close.
func New(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*StateRepository, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required for gcs state backend")
	}
	if object == "" {
		object = DefaultObject
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &StateRepository{
		client: client,
		bucket: bucket,
		object: object,
	}, nil
}

func (r *StateRepository) handle() *storage.ObjectHandle {
	return r.client.Bucket(r.bucket).Object(r.object)
}

func (r *StateRepository) Load(ctx context.Context) (*model.StateRecord, error) {
	reader, err := r.handle().NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(model.ErrStateNotFound, "state object not found",
				goerr.V("bucket", r.bucket), goerr.V("object", r.object))
		}
		return nil, goerr.Wrap(err, "failed to open state object",
			goerr.V("bucket", r.bucket), goerr.V("object", r.object))
	}
	defer safe.Close(ctx, reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read state object",
			goerr.V("bucket", r.bucket), goerr.V("object", r.object))
	}

	return model.UnmarshalState(data)
}

func (r *StateRepository) Save(ctx context.Context, rec *model.StateRecord) error {
	data, err := model.MarshalState(rec)
	if err != nil {
		return err
	}

	w := r.handle().NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write state object",
			goerr.V("bucket", r.bucket), goerr.V("object", r.object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize state object",
			goerr.V("bucket", r.bucket), goerr.V("object", r.object))
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context) error {
	if err := r.handle().Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return goerr.Wrap(err, "failed to delete state object",
			goerr.V("bucket", r.bucket), goerr.V("object", r.object))
	}
	return nil
}

// Close releases the storage client
func (r *StateRepository) Close() error {
	return r.client.Close()
}
