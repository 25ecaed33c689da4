package usecase_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/jsmconf/pkg/service/jira"
)

type fakeField struct {
	id       string
	name     string
	typ      string
	contexts []string
	options  []*jira.CustomFieldOption
	defaults []*jira.DefaultValue
}

// fakeJira is an in-memory Jira custom field API
type fakeJira struct {
	mu     sync.Mutex
	nextID int
	fields map[string]*fakeField
	order  []string

	// failure injection
	failCreate       map[string]bool // by field name
	failDelete       map[string]bool // by field ID
	failListContexts bool
	autoContext      bool

	defaultPuts  []*jira.DefaultValue
	optionPosts  [][]*jira.OptionInput
	contextPosts int
	deleteCalls  []string
	searchCalls  int
}

func newFakeJira() *fakeJira {
	return &fakeJira{
		nextID:     10000,
		fields:     make(map[string]*fakeField),
		failCreate: make(map[string]bool),
		failDelete: make(map[string]bool),
	}
}

// start serves the fake and returns a Jira service pointing at it
func (f *fakeJira) start(t *testing.T) jira.Service {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/rest/api/3", func(r chi.Router) {
		r.Post("/field", f.createField)
		r.Get("/field/search", f.searchFields)
		r.Delete("/field/{fieldID}", f.deleteField)
		r.Get("/field/{fieldID}/context", f.listContexts)
		r.Post("/field/{fieldID}/context", f.createContext)
		r.Get("/field/{fieldID}/context/defaultValue", f.getDefaults)
		r.Put("/field/{fieldID}/context/defaultValue", f.putDefaults)
		r.Get("/field/{fieldID}/context/{contextID}/option", f.listOptions)
		r.Post("/field/{fieldID}/context/{contextID}/option", f.createOptions)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	svc, err := jira.New("example.atlassian.net", "bot@example.com", "api-token", jira.WithBaseURL(srv.URL+"/rest/api/3"))
	gt.NoError(t, err).Required()
	return svc
}

func (f *fakeJira) newID() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

// addField registers a field directly, bypassing the API
func (f *fakeJira) addField(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := "customfield_" + f.newID()
	f.fields[id] = &fakeField{id: id, name: name}
	f.order = append(f.order, id)
	return id
}

func (f *fakeJira) hasField(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.fields[id]
	return ok
}

func (f *fakeJira) fieldByName(name string) *fakeField {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fld := range f.fields {
		if fld.name == name {
			return fld
		}
	}
	return nil
}

func (f *fakeJira) lookup(w http.ResponseWriter, r *http.Request) *fakeField {
	fld, ok := f.fields[chi.URLParam(r, "fieldID")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"errorMessages": []string{"field not found"}})
		return nil
	}
	return fld
}

func (f *fakeJira) createField(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var req jira.CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{err.Error()}})
		return
	}
	if f.failCreate[req.Name] {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{"field creation rejected"}})
		return
	}

	fld := &fakeField{id: "customfield_" + f.newID(), name: req.Name, typ: req.Type}
	if f.autoContext {
		fld.contexts = append(fld.contexts, f.newID())
	}
	f.fields[fld.id] = fld
	f.order = append(f.order, fld.id)

	writeJSON(w, http.StatusCreated, jira.Field{ID: fld.id, Name: fld.name})
}

func (f *fakeJira) searchFields(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++

	q := strings.ToLower(r.URL.Query().Get("query"))
	startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

	var matched []*jira.Field
	for _, id := range f.order {
		fld, ok := f.fields[id]
		if ok && strings.Contains(strings.ToLower(fld.name), q) {
			matched = append(matched, &jira.Field{ID: fld.id, Name: fld.name})
		}
	}

	end := min(startAt+maxResults, len(matched))
	page := jira.FieldPage{StartAt: startAt, MaxResults: maxResults, Total: len(matched), Values: []*jira.Field{}}
	if startAt < len(matched) {
		page.Values = matched[startAt:end]
	}
	page.IsLast = end >= len(matched)

	writeJSON(w, http.StatusOK, page)
}

func (f *fakeJira) deleteField(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := chi.URLParam(r, "fieldID")
	f.deleteCalls = append(f.deleteCalls, id)

	if f.failDelete[id] {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"errorMessages": []string{"deletion failed"}})
		return
	}
	if f.lookup(w, r) == nil {
		return
	}

	delete(f.fields, id)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeJira) listContexts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failListContexts {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"errorMessages": []string{"boom"}})
		return
	}
	fld := f.lookup(w, r)
	if fld == nil {
		return
	}

	values := []jira.FieldContext{}
	for _, id := range fld.contexts {
		values = append(values, jira.FieldContext{ID: id, Name: "Default Context"})
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values, "isLast": true})
}

func (f *fakeJira) createContext(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld := f.lookup(w, r)
	if fld == nil {
		return
	}

	var req jira.CreateContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{err.Error()}})
		return
	}
	f.contextPosts++

	id := f.newID()
	fld.contexts = append(fld.contexts, id)
	writeJSON(w, http.StatusCreated, jira.FieldContext{ID: id, Name: req.Name})
}

func (f *fakeJira) listOptions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld := f.lookup(w, r)
	if fld == nil {
		return
	}

	startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
	if maxResults == 0 {
		maxResults = 100
	}

	end := min(startAt+maxResults, len(fld.options))
	values := []*jira.CustomFieldOption{}
	if startAt < len(fld.options) {
		values = fld.options[startAt:end]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"startAt":    startAt,
		"maxResults": maxResults,
		"isLast":     end >= len(fld.options),
		"values":     values,
	})
}

func (f *fakeJira) createOptions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld := f.lookup(w, r)
	if fld == nil {
		return
	}

	var req struct {
		Options []*jira.OptionInput `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{err.Error()}})
		return
	}
	f.optionPosts = append(f.optionPosts, req.Options)

	created := []*jira.CustomFieldOption{}
	for _, in := range req.Options {
		opt := &jira.CustomFieldOption{ID: f.newID(), Value: in.Value, ParentID: in.ParentID}
		fld.options = append(fld.options, opt)
		created = append(created, opt)
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": created})
}

func (f *fakeJira) getDefaults(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld := f.lookup(w, r)
	if fld == nil {
		return
	}
	values := fld.defaults
	if values == nil {
		values = []*jira.DefaultValue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values, "isLast": true})
}

func (f *fakeJira) putDefaults(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fld := f.lookup(w, r)
	if fld == nil {
		return
	}

	var req struct {
		DefaultValues []*jira.DefaultValue `json:"defaultValues"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorMessages": []string{err.Error()}})
		return
	}

	f.defaultPuts = append(f.defaultPuts, req.DefaultValues...)
	fld.defaults = req.DefaultValues
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		panic(fmt.Sprintf("failed to encode fake response: %v", err))
	}
}
