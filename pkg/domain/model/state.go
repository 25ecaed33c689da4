package model

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// ErrStateNotFound is returned by state repositories when no state has been saved yet
var ErrStateNotFound = goerr.New("state not found")

// StateRecord is the durable record of custom fields created by jsmconf, keyed by generated field name
type StateRecord struct {
	CustomFields map[string]*RemoteField `json:"custom_fields"`
}

// NewStateRecord creates an empty state record
func NewStateRecord() *StateRecord {
	return &StateRecord{CustomFields: make(map[string]*RemoteField)}
}

// IsEmpty reports whether the record tracks no custom field
func (s *StateRecord) IsEmpty() bool {
	return s == nil || len(s.CustomFields) == 0
}

// Names returns the tracked field names in sorted order
func (s *StateRecord) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.CustomFields))
}

// MarshalState encodes a state record as 2-space indented JSON
func MarshalState(rec *StateRecord) ([]byte, error) {
	if rec == nil || rec.CustomFields == nil {
		rec = NewStateRecord()
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode state")
	}
	return data, nil
}

// UnmarshalState decodes a state record. A record without custom_fields decodes as empty.
func UnmarshalState(data []byte) (*StateRecord, error) {
	var rec StateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode state")
	}
	if rec.CustomFields == nil {
		rec.CustomFields = make(map[string]*RemoteField)
	}
	return &rec, nil
}
