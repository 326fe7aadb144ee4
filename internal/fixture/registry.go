// Package fixture holds the in-memory fixture being built: tagged records,
// the per-type identifier counters that number them, and the JSON file format
// they are written to.
package fixture

import (
	"errors"
	"fmt"
)

// ErrUnknownCounter is returned when a record is registered under a counter
// key the registry was not created with.
var ErrUnknownCounter = errors.New("unknown counter key")

// ErrRecordNotFound is returned by Find when no record matches.
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateRecord is returned when two counter keys would hand out the same
// pk for one model.
var ErrDuplicateRecord = errors.New("duplicate record")

// Record is one fixture entry.
type Record struct {
	Model  string  `json:"model"`
	PK     int64   `json:"pk"`
	Fields *Fields `json:"fields"`
}

type recordKey struct {
	model string
	pk    int64
}

// Registry collects records in registration order and numbers them with one
// monotonically increasing counter per key. It is not safe for concurrent use.
type Registry struct {
	records  []Record
	counters map[string]int64  // counter key -> next pk
	index    map[recordKey]int // (model, pk) -> position in records
	perModel map[string]int    // model -> record count
}

// NewRegistry creates a registry with one counter per key, each starting at 1.
func NewRegistry(keys ...string) *Registry {
	counters := make(map[string]int64, len(keys))
	for _, k := range keys {
		counters[k] = 1
	}
	return &Registry{
		counters: counters,
		index:    make(map[recordKey]int),
		perModel: make(map[string]int),
	}
}

// Add assigns the next identifier of counter key to a new record of the given
// model, appends it, and returns the identifier. Field contents are not
// validated. The registry takes ownership of fields; callers must not modify
// them afterwards.
func (r *Registry) Add(model string, fields *Fields, key string) (int64, error) {
	pk, ok := r.counters[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCounter, key)
	}

	rk := recordKey{model: model, pk: pk}
	if _, exists := r.index[rk]; exists {
		return 0, fmt.Errorf("%w: %s pk=%d", ErrDuplicateRecord, model, pk)
	}

	if fields == nil {
		fields = NewFields()
	}

	r.counters[key] = pk + 1
	r.index[rk] = len(r.records)
	r.perModel[model]++
	r.records = append(r.records, Record{Model: model, PK: pk, Fields: fields})

	return pk, nil
}

// Find returns the record of model with the given pk.
func (r *Registry) Find(model string, pk int64) (Record, error) {
	i, ok := r.index[recordKey{model: model, pk: pk}]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s pk=%d", ErrRecordNotFound, model, pk)
	}
	return r.records[i], nil
}

// Records returns the registered records in registration order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of registered records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Counts returns the number of records per model.
func (r *Registry) Counts() map[string]int {
	out := make(map[string]int, len(r.perModel))
	for m, n := range r.perModel {
		out[m] = n
	}
	return out
}
