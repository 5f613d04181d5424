package finance

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// LedgerStore reads and writes ledger fields by account key.
//
// Stores make no atomicity promise across several Set calls, and callers
// assume they are the only writer for the duration of a run.
type LedgerStore interface {
	// Get returns the value of key, or a *FieldNotFoundError when the key is
	// absent or its value is not a number.
	Get(ctx context.Context, key string) (decimal.Decimal, error)
	Set(ctx context.Context, key string, value decimal.Decimal) error
}

// FieldNotFoundError reports a ledger field that could not be read.
type FieldNotFoundError struct {
	Key string
	Err error // underlying cause, if any.
}

func (e *FieldNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger field %q not found: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("ledger field %q not found", e.Key)
}

func (e *FieldNotFoundError) Unwrap() error { return e.Err }

// MemoryStore is a LedgerStore held in memory.
type MemoryStore struct {
	fields map[string]decimal.Decimal
}

// NewMemoryStore returns a store initialized with a copy of fields.
func NewMemoryStore(fields map[string]decimal.Decimal) *MemoryStore {
	s := &MemoryStore{fields: make(map[string]decimal.Decimal, len(fields))}
	maps.Copy(s.fields, fields)
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (decimal.Decimal, error) {
	v, ok := s.fields[key]
	if !ok {
		return decimal.Decimal{}, &FieldNotFoundError{Key: key}
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value decimal.Decimal) error {
	s.fields[key] = value
	return nil
}

// Keys returns the stored keys, sorted.
func (s *MemoryStore) Keys() []string { return slices.Sorted(maps.Keys(s.fields)) }

// binding associates a ledger key with the Amount it is loaded into.
type binding struct {
	key string
	dst *Amount
}

// load reads every binding from the store, in order.
//
// A missing field does not stop the load: its Amount is left untouched, its
// key is returned in missing and the returned error joins one
// *FieldNotFoundError per missing key. A missing figure is never replaced by
// zero. Any other store error aborts the load and is returned with a nil
// missing.
func load(ctx context.Context, store LedgerStore, bindings []binding) (missing []string, err error) {
	var errs []error
	for _, b := range bindings {
		v, err := store.Get(ctx, b.key)
		if err != nil {
			var nf *FieldNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("reading %s: %w", b.key, err)
			}
			missing = append(missing, b.key)
			errs = append(errs, err)
			continue
		}
		*b.dst = A(v)
	}
	return missing, errors.Join(errs...)
}
