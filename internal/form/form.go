// Package form holds the state of an editable form: a value bag of type T,
// a dirty flag, and validation errors derived from the current values.
//
// Errors are never stored. Every call to Errors or Valid runs the validator
// against the values at that moment, so they cannot go stale after a Set or
// Reset.
package form

import "sync"

// Validator maps a value bag to field errors. It must be pure and total:
// an absent key means the field is valid.
type Validator[T any] func(T) Errors

// Form is a generic form state container. It is safe for concurrent use.
type Form[T any] struct {
	mu       sync.RWMutex
	initial  T
	values   T
	dirty    bool
	validate Validator[T]
}

// New returns a Form seeded with initial. validate may be nil, in which case
// the form is always valid.
func New[T any](initial T, validate Validator[T]) *Form[T] {
	return &Form[T]{
		initial:  initial,
		values:   initial,
		validate: validate,
	}
}

// Values returns the current value bag.
// Slices inside T are shared with the form; treat them as read-only and
// replace them through Set or Update.
func (f *Form[T]) Values() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values
}

// Dirty reports whether any field was set since construction or the last reset.
func (f *Form[T]) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty
}

// Errors returns the validation errors for the current values.
func (f *Form[T]) Errors() Errors {
	return f.Validate()
}

// Validate runs the validator against the current values and returns the
// result. It never returns nil.
func (f *Form[T]) Validate() Errors {
	values := f.Values()
	if f.validate == nil {
		return Errors{}
	}
	errs := f.validate(values)
	if errs == nil {
		return Errors{}
	}
	return errs
}

// Valid reports whether the current values produce no errors.
func (f *Form[T]) Valid() bool {
	return len(f.Validate()) == 0
}

// Update replaces the value bag with fn(current) and marks the form dirty.
// fn receives a copy and must return a new bag rather than mutate shared
// slices or maps of the old one.
func (f *Form[T]) Update(fn func(T) T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = fn(f.values)
	f.dirty = true
}

// Reset restores the initial value bag and clears the dirty flag.
func (f *Form[T]) Reset() {
	f.ResetTo(f.initial)
}

// ResetTo replaces the value bag with next and clears the dirty flag.
func (f *Form[T]) ResetTo(next T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = next
	f.dirty = false
}

// Field names one field of T and knows how to produce a new T with that
// field replaced. Apply must not modify its input.
type Field[T, V any] struct {
	Name  string
	Apply func(T, V) T
}

// Set replaces one field of the form's value bag, preserving all others,
// and marks the form dirty.
func Set[T, V any](f *Form[T], field Field[T, V], value V) {
	f.Update(func(current T) T {
		return field.Apply(current, value)
	})
}
