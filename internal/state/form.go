package state

import (
	"maps"
	"sync"
)

// Values maps field names to their current values.
type Values map[string]any

// FieldEvent is a single-field edit, the equivalent of an input change.
type FieldEvent struct {
	Name  string
	Value any
}

// Rule validates one field. A non-empty return is the field's error message.
type Rule func(value any) string

// Form holds editable field values and per-field error messages.
// Editing a field clears that field's error.
type Form struct {
	mu      sync.Mutex
	initial Values
	values  Values
	errors  map[string]string
}

// NewForm creates a form seeded with initial. initial is copied.
func NewForm(initial Values) *Form {
	return &Form{
		initial: maps.Clone(initial),
		values:  cloneValues(initial),
		errors:  make(map[string]string),
	}
}

func cloneValues(v Values) Values {
	if v == nil {
		return Values{}
	}
	return maps.Clone(v)
}

// HandleChange applies a field edit.
func (f *Form) HandleChange(e FieldEvent) {
	f.SetFieldValue(e.Name, e.Value)
}

// HandleSelectChange applies a selection made in a picker.
func (f *Form) HandleSelectChange(name string, value any) {
	f.SetFieldValue(name, value)
}

// SetFieldValue writes one field and clears its error.
func (f *Form) SetFieldValue(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	delete(f.errors, name)
}

// SetFieldError records an error message for one field.
func (f *Form) SetFieldError(name, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if message == "" {
		delete(f.errors, name)
		return
	}
	f.errors[name] = message
}

// ResetForm replaces all values and clears all errors. With no argument the
// construction-time values are restored; otherwise the first argument
// becomes the new value set.
func (f *Form) ResetForm(newValues ...Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(newValues) > 0 {
		f.values = cloneValues(newValues[0])
	} else {
		f.values = cloneValues(f.initial)
	}
	f.errors = make(map[string]string)
}

// Validate runs every rule against its field's current value and replaces
// the whole error set with the result. Fields without a rule end up with no
// error. It reports whether no rule produced an error.
func (f *Form) Validate(rules map[string]Rule) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string)
	for name, rule := range rules {
		if msg := rule(f.values[name]); msg != "" {
			errs[name] = msg
		}
	}
	f.errors = errs
	return len(errs) == 0
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.values)
}

// Value returns one field's value.
func (f *Form) Value(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// String returns a field as a string, "" when unset or not a string.
func (f *Form) String(name string) string {
	s, _ := f.Value(name).(string)
	return s
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Error returns one field's error, "" when none.
func (f *Form) Error(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name]
}
