package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/stembase/mading/pkg/api"
)

// FormMode distinguishes create from edit.
type FormMode int

const (
	// FormCreate submits a new entity.
	FormCreate FormMode = iota
	// FormEdit updates an existing entity.
	FormEdit
)

// SubmitFunc sends the form's payload to the API. It receives the form
// so it can read values, mode, entity id and any attached file.
type SubmitFunc func(ctx context.Context, f *Form) error

// Form owns a modal form's state: create-vs-edit mode, field values,
// the entity being edited, and a form-local error message. On a
// successful submit it triggers the owning list's refresh and resets.
type Form struct {
	mu       sync.Mutex
	submit   SubmitFunc
	fallback string
	required []string

	open     bool
	mode     FormMode
	entityID int
	values   map[string]string
	file     *api.Upload
	errMsg   string

	onSaved   func()
	editGuard func() error
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithOnSaved registers the owning list's refresh callback, invoked
// after every successful submit.
func WithOnSaved(fn func()) FormOption {
	return func(f *Form) { f.onSaved = fn }
}

// WithEditGuard registers a precondition for opening the edit form,
// e.g. requiring the category collection to be loaded first.
func WithEditGuard(fn func() error) FormOption {
	return func(f *Form) { f.editGuard = fn }
}

// NewForm creates a Form. required lists the fields whose presence is
// validated before submit; fallback is the generic failure message.
func NewForm(required []string, fallback string, submit SubmitFunc, opts ...FormOption) *Form {
	f := &Form{
		submit:   submit,
		fallback: fallback,
		required: required,
		values:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OpenCreate resets the form and opens it in create mode.
func (f *Form) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.mode = FormCreate
	f.open = true
}

// OpenEdit populates the form from an existing entity and opens it in
// edit mode. When the edit guard fails, the form stays closed and the
// guard's message becomes the form error.
func (f *Form) OpenEdit(entityID int, values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editGuard != nil {
		if err := f.editGuard(); err != nil {
			f.errMsg = err.Error()
			return err
		}
	}
	f.resetLocked()
	f.mode = FormEdit
	f.entityID = entityID
	for k, v := range values {
		f.values[k] = v
	}
	f.open = true
	return nil
}

// Close closes the form without submitting.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
}

// Open reports whether the modal is showing.
func (f *Form) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Mode returns the current form mode.
func (f *Form) Mode() FormMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// EntityID returns the id of the entity being edited, 0 in create mode.
func (f *Form) EntityID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entityID
}

// Set stores a field value.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
}

// Value reads a field value.
func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Attach adds a file upload to the next submit.
func (f *Form) Attach(file *api.Upload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.file = file
}

// File returns the attached upload, nil when none.
func (f *Form) File() *api.Upload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file
}

// Error returns the form-local error message.
func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Validate checks required-field presence only. Format and semantic
// validation stay with the server.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() error {
	for _, field := range f.required {
		if f.values[field] == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	return nil
}

// Submit validates and sends the form. On success the owning list's
// refresh callback runs, the form resets and closes. On failure the
// form stays open with a local error message set.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if err := f.validateLocked(); err != nil {
		f.errMsg = err.Error()
		f.mu.Unlock()
		return err
	}
	f.errMsg = ""
	f.mu.Unlock()

	if err := f.submit(ctx, f); err != nil {
		f.mu.Lock()
		f.errMsg = api.Message(err, f.fallback)
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	onSaved := f.onSaved
	f.resetLocked()
	f.open = false
	f.mu.Unlock()
	if onSaved != nil {
		onSaved()
	}
	return nil
}

func (f *Form) resetLocked() {
	f.mode = FormCreate
	f.entityID = 0
	f.values = make(map[string]string)
	f.file = nil
	f.errMsg = ""
}
