package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"
)

type SaveStatus string

const (
	StatusIdle    SaveStatus = "idle"
	StatusSaving  SaveStatus = "saving"
	StatusSuccess SaveStatus = "success"
	StatusError   SaveStatus = "error"
)

const DefaultSuccessWindow = 3 * time.Second

// EditorDescriptor describes one configuration kind to the generic DraftEditor.
// Identity hooks are nil for kinds without a name key (training).
type EditorDescriptor[T any] struct {
	Kind          string
	IdentityField string
	IdentityLabel string
	Identity      func(T) string
	SetIdentity   func(*T, string)
	Clone         func(T) T
	Validate      func(T) ValidationErrors
	Save          func(ctx context.Context, draft T, key ConfigKey) (T, ConfigKey, error)
}

type EditorState[T any] struct {
	Key       ConfigKey        `json:"-"`
	Draft     T                `json:"draft"`
	Dirty     bool             `json:"dirty"`
	Status    SaveStatus       `json:"status"`
	Errors    ValidationErrors `json:"errors"`
	LastError string           `json:"last_error,omitempty"`
}

type DraftEditor[T any] struct {
	mu            sync.Mutex
	descriptor    EditorDescriptor[T]
	key           ConfigKey
	draft         T
	snapshot      T
	errors        ValidationErrors
	status        SaveStatus
	lastError     string
	successAt     time.Time
	successWindow time.Duration
	now           func() time.Time
}

func NewDraftEditor[T any](descriptor EditorDescriptor[T], key ConfigKey, initial T) *DraftEditor[T] {
	return &DraftEditor[T]{
		descriptor:    descriptor,
		key:           key,
		draft:         descriptor.Clone(initial),
		snapshot:      descriptor.Clone(initial),
		errors:        ValidationErrors{},
		status:        StatusIdle,
		successWindow: DefaultSuccessWindow,
		now:           time.Now,
	}
}

func (e *DraftEditor[T]) withClock(now func() time.Time, successWindow time.Duration) *DraftEditor[T] {
	if now != nil {
		e.now = now
	}
	if successWindow > 0 {
		e.successWindow = successWindow
	}
	return e
}

func (e *DraftEditor[T]) Kind() string {
	return e.descriptor.Kind
}

// Key is the identity the entry had when it was last saved (or opened).
func (e *DraftEditor[T]) Key() ConfigKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.key
}

func (e *DraftEditor[T]) Draft() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.descriptor.Clone(e.draft)
}

func (e *DraftEditor[T]) Snapshot() T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.descriptor.Clone(e.snapshot)
}

// Patch applies fn to a copy of the draft and installs the copy.
func (e *DraftEditor[T]) Patch(fn func(*T)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.descriptor.Clone(e.draft)
	fn(&next)
	e.draft = next
}

func (e *DraftEditor[T]) HasUnsavedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !structurallyEqual(e.draft, e.snapshot)
}

// SetIdentity changes the name key, drops the previous name error and re-validates it.
func (e *DraftEditor[T]) SetIdentity(name string) {
	if e.descriptor.SetIdentity == nil {
		return
	}
	e.Patch(func(draft *T) {
		e.descriptor.SetIdentity(draft, name)
	})
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.errors, e.descriptor.IdentityField)
	e.validateIdentityLocked()
}

// BlurIdentity re-runs the name check when the name input loses focus.
func (e *DraftEditor[T]) BlurIdentity() {
	if e.descriptor.Identity == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.validateIdentityLocked()
}

func (e *DraftEditor[T]) validateIdentityLocked() {
	if e.descriptor.Identity == nil {
		return
	}
	if msg := validateName(e.descriptor.IdentityLabel, e.descriptor.Identity(e.draft)); msg != "" {
		e.errors[e.descriptor.IdentityField] = msg
	}
}

// CanSave mirrors the disabled state of the save button.
func (e *DraftEditor[T]) CanSave() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == StatusSaving {
		return false
	}
	if e.descriptor.IdentityField != "" {
		if _, ok := e.errors[e.descriptor.IdentityField]; ok {
			return false
		}
	}
	return true
}

func (e *DraftEditor[T]) Validate() ValidationErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateLocked()
}

func (e *DraftEditor[T]) validateLocked() ValidationErrors {
	errs := ValidationErrors{}
	if e.descriptor.Identity != nil {
		if msg := validateName(e.descriptor.IdentityLabel, e.descriptor.Identity(e.draft)); msg != "" {
			errs[e.descriptor.IdentityField] = msg
		}
	}
	if e.descriptor.Validate != nil {
		for field, msg := range e.descriptor.Validate(e.draft) {
			errs[field] = msg
		}
	}
	e.errors = errs
	return errs.Clone()
}

// Save validates, hands the draft and its pre-edit key to the save callback and
// re-baselines on success. Failures keep the draft so the user can retry.
func (e *DraftEditor[T]) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.status == StatusSaving {
		e.mu.Unlock()
		return ErrSaveInProgress
	}
	if errs := e.validateLocked(); len(errs) > 0 {
		e.mu.Unlock()
		return errs
	}
	e.status = StatusSaving
	e.lastError = ""
	sent := e.descriptor.Clone(e.draft)
	key := e.key
	e.mu.Unlock()

	saved, newKey, err := e.descriptor.Save(ctx, sent, key)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.status = StatusError
		e.lastError = err.Error()
		return err
	}
	if structurallyEqual(e.draft, sent) {
		e.draft = e.descriptor.Clone(saved)
	}
	e.snapshot = e.descriptor.Clone(saved)
	e.key = newKey
	e.status = StatusSuccess
	e.successAt = e.now()
	return nil
}

// Cancel discards local edits. It does not abort a save already in flight.
func (e *DraftEditor[T]) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = e.descriptor.Clone(e.snapshot)
	e.errors = ValidationErrors{}
	if e.status == StatusError {
		e.status = StatusIdle
		e.lastError = ""
	}
}

func (e *DraftEditor[T]) Status() SaveStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked()
}

func (e *DraftEditor[T]) statusLocked() SaveStatus {
	if e.status == StatusSuccess && e.now().Sub(e.successAt) >= e.successWindow {
		e.status = StatusIdle
	}
	return e.status
}

func (e *DraftEditor[T]) Errors() ValidationErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors.Clone()
}

func (e *DraftEditor[T]) State() EditorState[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EditorState[T]{
		Key:       e.key,
		Draft:     e.descriptor.Clone(e.draft),
		Dirty:     !structurallyEqual(e.draft, e.snapshot),
		Status:    e.statusLocked(),
		Errors:    e.errors.Clone(),
		LastError: e.lastError,
	}
}

// structurallyEqual compares JSON encodings so nil and empty lists are the same value.
func structurallyEqual(a any, b any) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}
