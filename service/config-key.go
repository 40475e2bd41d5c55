package service

import (
	"strings"

	"github.com/google/uuid"
)

type KeyKind int

const (
	PersistedKey KeyKind = iota
	DraftKey
)

// ConfigKey identifies a tournament or tryout entry: either a client-only draft or the
// name-based key the backend knows.
type ConfigKey struct {
	Kind  KeyKind
	Value string
}

func Persisted(name string) ConfigKey {
	return ConfigKey{Kind: PersistedKey, Value: name}
}

func Draft(localId string) ConfigKey {
	return ConfigKey{Kind: DraftKey, Value: localId}
}

func NewDraftKey() ConfigKey {
	return Draft(uuid.NewString())
}

func (k ConfigKey) IsDraft() bool {
	return k.Kind == DraftKey
}

// BackendName is the name the backend stores the entry under, empty for drafts.
func (k ConfigKey) BackendName() string {
	if k.IsDraft() {
		return ""
	}
	return k.Value
}

const (
	draftPrefix     = "draft:"
	persistedPrefix = "saved:"
)

// String tags the value with its kind so any backend name survives a round trip.
func (k ConfigKey) String() string {
	if k.IsDraft() {
		return draftPrefix + k.Value
	}
	return persistedPrefix + k.Value
}

// ParseConfigKey is the inverse of String. Values without a known prefix are rejected.
func ParseConfigKey(value string) (ConfigKey, bool) {
	if localId, ok := strings.CutPrefix(value, draftPrefix); ok && localId != "" {
		return Draft(localId), true
	}
	if name, ok := strings.CutPrefix(value, persistedPrefix); ok && name != "" {
		return Persisted(name), true
	}
	return ConfigKey{}, false
}
