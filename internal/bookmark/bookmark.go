// Package bookmark remembers the last display line read in each file.
package bookmark

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// Namespace is the key-value namespace bookmarks live in.
	Namespace = "bookmarks"
	// DefaultKeyLimit mirrors the 15-byte key limit of the original flash
	// store, less one for its terminator.
	DefaultKeyLimit = 14
	// None is returned by Load when a file has no bookmark.
	None = -1
)

// KV is the durable store bookmarks are written to.
type KV interface {
	PutInt(ctx context.Context, namespace, key string, value int) error
	GetInt(ctx context.Context, namespace, key string) (int, bool, error)
	Delete(ctx context.Context, namespace, key string) error
	Keys(ctx context.Context, namespace string) ([]string, error)
}

// Store maps file identities to display-line positions.
type Store struct {
	kv       KV
	keyLimit int
}

// NewStore returns a Store over kv. keyLimit <= 0 selects DefaultKeyLimit.
func NewStore(kv KV, keyLimit int) *Store {
	if keyLimit <= 0 {
		keyLimit = DefaultKeyLimit
	}
	return &Store{kv: kv, keyLimit: keyLimit}
}

// Key derives the storage key for a file identity: the base name, cut to the
// key limit without splitting a character, with separators replaced by '_'.
// Different names can map to the same key; that trade-off comes with short
// keys.
func (s *Store) Key(identity string) string {
	return deriveKey(identity, s.keyLimit)
}

func deriveKey(identity string, limit int) string {
	name := identity
	if i := strings.LastIndexAny(name, `/\`); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	if len(name) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}

	// Separators are ASCII; replacing bytes keeps the length unchanged.
	key := []byte(name)
	for i, b := range key {
		switch b {
		case '.', ' ', '-', '/', '\\':
			key[i] = '_'
		}
	}
	return string(key)
}

// Save records line as the position for identity.
func (s *Store) Save(ctx context.Context, identity string, line int) error {
	return s.kv.PutInt(ctx, Namespace, s.Key(identity), line)
}

// Load returns the saved position for identity, or None.
func (s *Store) Load(ctx context.Context, identity string) (int, error) {
	line, ok, err := s.kv.GetInt(ctx, Namespace, s.Key(identity))
	if err != nil {
		return None, err
	}
	if !ok {
		return None, nil
	}
	return line, nil
}

// Delete forgets the position for identity.
func (s *Store) Delete(ctx context.Context, identity string) error {
	return s.kv.Delete(ctx, Namespace, s.Key(identity))
}

// Entry is one stored bookmark.
type Entry struct {
	Key  string
	Line int
}

// List returns every stored bookmark ordered by key.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	keys, err := s.kv.Keys(ctx, Namespace)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		line, ok, err := s.kv.GetInt(ctx, Namespace, key)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, Entry{Key: key, Line: line})
		}
	}
	return entries, nil
}

// IdentityOf returns the identity used for a path: its base name, matching
// the names the file menu shows.
func IdentityOf(path string) string {
	return filepath.Base(path)
}
