package store

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store owns the user document: one YAML file keyed by user id, read in full
// at startup and rewritten in full after every mutation. All read-modify-write
// sequences go through Update, which serializes them under the store mutex so
// a timer handler can never clobber a concurrent chat handler's write.
type Store struct {
	path string
	log  *zap.SugaredLogger

	mu    sync.Mutex
	users map[string]*UserRecord
}

// Open loads the document at path. A missing or unreadable file is treated as
// an empty store; it is never fatal.
func Open(path string, log *zap.SugaredLogger) *Store {
	s := &Store{
		path:  path,
		log:   log,
		users: make(map[string]*UserRecord),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("reading user store, starting empty", "path", path, "error", err)
		}
		return s
	}
	if err := yaml.Unmarshal(data, &s.users); err != nil {
		log.Warnw("user store is corrupt, starting empty", "path", path, "error", err)
		s.users = make(map[string]*UserRecord)
		return s
	}
	for id, u := range s.users {
		if u == nil {
			s.users[id] = NewRecord()
			continue
		}
		u.normalize()
	}
	log.Infow("user store loaded", "path", path, "users", len(s.users))
	return s
}

// Ensure returns the record for id, creating it with defaults on first
// contact. The returned copy is detached from the stored record.
func (s *Store) Ensure(id string) UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = NewRecord()
		s.users[id] = u
		s.flushLocked()
	}
	u.normalize()
	return u.clone()
}

// Get returns a copy of the record for id, if it exists.
func (s *Store) Get(id string) (UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return UserRecord{}, false
	}
	return u.clone(), true
}

// Update runs fn against the live record for id (creating it if needed) and
// persists the whole document before returning. This is the only mutation
// path, so writes cannot be lost to a stale concurrently-loaded copy.
func (s *Store) Update(id string, fn func(*UserRecord)) UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		u = NewRecord()
		s.users[id] = u
	}
	fn(u)
	u.normalize()
	s.flushLocked()
	return u.clone()
}

// Reset discards the record for id and reinitializes it from defaults.
// The record is never deleted, only reset.
func (s *Store) Reset(id string) UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := NewRecord()
	s.users[id] = u
	s.flushLocked()
	return u.clone()
}

// IDs returns every known user id, sorted for stable iteration.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flush rewrites the document unconditionally.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	data, err := yaml.Marshal(s.users)
	if err != nil {
		return fmt.Errorf("encoding user store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Warnw("writing user store", "path", s.path, "error", err)
		return fmt.Errorf("writing user store: %w", err)
	}
	return nil
}
