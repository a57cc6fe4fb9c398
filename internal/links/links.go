// Package links keeps the short-id to long-URL records in process memory,
// each owned by exactly one user.
package links

import (
	"context"
	"errors"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/tinyapp/linkshrt/internal/shortid"
)

// TriesToGenerateUniqueKey bounds the retry loop that looks for an unused
// short id on creation.
const TriesToGenerateUniqueKey = 10

// ErrNotFound is returned when no record exists under the requested short id.
var ErrNotFound = errors.New("short URL not found")

// ErrKeyGenerationExhausted is returned when no unused short id could be
// generated within TriesToGenerateUniqueKey attempts.
var ErrKeyGenerationExhausted = errors.New("the number of attempts to generate a unique key has been exceeded")

// Link is a single shortened URL record.
type Link struct {
	// ShortID is the public key of the record, embedded in the redirect path.
	ShortID string

	// LongURL is the redirect target.
	LongURL string

	// OwnerID is the id of the user that created the record.
	// It is fixed at creation.
	OwnerID string
}

// Store is the in-memory link store. Mutations are serialized so ownership
// and existence checks observe a consistent snapshot.
type Store struct {
	mux     sync.Mutex
	byID    map[string]*Link
	ordered []string
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		byID:    map[string]*Link{},
		ordered: []string{},
	}
}

// Create stores a new record under a freshly generated unused short id
// and returns it.
func (s *Store) Create(ctx context.Context, longURL, ownerID string) (*Link, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	short, err := s.generateUnusedShortID()
	if err != nil {
		return nil, err
	}

	link := &Link{
		ShortID: short,
		LongURL: longURL,
		OwnerID: ownerID,
	}
	s.byID[short] = link
	s.ordered = append(s.ordered, short)

	return link, nil
}

// Get returns the record stored under the given short id.
func (s *Store) Get(ctx context.Context, short string) (*Link, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	link, found := s.byID[short]
	if !found {
		return nil, false
	}

	copied := *link

	return &copied, true
}

// ListByOwner returns the owner's records in insertion order.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) []Link {
	s.mux.Lock()
	defer s.mux.Unlock()

	all := make([]Link, 0, len(s.ordered))
	for _, short := range s.ordered {
		all = append(all, *s.byID[short])
	}

	return funk.Filter(all, func(link Link) bool {
		return link.OwnerID == ownerID
	}).([]Link)
}

// Update replaces the long URL of an existing record. The caller must have
// already authorized the mutation.
func (s *Store) Update(ctx context.Context, short, newLongURL string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	link, found := s.byID[short]
	if !found {
		return ErrNotFound
	}
	link.LongURL = newLongURL

	return nil
}

// Delete removes the record. The caller must have already authorized the
// mutation.
func (s *Store) Delete(ctx context.Context, short string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, found := s.byID[short]; !found {
		return ErrNotFound
	}
	delete(s.byID, short)
	s.ordered = funk.Filter(s.ordered, func(id string) bool {
		return id != short
	}).([]string)

	return nil
}

func (s *Store) generateUnusedShortID() (string, error) {
	for i := 0; i < TriesToGenerateUniqueKey; i++ {
		short, err := shortid.Generate()
		if err != nil {
			return "", err
		}
		if _, exists := s.byID[short]; !exists {
			return short, nil
		}
	}

	return "", ErrKeyGenerationExhausted
}
