// Package service orchestrates the user directory, the link store and the
// authorization guard into the operations the HTTP layer exposes.
package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tinyapp/linkshrt/internal/authz"
	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/session"
	"github.com/tinyapp/linkshrt/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, email, password string) (*user.User, error)
	FindByID(ctx context.Context, userID string) (*user.User, bool)
	VerifyCredentials(ctx context.Context, email, password string) (*user.User, error)
}

type linkKeeper interface {
	Create(ctx context.Context, longURL, ownerID string) (*links.Link, error)
	Get(ctx context.Context, short string) (*links.Link, bool)
	ListByOwner(ctx context.Context, ownerID string) []links.Link
	Update(ctx context.Context, short, newLongURL string) error
	Delete(ctx context.Context, short string) error
}

// OwnedLink is a stored record together with its resolved public short URL.
type OwnedLink struct {
	links.Link
	ShortURL string
}

// Service implements the application's operations over injected stores.
type Service struct {
	users        userKeeper
	links        linkKeeper
	shortURLBase string
}

// New wires a Service with its stores and the base address the short URLs
// are resolved against.
func New(users userKeeper, links linkKeeper, shortURLBase string) *Service {
	return &Service{
		users:        users,
		links:        links,
		shortURLBase: shortURLBase,
	}
}

// CurrentUser resolves the session identity in ctx to an account.
// Anonymous requests and stale session ids both yield nil.
func (s *Service) CurrentUser(ctx context.Context) *user.User {
	userID := session.UserIDFromContext(ctx)
	if userID == "" {
		return nil
	}

	usr, found := s.users.FindByID(ctx, userID)
	if !found {
		return nil
	}

	return usr
}

// Register creates an account. Failures are users.ErrEmptyCredentials and
// users.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	return s.users.CreateUser(ctx, email, password)
}

// Login verifies credentials, failing with users.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, error) {
	return s.users.VerifyCredentials(ctx, email, password)
}

// ShortURL resolves a short id against the configured base address.
func (s *Service) ShortURL(short string) (string, error) {
	result, err := url.JoinPath(s.shortURLBase, "u", short)
	if err != nil {
		return "", fmt.Errorf("URL cannot be joined: %w", err)
	}

	return result, nil
}

// ListUserLinks returns the current user's links in insertion order,
// or authz.ErrUnauthenticated for anonymous callers.
func (s *Service) ListUserLinks(ctx context.Context, currentUser *user.User) ([]OwnedLink, error) {
	if currentUser == nil {
		return nil, authz.ErrUnauthenticated
	}

	owned := s.links.ListByOwner(ctx, currentUser.ID)

	result := make([]OwnedLink, 0, len(owned))
	for _, link := range owned {
		shortURL, err := s.ShortURL(link.ShortID)
		if err != nil {
			return nil, err
		}
		result = append(result, OwnedLink{Link: link, ShortURL: shortURL})
	}

	return result, nil
}

// GetLinkDetail fetches one link after the view authorization check.
func (s *Service) GetLinkDetail(ctx context.Context, currentUser *user.User, short string) (*OwnedLink, error) {
	link, _ := s.links.Get(ctx, short)
	if err := authz.Authorize(currentUser, link, authz.ActionView); err != nil {
		return nil, err
	}

	shortURL, err := s.ShortURL(link.ShortID)
	if err != nil {
		return nil, err
	}

	return &OwnedLink{Link: *link, ShortURL: shortURL}, nil
}

// CreateLink stores a new link owned by the current user.
func (s *Service) CreateLink(ctx context.Context, currentUser *user.User, longURL string) (*links.Link, error) {
	if currentUser == nil {
		return nil, authz.ErrUnauthenticated
	}

	return s.links.Create(ctx, longURL, currentUser.ID)
}

// UpdateLink replaces the target of a link after the edit authorization check.
func (s *Service) UpdateLink(ctx context.Context, currentUser *user.User, short, newLongURL string) error {
	link, _ := s.links.Get(ctx, short)
	if err := authz.Authorize(currentUser, link, authz.ActionEdit); err != nil {
		return err
	}

	return s.links.Update(ctx, short, newLongURL)
}

// DeleteLink removes a link after the delete authorization check.
func (s *Service) DeleteLink(ctx context.Context, currentUser *user.User, short string) error {
	link, _ := s.links.Get(ctx, short)
	if err := authz.Authorize(currentUser, link, authz.ActionDelete); err != nil {
		return err
	}

	return s.links.Delete(ctx, short)
}

// ResolveRedirect returns the redirect target stored under the short id.
// Redirects are public: no session is consulted.
func (s *Service) ResolveRedirect(ctx context.Context, short string) (string, error) {
	link, found := s.links.Get(ctx, short)
	if !found {
		return "", links.ErrNotFound
	}

	return link.LongURL, nil
}
