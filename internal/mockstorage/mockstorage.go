// Package mockstorage provides testify-based mock implementations of the
// storage interfaces the service layer depends on. It is used to test the
// service and the HTTP handlers without real stores.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/user"
)

// UserKeeperMock is a testify mock of the user directory operations
// consumed by the service layer.
type UserKeeperMock struct {
	mock.Mock
}

// CreateUser mocks account registration.
func (m *UserKeeperMock) CreateUser(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Error(1)
}

// FindByID mocks the id lookup.
func (m *UserKeeperMock) FindByID(ctx context.Context, userID string) (*user.User, bool) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1)
}

// VerifyCredentials mocks the credential check.
func (m *UserKeeperMock) VerifyCredentials(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Error(1)
}

// LinkKeeperMock is a testify mock of the link store operations
// consumed by the service layer.
type LinkKeeperMock struct {
	mock.Mock
}

// Create mocks record creation.
func (m *LinkKeeperMock) Create(ctx context.Context, longURL, ownerID string) (*links.Link, error) {
	args := m.Called(ctx, longURL, ownerID)
	link, _ := args.Get(0).(*links.Link)
	return link, args.Error(1)
}

// Get mocks the short-id lookup.
func (m *LinkKeeperMock) Get(ctx context.Context, short string) (*links.Link, bool) {
	args := m.Called(ctx, short)
	link, _ := args.Get(0).(*links.Link)
	return link, args.Bool(1)
}

// ListByOwner mocks the owner-scoped listing.
func (m *LinkKeeperMock) ListByOwner(ctx context.Context, ownerID string) []links.Link {
	args := m.Called(ctx, ownerID)
	owned, _ := args.Get(0).([]links.Link)
	return owned
}

// Update mocks the target replacement.
func (m *LinkKeeperMock) Update(ctx context.Context, short, newLongURL string) error {
	args := m.Called(ctx, short, newLongURL)
	return args.Error(0)
}

// Delete mocks record removal.
func (m *LinkKeeperMock) Delete(ctx context.Context, short string) error {
	args := m.Called(ctx, short)
	return args.Error(0)
}
