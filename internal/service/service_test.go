package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tinyapp/linkshrt/internal/authz"
	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/mockstorage"
	"github.com/tinyapp/linkshrt/internal/session"
	"github.com/tinyapp/linkshrt/internal/user"
)

const testBaseURL = "http://localhost:8080"

func newTestService() (*Service, *mockstorage.UserKeeperMock, *mockstorage.LinkKeeperMock) {
	userKeeper := &mockstorage.UserKeeperMock{}
	linkKeeper := &mockstorage.LinkKeeperMock{}

	return New(userKeeper, linkKeeper, testBaseURL), userKeeper, linkKeeper
}

func sessionContext(userID string) context.Context {
	return context.WithValue(context.Background(), session.UserIDKey, userID)
}

func TestCurrentUserAnonymous(t *testing.T) {
	svc, _, _ := newTestService()

	assert.Nil(t, svc.CurrentUser(context.Background()))
}

func TestCurrentUserResolved(t *testing.T) {
	svc, userKeeper, _ := newTestService()
	usr := &user.User{ID: "user-1", Email: "a@x.com"}
	userKeeper.On("FindByID", mock.Anything, "user-1").Return(usr, true)

	resolved := svc.CurrentUser(sessionContext("user-1"))
	require.NotNil(t, resolved)
	assert.Equal(t, "a@x.com", resolved.Email)
}

func TestCurrentUserStaleSession(t *testing.T) {
	svc, userKeeper, _ := newTestService()
	userKeeper.On("FindByID", mock.Anything, "gone-user").Return(nil, false)

	assert.Nil(t, svc.CurrentUser(sessionContext("gone-user")))
}

func TestShortURL(t *testing.T) {
	svc, _, _ := newTestService()

	shortURL, err := svc.ShortURL("abc123")
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/u/abc123", shortURL)
}

func TestListUserLinks(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	usr := &user.User{ID: "user-1"}
	linkKeeper.On("ListByOwner", mock.Anything, "user-1").Return([]links.Link{
		{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"},
	})

	owned, err := svc.ListUserLinks(context.Background(), usr)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, testBaseURL+"/u/abc123", owned[0].ShortURL)
	assert.Equal(t, "https://example.com", owned[0].LongURL)
}

func TestListUserLinksAnonymous(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListUserLinks(context.Background(), nil)
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestGetLinkDetail(t *testing.T) {
	owner := &user.User{ID: "user-1"}
	stranger := &user.User{ID: "user-2"}
	stored := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}

	tests := []struct {
		name    string
		usr     *user.User
		link    *links.Link
		found   bool
		wantErr error
	}{
		{name: "owner sees detail", usr: owner, link: stored, found: true, wantErr: nil},
		{name: "anonymous denied", usr: nil, link: stored, found: true, wantErr: authz.ErrUnauthenticated},
		{name: "unknown id", usr: owner, link: nil, found: false, wantErr: links.ErrNotFound},
		{name: "not the owner", usr: stranger, link: stored, found: true, wantErr: authz.ErrForbidden},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _, linkKeeper := newTestService()
			linkKeeper.On("Get", mock.Anything, "abc123").Return(test.link, test.found)

			owned, err := svc.GetLinkDetail(context.Background(), test.usr, "abc123")
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://example.com", owned.LongURL)
			assert.Equal(t, testBaseURL+"/u/abc123", owned.ShortURL)
		})
	}
}

func TestCreateLink(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	usr := &user.User{ID: "user-1"}
	created := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}
	linkKeeper.On("Create", mock.Anything, "https://example.com", "user-1").Return(created, nil)

	link, err := svc.CreateLink(context.Background(), usr, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", link.ShortID)

	_, err = svc.CreateLink(context.Background(), nil, "https://example.com")
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	linkKeeper.AssertNumberOfCalls(t, "Create", 1)
}

func TestUpdateLinkAuthorizesBeforeMutating(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	stranger := &user.User{ID: "user-2"}
	stored := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}
	linkKeeper.On("Get", mock.Anything, "abc123").Return(stored, true)

	err := svc.UpdateLink(context.Background(), stranger, "abc123", "https://evil.example.com")
	assert.ErrorIs(t, err, authz.ErrForbidden)
	linkKeeper.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLinkOwner(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	owner := &user.User{ID: "user-1"}
	stored := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}
	linkKeeper.On("Get", mock.Anything, "abc123").Return(stored, true)
	linkKeeper.On("Update", mock.Anything, "abc123", "https://new.example.com").Return(nil)

	err := svc.UpdateLink(context.Background(), owner, "abc123", "https://new.example.com")
	assert.NoError(t, err)
	linkKeeper.AssertExpectations(t)
}

func TestDeleteLinkAuthorizesBeforeMutating(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	stored := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}
	linkKeeper.On("Get", mock.Anything, "abc123").Return(stored, true)

	err := svc.DeleteLink(context.Background(), nil, "abc123")
	assert.ErrorIs(t, err, authz.ErrUnauthenticated)
	linkKeeper.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestResolveRedirect(t *testing.T) {
	svc, _, linkKeeper := newTestService()
	stored := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "user-1"}
	linkKeeper.On("Get", mock.Anything, "abc123").Return(stored, true)
	linkKeeper.On("Get", mock.Anything, "nosuch").Return(nil, false)

	longURL, err := svc.ResolveRedirect(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", longURL)

	_, err = svc.ResolveRedirect(context.Background(), "nosuch")
	assert.ErrorIs(t, err, links.ErrNotFound)
}
