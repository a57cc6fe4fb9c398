package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/user"
)

func TestAuthorize(t *testing.T) {
	owner := &user.User{ID: "owner-1", Email: "a@x.com"}
	stranger := &user.User{ID: "owner-2", Email: "b@x.com"}
	link := &links.Link{ShortID: "abc123", LongURL: "https://example.com", OwnerID: "owner-1"}

	tests := []struct {
		name    string
		usr     *user.User
		link    *links.Link
		action  Action
		wantErr error
	}{
		{name: "owner may view", usr: owner, link: link, action: ActionView, wantErr: nil},
		{name: "owner may edit", usr: owner, link: link, action: ActionEdit, wantErr: nil},
		{name: "owner may delete", usr: owner, link: link, action: ActionDelete, wantErr: nil},
		{name: "anonymous denied with existing link", usr: nil, link: link, action: ActionEdit, wantErr: ErrUnauthenticated},
		{name: "anonymous denied with missing link", usr: nil, link: nil, action: ActionEdit, wantErr: ErrUnauthenticated},
		{name: "missing link", usr: owner, link: nil, action: ActionView, wantErr: links.ErrNotFound},
		{name: "not the owner", usr: stranger, link: link, action: ActionDelete, wantErr: ErrForbidden},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Authorize(test.usr, test.link, test.action)
			if test.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}
