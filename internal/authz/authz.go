// Package authz decides whether the current user may act on a link record.
// It is a pure decision layer with no state and no side effects.
package authz

import (
	"errors"

	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/user"
)

// Action names the operation being authorized.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// ErrUnauthenticated is returned when no user is logged in.
var ErrUnauthenticated = errors.New("must be logged in")

// ErrForbidden is returned when the user is logged in but does not own
// the link.
var ErrForbidden = errors.New("forbidden: not the owner")

// Authorize applies the ownership rules in order: an anonymous caller is
// rejected before existence is considered, and existence before ownership.
// A missing link yields links.ErrNotFound, deliberately distinct from the
// two auth failures so handlers can answer 404 instead of 403.
// A nil return means the action is allowed.
func Authorize(currentUser *user.User, link *links.Link, action Action) error {
	if currentUser == nil {
		return ErrUnauthenticated
	}

	if link == nil {
		return links.ErrNotFound
	}

	if link.OwnerID != currentUser.ID {
		return ErrForbidden
	}

	return nil
}
