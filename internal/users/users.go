// Package users keeps the registered accounts in process memory and
// answers lookup and credential-verification queries.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tinyapp/linkshrt/internal/user"
)

// ErrEmptyCredentials is returned when the email or the password is missing.
var ErrEmptyCredentials = errors.New("email and password are required")

// ErrEmailTaken is returned when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when the email is unknown or the password
// does not match the stored hash.
var ErrInvalidCredentials = errors.New("email or password is incorrect")

// Directory is the in-memory user store. All mutations are serialized so
// uniqueness checks observe a consistent snapshot.
type Directory struct {
	mux        sync.Mutex
	byID       map[string]*user.User
	idsByEmail map[string]string
	bcryptCost int
}

// New returns an empty Directory hashing passwords with the given bcrypt cost.
// A non-positive cost falls back to the bcrypt default.
func New(bcryptCost int) *Directory {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &Directory{
		byID:       map[string]*user.User{},
		idsByEmail: map[string]string{},
		bcryptCost: bcryptCost,
	}
}

// CreateUser registers a new account. It fails with ErrEmptyCredentials when
// either field is empty and with ErrEmailTaken when the email is already
// registered. The stored record holds a bcrypt hash, never the plaintext.
func (d *Directory) CreateUser(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), d.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	d.mux.Lock()
	defer d.mux.Unlock()

	if _, exists := d.idsByEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	usr := &user.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	d.byID[usr.ID] = usr
	d.idsByEmail[usr.Email] = usr.ID

	return usr, nil
}

// FindByEmail returns the user registered under the given email.
// Matching is case-sensitive.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*user.User, bool) {
	d.mux.Lock()
	defer d.mux.Unlock()

	userID, found := d.idsByEmail[email]
	if !found {
		return nil, false
	}

	return d.byID[userID], true
}

// FindByID returns the user with the given id.
func (d *Directory) FindByID(ctx context.Context, userID string) (*user.User, bool) {
	d.mux.Lock()
	defer d.mux.Unlock()

	usr, found := d.byID[userID]

	return usr, found
}

// VerifyCredentials looks the email up and compares the supplied password
// against the stored hash. It returns ErrInvalidCredentials both for an
// unknown email and for a wrong password.
func (d *Directory) VerifyCredentials(ctx context.Context, email, password string) (*user.User, error) {
	usr, found := d.FindByEmail(ctx, email)
	if !found {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return usr, nil
}

// Count returns the number of registered users.
func (d *Directory) Count(ctx context.Context) int {
	d.mux.Lock()
	defer d.mux.Unlock()

	return len(d.byID)
}
