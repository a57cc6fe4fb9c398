// Package user defines the account model used throughout the application,
// particularly for authentication and per-user link ownership.
package user

// User represents a registered account.
type User struct {
	// ID is the unique identifier of the user, meaning a UUID.
	ID string

	// Email is the registration email, unique across all users.
	// Matching is case-sensitive.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string
}
