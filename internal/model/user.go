package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – UUID primary key of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.user_id
	Email        string    // users.user_email
	PasswordHash string    // users.user_password_hash
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models the single `refresh_tokens` row a user may
// hold. The plain token is never stored; only its SHA-256 hash.
// Because user_id is the primary key, storing a new token for a
// user overwrites the previous one.
//
// Fields:
//  UserID    – owner of the token (primary key).
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	UserID    string    // refresh_tokens.user_id
	TokenHash string    // refresh_tokens.token_hash
	ExpiresAt time.Time // refresh_tokens.expires_at
	CreatedAt time.Time // refresh_tokens.created_at
}
