package store

import (
	"context"
	"strconv"
	"time"

	"github.com/nhahub/NHA-046/internal/models"
)

const usersCollection = "users"

// Users is the account repository over the remote store.
type Users struct {
	client *Client
}

func NewUsers(client *Client) *Users {
	return &Users{client: client}
}

// GetByEmail returns the user with the given (already normalized) email, or
// nil when no such account exists.
func (u *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	records, err := u.client.Fetch(ctx, usersCollection, map[string]string{"email": "eq." + email})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return userFromRecord(records[0]), nil
}

// Create inserts a new account and returns the stored row (with its id).
func (u *Users) Create(ctx context.Context, email, passwordHash, fullName string) (*models.User, error) {
	records, err := u.client.Insert(ctx, usersCollection, Record{
		"email":         email,
		"password_hash": passwordHash,
		"full_name":     fullName,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrUnavailable
	}
	return userFromRecord(records[0]), nil
}

// TouchLastLogin records a successful login. Best-effort: the caller ignores
// the error, a login must not fail because this write did.
func (u *Users) TouchLastLogin(ctx context.Context, userID string) error {
	return u.client.Update(ctx, usersCollection,
		map[string]string{"id": "eq." + userID},
		Record{"last_login": time.Now().UTC().Format(time.RFC3339)})
}

func userFromRecord(r Record) *models.User {
	return &models.User{
		ID:           recordID(r),
		Email:        r.String("email"),
		PasswordHash: r.String("password_hash"),
		FullName:     r.String("full_name"),
		CreatedAt:    r.String("created_at"),
		LastLogin:    r.String("last_login"),
	}
}

// recordID normalizes the store's id column to a string; numeric primary
// keys decode as float64.
func recordID(r Record) string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
