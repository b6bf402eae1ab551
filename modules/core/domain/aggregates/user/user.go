package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/pkg/serrors"
)

var (
	ErrNotFound   = serrors.NewError("USER_NOT_FOUND", "user not found")
	ErrEmailTaken = serrors.NewError("USER_EMAIL_TAKEN", "email already in use")
)

type User struct {
	id           uuid.UUID
	email        string
	displayName  string
	role         Role
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func New(email, displayName string, role Role, passwordHash string) User {
	return User{
		email:        normalizeEmail(email),
		displayName:  strings.TrimSpace(displayName),
		role:         role,
		passwordHash: passwordHash,
	}
}

func Hydrate(
	id uuid.UUID,
	email string,
	displayName string,
	role Role,
	passwordHash string,
	createdAt time.Time,
	updatedAt time.Time,
) User {
	return User{
		id:           id,
		email:        normalizeEmail(email),
		displayName:  strings.TrimSpace(displayName),
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u User) ID() uuid.UUID        { return u.id }
func (u User) Email() string        { return u.email }
func (u User) DisplayName() string  { return u.displayName }
func (u User) Role() Role           { return u.role }
func (u User) PasswordHash() string { return u.passwordHash }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) IsZero() bool         { return u.id == uuid.Nil && u.email == "" }

func normalizeEmail(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
