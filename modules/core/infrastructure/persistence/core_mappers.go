package persistence

import (
	"github.com/google/uuid"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/domain/entities/session"
	"github.com/stonedesk/stonedesk/modules/core/infrastructure/persistence/models"
)

func toDomainUser(row *models.User) (user.User, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return user.User{}, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return user.User{}, err
	}
	return user.Hydrate(
		id,
		row.Email,
		row.DisplayName,
		role,
		row.PasswordHash,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func toDomainSession(row *models.Session) (*session.Session, error) {
	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return nil, err
	}
	return &session.Session{
		Token:     row.Token,
		UserID:    userID,
		ExpiresAt: row.ExpiresAt,
		IP:        row.IP,
		UserAgent: row.UserAgent,
		CreatedAt: row.CreatedAt,
	}, nil
}
