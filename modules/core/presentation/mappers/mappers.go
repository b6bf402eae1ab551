package mappers

import (
	"time"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
	"github.com/stonedesk/stonedesk/modules/core/domain/entities/session"
	"github.com/stonedesk/stonedesk/modules/core/presentation/viewmodels"
)

func UserToViewModel(u user.User) viewmodels.User {
	return viewmodels.User{
		ID:          u.ID().String(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Role:        string(u.Role()),
		CreatedAt:   u.CreatedAt().Format(time.RFC3339),
	}
}

func SessionToViewModel(s *session.Session, u user.User) viewmodels.Session {
	return viewmodels.Session{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
		User:      UserToViewModel(u),
	}
}
