package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stonedesk/stonedesk/modules/core/domain/aggregates/user"
)

func TestCreateDTO_Ok(t *testing.T) {
	dto := &user.CreateDTO{
		Email:       "  Jane@StoneDesk.Test ",
		DisplayName: "Jane Requester",
		Role:        "Requester",
		Password:    "s3cret-pass",
	}

	errs, ok := dto.Ok()
	assert.True(t, ok)
	assert.Empty(t, errs)
	assert.Equal(t, "requester", dto.Role)
}

func TestCreateDTO_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		dto   user.CreateDTO
		field string
	}{
		{"missing email", user.CreateDTO{DisplayName: "J", Role: "requester", Password: "s3cret-pass"}, "Email"},
		{"bad email", user.CreateDTO{Email: "not-an-email", DisplayName: "J", Role: "requester", Password: "s3cret-pass"}, "Email"},
		{"short password", user.CreateDTO{Email: "j@x.test", DisplayName: "J", Role: "requester", Password: "short"}, "Password"},
		{"unknown role", user.CreateDTO{Email: "j@x.test", DisplayName: "J", Role: "manager", Password: "s3cret-pass"}, "Role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, ok := tc.dto.Ok()
			assert.False(t, ok)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestCreateDTO_ToEntity(t *testing.T) {
	dto := &user.CreateDTO{
		Email:       "jane@stonedesk.test",
		DisplayName: "Jane Requester",
		Role:        "coordinator",
		Password:    "s3cret-pass",
	}
	_, ok := dto.Ok()
	require.True(t, ok)

	entity, err := dto.ToEntity()
	require.NoError(t, err)

	assert.Equal(t, user.RoleCoordinator, entity.Role())
	assert.Equal(t, "jane@stonedesk.test", entity.Email())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(entity.PasswordHash()), []byte("s3cret-pass")))
}
