package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/stonedesk/stonedesk/pkg/constants"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

type CreateDTO struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=255"`
	Role        string `json:"role" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

func (d *CreateDTO) Normalize() {
	d.Email = strings.TrimSpace(d.Email)
	d.DisplayName = strings.TrimSpace(d.DisplayName)
	d.Role = strings.ToLower(strings.TrimSpace(d.Role))
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	validationErrors := make(serrors.ValidationErrors)

	errs := constants.Validate.Struct(d)
	if errs != nil {
		validatorErrs := errs.(validator.ValidationErrors)
		for field, err := range serrors.ProcessValidatorErrors(validatorErrs) {
			validationErrors[field] = err
		}
	}
	if d.Role != "" {
		if _, err := NewRole(d.Role); err != nil {
			validationErrors["Role"] = serrors.NewError("USER_INVALID_ROLE", "role must be requester, coordinator or admin")
		}
	}

	if len(validationErrors) == 0 {
		return map[string]string{}, true
	}
	return serrors.Flatten(validationErrors), false
}

func (d *CreateDTO) ToEntity() (User, error) {
	role, err := NewRole(d.Role)
	if err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return New(d.Email, d.DisplayName, role, string(hash)), nil
}
