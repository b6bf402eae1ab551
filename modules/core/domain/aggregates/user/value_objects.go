package user

import "errors"

type Role string

const (
	RoleRequester   Role = "requester"
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
)

func NewRole(r string) (Role, error) {
	role := Role(r)
	if !role.IsValid() {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func (r Role) IsValid() bool {
	switch r {
	case RoleRequester, RoleCoordinator, RoleAdmin:
		return true
	}
	return false
}
