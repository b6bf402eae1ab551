package permissions

import "github.com/stonedesk/stonedesk/pkg/authz"

var (
	UsersObject = authz.ObjectName("core", "users")
)

const (
	ActionCreate = "create"
	ActionView   = "view"
	ActionList   = "list"
)
