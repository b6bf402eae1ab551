package authz

import (
	"strings"
)

const (
	ModeDisabled = "disabled"
	ModeShadow   = "shadow"
	ModeEnforce  = "enforce"

	rolePrefix       = "role"
	subjectSeparator = ":"
	objectSeparator  = "."
)

// Request encapsulates the parameters of a single authorization check.
type Request struct {
	Subject string
	Object  string
	Action  string
}

func NewRequest(subject, object, action string) Request {
	return Request{
		Subject: subject,
		Object:  object,
		Action:  NormalizeAction(action),
	}
}

// SubjectForRole builds a subject identifier in the form role:{name}.
func SubjectForRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = "anonymous"
	}
	return rolePrefix + subjectSeparator + role
}

// ObjectName joins a module and resource into a dotted object identifier.
func ObjectName(module, resource string) string {
	return module + objectSeparator + resource
}

func NormalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
