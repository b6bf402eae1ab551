package permissions

import "github.com/stonedesk/stonedesk/pkg/authz"

var (
	RequestsObject = authz.ObjectName("samples", "requests")
)

const (
	ActionCreate             = "create"
	ActionList               = "list"
	ActionView               = "view"
	ActionSubmit             = "submit"
	ActionApprove            = "approve"
	ActionReject             = "reject"
	ActionAssign             = "assign"
	ActionStartProduction    = "start_production"
	ActionMarkReady          = "mark_ready"
	ActionDispatch           = "dispatch"
	ActionReceive            = "receive"
	ActionRescheduleDeadline = "reschedule_deadline"
)
