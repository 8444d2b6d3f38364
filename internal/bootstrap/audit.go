package bootstrap

import "context"

// AuditLog is a security-relevant event, recorded separately from the
// general error path: token failures, device revocations, manual
// timesheet corrections.
type AuditLog struct {
	Action  string
	Actor   string
	Subject string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
