package bootstrap

import "context"

// AuditLog captures a notable lifecycle event for the operations trail.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
