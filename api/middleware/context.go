package middleware

import "context"

type ctxKey string

const (
	ctxAdminID ctxKey = "admin_id"
	ctxEmail   ctxKey = "admin_email"
)

// WithAdminID stores the authenticated admin id on the context.
func WithAdminID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxAdminID, id)
}

// WithEmail stores the authenticated admin email on the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxEmail, email)
}

// AdminIDFromContext returns the authenticated admin id, if any.
func AdminIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxAdminID).(string)
	return id, ok
}

// EmailFromContext returns the authenticated admin email, if any.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxEmail).(string)
	return email, ok
}
