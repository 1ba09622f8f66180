package auth

import "context"

type ctxKey string

const (
	ctxKeySub  ctxKey = "sub"
	ctxKeyName ctxKey = "name"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithUsername(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyName, name)
}

// UsernameFromContext falls back to the subject for tokens without a name.
func UsernameFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyName).(string); ok && s != "" {
		return s
	}
	return SubjectFromContext(ctx)
}
