package credentials

import "context"

type ctxKey struct{}

// WithContext parks c on ctx for handlers behind the auth middleware
func WithContext(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the pair parked by WithContext
func FromContext(ctx context.Context) (Credentials, bool) {
	c, ok := ctx.Value(ctxKey{}).(Credentials)
	return c, ok && c.Complete()
}
