package middleware

import "context"

type contextKey string

const ctxPrincipal contextKey = "principal"

// Principal is the authenticated seller attached by Auth.
type Principal struct {
	SellerID int64
	Email    string
}

// WithPrincipal injects the authenticated seller into the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok && p.SellerID > 0
}

// SellerIDFromContext returns 0 when no principal is attached.
func SellerIDFromContext(ctx context.Context) int64 {
	p, _ := PrincipalFromContext(ctx)
	return p.SellerID
}
