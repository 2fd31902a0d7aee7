package audit

import "context"

// Principal is the authenticated actor of a request.
type Principal struct {
	UserID   int64
	Username string
	Email    string
}

// Provenance is best-effort request origin metadata.
type Provenance struct {
	IPAddress string
	UserAgent string
}

type ctxKey int

const (
	principalKey ctxKey = iota
	provenanceKey
)

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns nil when the request is not authenticated.
func PrincipalFrom(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok {
		return nil
	}
	return &p
}

func WithProvenance(ctx context.Context, p Provenance) context.Context {
	return context.WithValue(ctx, provenanceKey, p)
}

func ProvenanceFrom(ctx context.Context) Provenance {
	p, _ := ctx.Value(provenanceKey).(Provenance)
	return p
}
