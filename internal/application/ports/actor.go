package ports

import "context"

// Actor operador al que se atribuyen los registros de historial.
type Actor struct {
	UserID   string
	Username string
}

type actorKey struct{}

// WithActor adjunta el operador al contexto.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom devuelve el operador del contexto (vacío si no hay).
func ActorFrom(ctx context.Context) Actor {
	a, _ := ctx.Value(actorKey{}).(Actor)
	return a
}
