package service

import (
	"context"

	"vendorhub/internal/model"
)

// Actor is the authenticated caller acting inside one organization.
type Actor struct {
	UserID         string
	Email          string
	OrganizationID string
	Role           model.Role
}

type actorKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored by WithActor.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
