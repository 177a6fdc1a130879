package audit

import "context"

type actorKey struct{}

// WithActor tags ctx with the uid of the authenticated caller.
func WithActor(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, actorKey{}, uid)
}

func ActorFrom(ctx context.Context) string {
	uid, _ := ctx.Value(actorKey{}).(string)
	return uid
}
