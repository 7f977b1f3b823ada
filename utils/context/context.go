package context

import (
	"context"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
)

func GetIdentity(ctx context.Context) (*model.Identity, bool) {
	v := ctx.Value(constant.IdentityKey)
	if v == nil {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok && identity != nil
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constant.IdentityKey, identity)
}

// GetSessionToken returns the raw session token the identity was resolved from.
func GetSessionToken(ctx context.Context) string {
	token, _ := ctx.Value(constant.SessionKey).(string)
	return token
}

func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, constant.SessionKey, token)
}
