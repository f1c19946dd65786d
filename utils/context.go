package utils

import (
	"context"
)

type rqIDKey struct{}

type ownerIDKey struct{}

func GetRequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}

func CtxWithRqID(ctx context.Context, rqID string) context.Context {
	return context.WithValue(ctx, rqIDKey{}, rqID)
}

// GetOwnerIDFromCtx returns the owner id resolved by the auth middleware.
func GetOwnerIDFromCtx(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDKey{}).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}

func CtxWithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey{}, ownerID)
}

type ownerNameKey struct{}

func GetOwnerNameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(ownerNameKey{}).(string)
	return name
}

func CtxWithOwnerName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ownerNameKey{}, name)
}
