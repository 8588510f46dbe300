package appctx

import (
	"context"

	"github.com/qrave1/BerrowBooks/internal/domain/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity добавляет пользователя запроса в контекст
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Identity извлекает пользователя запроса из контекста
func Identity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok && !identity.IsZero()
}
