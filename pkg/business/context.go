package business

import (
	"context"
)

type contextKey string

const (
	// businessIDKey é a chave usada para armazenar o business ID no contexto
	businessIDKey contextKey = "business_id"
)

// SetBusinessIDContext define o business ID no contexto
func SetBusinessIDContext(ctx context.Context, businessID string) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}

// GetBusinessIDFromContext obtém o business ID do contexto
func GetBusinessIDFromContext(ctx context.Context) string {
	if businessID, ok := ctx.Value(businessIDKey).(string); ok {
		return businessID
	}
	return ""
}

// GetBusinessID obtém o business ID de um contexto do Gin
func GetBusinessID(c interface{}) string {
	if gc, ok := c.(interface{ GetString(string) string }); ok {
		return gc.GetString("business_id")
	}

	if gc, ok := c.(interface {
		Get(string) (interface{}, bool)
	}); ok {
		if val, exists := gc.Get("business_id"); exists {
			if businessID, ok := val.(string); ok {
				return businessID
			}
		}
	}

	return ""
}
