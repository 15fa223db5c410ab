package context

import (
	"context"

	"github.com/dgrijalva/jwt-go"

	"github.com/edvault/edvault/claims"
	"github.com/edvault/edvault/conf"
	"github.com/edvault/edvault/objectstore"
)

type contextKey string

func (c contextKey) String() string {
	return "api context key " + string(c)
}

const (
	tokenKey       = contextKey("jwt")
	configKey      = contextKey("config")
	requestIDKey   = contextKey("request_id")
	adminFlagKey   = contextKey("is_admin")
	objectStoreKey = contextKey("object_store")
	contentIDKey   = contextKey("content_id")
)

// WithConfig adds the site configuration to the context.
func WithConfig(ctx context.Context, config *conf.Configuration) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// GetConfig reads the site configuration from the context.
func GetConfig(ctx context.Context) *conf.Configuration {
	obj := ctx.Value(configKey)
	if obj == nil {
		return nil
	}
	return obj.(*conf.Configuration)
}

// WithToken adds the JWT token to the context.
func WithToken(ctx context.Context, token *jwt.Token) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetToken reads the JWT token from the context.
func GetToken(ctx context.Context) *jwt.Token {
	obj := ctx.Value(tokenKey)
	if obj == nil {
		return nil
	}
	return obj.(*jwt.Token)
}

// GetClaims reads the claims contained within the JWT token stored in the context.
func GetClaims(ctx context.Context) *claims.JWTClaims {
	token := GetToken(ctx)
	if token == nil {
		return nil
	}
	return token.Claims.(*claims.JWTClaims)
}

// WithRequestID adds the provided request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID reads the request ID from the context.
func GetRequestID(ctx context.Context) string {
	obj := ctx.Value(requestIDKey)
	if obj == nil {
		return ""
	}
	return obj.(string)
}

// WithAdminFlag adds a flag indicating admin status to the context.
func WithAdminFlag(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, adminFlagKey, isAdmin)
}

// IsAdmin reads the admin flag from the context.
func IsAdmin(ctx context.Context) bool {
	obj := ctx.Value(adminFlagKey)
	if obj == nil {
		return false
	}
	return obj.(bool)
}

// WithContentID adds the content ID to the context.
func WithContentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contentIDKey, id)
}

// GetContentID reads the content ID from the context.
func GetContentID(ctx context.Context) string {
	id, _ := ctx.Value(contentIDKey).(string)
	return id
}

// WithObjectStore adds the object store to the context.
func WithObjectStore(ctx context.Context, store objectstore.Store) context.Context {
	return context.WithValue(ctx, objectStoreKey, store)
}

// GetObjectStore reads the object store from the context.
func GetObjectStore(ctx context.Context) objectstore.Store {
	obj := ctx.Value(objectStoreKey)
	if obj == nil {
		return nil
	}
	return obj.(objectstore.Store)
}
