package api

import (
	"context"
	"fmt"
	"net/http"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"

	"github.com/edvault/edvault/claims"
	gcontext "github.com/edvault/edvault/context"
)

func withToken(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	ctx := r.Context()
	log := getLogEntry(r)
	config := gcontext.GetConfig(ctx)
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Debug("Making unauthenticated request")
		return ctx, nil
	}

	matches := bearerRegexp.FindStringSubmatch(authHeader)
	if len(matches) != 2 {
		return nil, unauthorizedError("Bad authentication header").WithInternalMessage("Invalid auth header format: %s", authHeader)
	}

	token, err := jwt.ParseWithClaims(matches[1], &claims.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Method.Alg())
		}
		return []byte(config.JWT.Secret), nil
	})
	if err != nil {
		return nil, unauthorizedError("Invalid token").WithInternalError(err)
	}

	tokenClaims := token.Claims.(*claims.JWTClaims)
	isAdmin := tokenClaims.HasRole(config.JWT.AdminGroupName)

	log.WithFields(logrus.Fields{
		"claims_id":    tokenClaims.ID,
		"claims_email": tokenClaims.Email,
		"is_admin":     isAdmin,
	}).Debug("successfully parsed claims")

	ctx = gcontext.WithAdminFlag(ctx, isAdmin)
	ctx = gcontext.WithToken(ctx, token)
	return ctx, nil
}

func authRequired(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	ctx := r.Context()
	claims := gcontext.GetClaims(ctx)
	if claims == nil {
		return nil, unauthorizedError("No claims provided")
	}

	return ctx, nil
}

func adminRequired(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	ctx := r.Context()
	claims := gcontext.GetClaims(ctx)
	isAdmin := gcontext.IsAdmin(ctx)

	if claims == nil || !isAdmin {
		return nil, unauthorizedError("Admin permissions required")
	}

	logEntrySetField(r, "admin_id", claims.ID)
	return ctx, nil
}
