package claims

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// JWTClaims represents the JWT claims information.
type JWTClaims struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	AppMetaData  map[string]interface{} `json:"app_metadata"`
	UserMetaData map[string]interface{} `json:"user_metadata"`
	jwt.StandardClaims
}

// HasRole determines whether the claims carry the given role inside
// app_metadata.roles.
func (c *JWTClaims) HasRole(role string) bool {
	if c.AppMetaData == nil {
		return false
	}
	roles, ok := c.AppMetaData["roles"]
	if !ok {
		return false
	}
	roleStrings, _ := roles.([]interface{})
	for _, data := range roleStrings {
		r, _ := data.(string)
		if r == role {
			return true
		}
	}
	return false
}
