package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenData struct {
	Sub           string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
	Exp           int64
}

// JWKSValidator verifies tokens issued by the identity provider against
// its published key set.
type JWKSValidator struct {
	keys   jwt.Keyfunc
	issuer string
}

func NewCognitoValidator(region, poolID string) (*JWKSValidator, error) {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, poolID)
	// URL where Cognito publishes its public keys
	jwksURL := issuer + "/.well-known/jwks.json"

	jwks, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
	}

	log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
	return &JWKSValidator{keys: jwks.Keyfunc, issuer: issuer}, nil
}

// NewKeyfuncValidator is used when keys come from somewhere else than a
// remote JWKS, e.g. a static key in tests.
func NewKeyfuncValidator(keys jwt.Keyfunc, issuer string) *JWKSValidator {
	return &JWKSValidator{keys: keys, issuer: issuer}
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func (v *JWKSValidator) ValidateToken(tokenString string) (*TokenData, error) {
	if v.keys == nil {
		return nil, errors.New("JWKS not initialized")
	}

	clean := SanitizeToken(tokenString)
	if clean == "" {
		return nil, errors.New("missing token")
	}

	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(clean, v.keys, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	data := &TokenData{
		Sub:           getValue(claims, "sub"),
		Email:         getValue(claims, "email"),
		Name:          getValue(claims, "name"),
		Picture:       getValue(claims, "picture"),
		EmailVerified: getBool(claims, "email_verified"),
		Exp:           getInt64(claims, "exp"),
	}
	if data.Sub == "" {
		return nil, errors.New("token has no subject")
	}
	return data, nil
}

func BearerToken(ctx echo.Context) string {
	return ctx.Request().Header.Get(echo.HeaderAuthorization)
}

func SanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getBool(claims jwt.MapClaims, key string) bool {
	switch val := claims[key].(type) {
	case bool:
		return val
	case string:
		// Cognito sends "true"/"false" for some attributes
		return val == "true"
	}
	return false
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
