package middleware

import (
	"net/http"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenValidator interface {
	ValidateToken(token string) (*utils.TokenData, error)
}

type UserResolver interface {
	ResolveUser(token *utils.TokenData) (*entity.User, apierror.ErrorResponse)
}

type AuthMiddlewareConfig struct {
	Validator TokenValidator
	Users     UserResolver
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := cfg.Validator.ValidateToken(utils.BearerToken(c))
			if err != nil {
				log.Debugf("rejected token on %s: %v", c.Path(), err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, apierr := cfg.Users.ResolveUser(tokenData)
			if apierr != nil {
				return c.JSON(apierr.Code(), apierr)
			}

			c.Set(utils.ContextKeyUser, user)
			c.Set(utils.ContextKeyToken, tokenData)
			return next(c)
		}
	}
}
