package middleware

import (
	"errors"

	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenVerifier interface {
	ParseTokenDataCtx(ctx echo.Context) (*utils.TokenData, error)
}

type AuthMiddlewareConfig struct {
	Tokens TokenVerifier
}

// NewAuthMiddleware rejects requests without a bearer token with 401 and
// requests whose token does not verify with 403. The verified identity is
// stored under utils.ContextTokenKey.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := cfg.Tokens.ParseTokenDataCtx(c)
			if errors.Is(err, utils.ErrMissingToken) {
				return c.JSON(apierror.MissingTokenError.Code(), apierror.MissingTokenError)
			}

			if err != nil {
				log.Debugf("rejected token on %s: %v", c.Path(), err)
				return c.JSON(apierror.InvalidTokenError.Code(), apierror.InvalidTokenError)
			}

			c.Set(utils.ContextTokenKey, tokenData)
			return next(c)
		}
	}
}
