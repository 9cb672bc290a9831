package utils

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"noteshare/cmd/internal/utils/apierror"
)

// ContextTokenKey is where the auth middleware stores the verified *TokenData.
const ContextTokenKey = "token"

func GetTokenFromContext(c echo.Context) (*TokenData, apierror.ErrorResponse) {
	val := c.Get(ContextTokenKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil token from context", c.Request().URL)
		return nil, apierror.MissingTokenError
	}

	data, ok := val.(*TokenData)
	if !ok {
		log.Warnf("expected token data at '%s' context key, got %T", ContextTokenKey, val)
		return nil, apierror.InternalServerError
	}
	return data, nil
}
