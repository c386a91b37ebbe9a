package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/user"
)

const userTokenContextKey = "userToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	MobileNumber string `json:"mobileNumber,omitempty"`
	Name         string `json:"name,omitempty"`
	Class        string `json:"class,omitempty"`
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		MobileNumber: usr.MobileNumber,
		Name:         usr.Name,
		Class:        usr.Class,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// userJWTMiddleware authenticates bearer tokens on user-scoped routes.
// Requests without an Authorization header pass through untouched: the
// original mobile client is tokenless and stays supported. A present token
// must be valid.
func userJWTMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    userTokenContextKey,
		Claims:        new(Claims),
		Skipper: func(ctx echo.Context) bool {
			return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
	})
}

// ctxUserMiddleware rejects a valid token whose subject is not the user in
// the path. Tokenless requests pass through.
func ctxUserMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return next(ctx)
			}
			if claims.Subject != ctx.Param("id") {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(userTokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
