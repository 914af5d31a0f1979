package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingBearerToken = errors.New("missing bearer token")
	errInvalidToken       = errors.New("invalid token")
)

type authClaims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingBearerToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingBearerToken
	}
	return token, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (authPrincipal, error) {
	rawToken, err := bearerToken(c)
	if err != nil {
		return authPrincipal{}, err
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return handler.secretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return authPrincipal{}, errInvalidToken
	}

	return authPrincipal{UserID: claims.UserID, Email: claims.Email}, nil
}
