package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"laundry/internal/core/domain/model/employee"
	"laundry/internal/core/domain/model/kernel"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

var ErrMissingBearerToken = errors.New("missing bearer token")

// Claims is the token payload. The role is a hint for routing only; every command
// re-reads the employee row before acting.
type Claims struct {
	EmployeeID string `json:"employeeId"`
	OutletID   string `json:"outletId"`
	Role       string `json:"role"`
	jwt.StandardClaims
}

// Identity is the authenticated caller.
type Identity struct {
	EmployeeID kernel.UUID
	OutletID   kernel.UUID
	Role       employee.Role
}

// IssueToken signs an HS256 token for id that expires after ttl.
func IssueToken(secret []byte, id Identity, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		EmployeeID: id.EmployeeID.String(),
		OutletID:   id.OutletID.String(),
		Role:       id.Role.String(),
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   id.EmployeeID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies signature and expiry and decodes the identity claims.
func ParseToken(secret []byte, raw string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method " + t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	employeeID, err := kernel.UUIDFromString(claims.EmployeeID)
	if err != nil {
		return Identity{}, err
	}
	outletID, err := kernel.UUIDFromString(claims.OutletID)
	if err != nil {
		return Identity{}, err
	}
	role, err := employee.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{EmployeeID: employeeID, OutletID: outletID, Role: role}, nil
}

// JWTAuth rejects requests without a valid bearer token and stores the caller's
// Identity on the echo context.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: ErrMissingBearerToken.Error(),
				})
			}

			id, err := ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func identity(c echo.Context) Identity {
	id, _ := c.Get(identityKey).(Identity)
	return id
}
