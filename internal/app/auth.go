package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

var errInvalidClaims = errors.New("invalid token claims")

// Claims are the bearer token claims. The subject carries the user id.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for identity. Tokens are minted by the auth
// service in production; this exists for tooling and tests.
func IssueToken(secret, issuer string, identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(identity.UserID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (app *Application) parseToken(tokenString string) (domain.Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if app.config.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(app.config.JWT.Issuer))
	}

	var claims Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		err := app.config.JWT.validate()
		if err != nil {
			return nil, err
		}

		return []byte(app.config.JWT.Secret), nil
	}, opts...)
	if err != nil {
		return domain.Identity{}, err
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID < 1 {
		return domain.Identity{}, fmt.Errorf("%w: subject %q", errInvalidClaims, claims.Subject)
	}

	switch claims.Role {
	case domain.RoleUser, domain.RoleAdmin:
	case "":
		claims.Role = domain.RoleUser
	default:
		return domain.Identity{}, fmt.Errorf("%w: role %q", errInvalidClaims, claims.Role)
	}

	return domain.Identity{UserID: userID, Role: claims.Role}, nil
}
