package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/flexprice/budgetpdf/internal/config"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is what the API needs from a verified token
type Claims struct {
	UserID int64
}

// Verifier checks bearer tokens issued by the main application
type Verifier interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type hmacVerifier struct {
	secret []byte
}

func NewVerifier(cfg *config.Configuration) Verifier {
	return &hmacVerifier{secret: []byte(cfg.Auth.Secret)}
}

func (v *hmacVerifier) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", token.Header["alg"]).
				WithHint("Invalid token").
				Mark(ierr.ErrPermissionDenied)
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := userIDFromClaims(claims)
	if !ok {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	return &Claims{UserID: userID}, nil
}

// userIDFromClaims reads "id", falling back to "user_id". Numbers and
// numeric strings are both accepted.
func userIDFromClaims(claims jwt.MapClaims) (int64, bool) {
	for _, key := range []string{"id", "user_id"} {
		switch v := claims[key].(type) {
		case float64:
			if v > 0 && v == float64(int64(v)) {
				return int64(v), true
			}
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// GenerateToken signs a token for userID. Used by the CLI and tests; the
// main application issues tokens the same way.
func GenerateToken(secret string, userID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
