package auth

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/budgetpdf/internal/config"
	ierr "github.com/flexprice/budgetpdf/internal/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	verifier := NewVerifier(&config.Configuration{Auth: config.AuthConfig{Secret: testSecret}})
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		want    int64
		wantErr bool
	}{
		{
			name:  "numeric id",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": 42, "exp": exp}),
			want:  42,
		},
		{
			name:  "user_id string",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"user_id": "17"}),
			want:  17,
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"id": 1}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Hour).Unix()}),
			wantErr: true,
		},
		{
			name:    "missing id",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"email": "a@b.c"}),
			wantErr: true,
		},
		{
			name:    "none algorithm",
			token:   sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"id": 1}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.ValidateToken(context.Background(), tt.token)
			if tt.wantErr {
				assert.Nil(t, claims)
				assert.True(t, ierr.IsPermissionDenied(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.UserID)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, 5, time.Minute)
	require.NoError(t, err)

	claims, err := NewVerifier(&config.Configuration{Auth: config.AuthConfig{Secret: testSecret}}).
		ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
}
