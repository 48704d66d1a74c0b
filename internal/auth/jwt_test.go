package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsandin/tripplanner/backend/internal/auth"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := auth.NewJWTService("test-secret", "tripplanner-api")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "tripplanner-api", claims.Issuer)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := auth.NewJWTService("test-secret", "tripplanner-api")

	_, err := svc.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := auth.NewJWTService("secret-one", "tripplanner-api")
	verifier := auth.NewJWTService("secret-two", "tripplanner-api")

	token, err := issuer.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_ValidateToken_UnsignedRejected(t *testing.T) {
	svc := auth.NewJWTService("test-secret", "tripplanner-api")

	// alg=none token: header {"alg":"none","typ":"JWT"}, empty signature.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoiMTExMTExMTEtMTExMS0xMTExLTExMTEtMTExMTExMTExMTExIn0."

	_, err := svc.ValidateToken(unsigned)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
