package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_Verify_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New())
	assert.NoError(t, err)

	got, err := verifier.Verify(token)
	assert.Equal(t, ErrTokenInvalid, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestJWTService_Verify_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		got, err := svc.Verify(token)
		assert.Equal(t, ErrTokenInvalid, err)
		assert.Equal(t, uuid.Nil, got)
	}
}

func TestJWTService_Verify_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	svc.ttl = -time.Minute // already expired at issue time

	token, err := svc.Issue(uuid.New())
	assert.NoError(t, err)

	got, err := svc.Verify(token)
	assert.Equal(t, ErrTokenExpired, err)
	assert.Equal(t, uuid.Nil, got)
}
