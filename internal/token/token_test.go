package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amazoniatrade/marketplace/internal/models"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}

	tok, err := svc.Issue(42, models.RoleSeller)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, models.RoleSeller, claims.Role)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	base := time.Now()
	svc := &Service{Secret: []byte("test-secret"), Now: func() time.Time { return base }}

	tok, err := svc.Issue(7, models.RoleCustomer)
	require.NoError(t, err)

	svc.Now = func() time.Time { return base.Add(23*time.Hour + 59*time.Minute) }
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	svc.Now = func() time.Time { return base.Add(24*time.Hour + time.Second) }
	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := &Service{Secret: []byte("key-one")}
	verifier := &Service{Secret: []byte("key-two")}

	tok, err := issuer.Issue(1, models.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	svc := &Service{Secret: []byte("test-secret")}

	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)

	_, err = svc.Verify("")
	require.ErrorIs(t, err, ErrMalformed)
}
