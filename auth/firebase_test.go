package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "skillswap-test"

type tokenFixture struct {
	key     *rsa.PrivateKey
	certPEM string
	server  *httptest.Server
}

func newTokenFixture(t *testing.T) *tokenFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		json.NewEncoder(w).Encode(map[string]string{"test-kid": certPEM})
	}))
	t.Cleanup(server.Close)

	return &tokenFixture{key: key, certPEM: certPEM, server: server}
}

func (f *tokenFixture) verifier() *FirebaseVerifier {
	v := NewFirebaseVerifier(testProject)
	v.certURL = f.server.URL
	return v
}

func (f *tokenFixture) sign(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"aud":   testProject,
		"iss":   "https://securetoken.google.com/" + testProject,
		"sub":   "uid-123",
		"email": "user@skillswap.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestVerifyValidToken(t *testing.T) {
	fixture := newTokenFixture(t)

	identity, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "test-kid", validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user@skillswap.com", identity.Email)
	assert.Equal(t, "uid-123", identity.UID)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	fixture := newTokenFixture(t)

	_, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "other-kid", validClaims()))
	assert.Error(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	fixture := newTokenFixture(t)

	claims := validClaims()
	claims["aud"] = "some-other-project"
	_, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "test-kid", claims))
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	fixture := newTokenFixture(t)

	claims := validClaims()
	claims["iss"] = "https://securetoken.google.com/some-other-project"
	_, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "test-kid", claims))
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	fixture := newTokenFixture(t)

	claims := validClaims()
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	_, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "test-kid", claims))
	assert.Error(t, err)
}

func TestVerifyRejectsMissingEmailClaim(t *testing.T) {
	fixture := newTokenFixture(t)

	claims := validClaims()
	delete(claims, "email")
	_, err := fixture.verifier().Verify(context.Background(), fixture.sign(t, "test-kid", claims))
	assert.Error(t, err)
}

// HS256 tokens must be rejected even when the signature checks out
// against the advertised key material.
func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	fixture := newTokenFixture(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	token.Header["kid"] = "test-kid"
	signed, err := token.SignedString([]byte(fixture.certPEM))
	require.NoError(t, err)

	_, err = fixture.verifier().Verify(context.Background(), signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	fixture := newTokenFixture(t)

	_, err := fixture.verifier().Verify(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestCertificateCacheAvoidsRefetch(t *testing.T) {
	fixture := newTokenFixture(t)
	verifier := fixture.verifier()

	_, err := verifier.Verify(context.Background(), fixture.sign(t, "test-kid", validClaims()))
	require.NoError(t, err)

	// kill the server; the cached certificates must still satisfy the
	// second verification
	fixture.server.Close()
	_, err = verifier.Verify(context.Background(), fixture.sign(t, "test-kid", validClaims()))
	assert.NoError(t, err)
}

func TestCacheTTL(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"from max-age", "public, max-age=19302, must-revalidate", 19302 * time.Second},
		{"missing header", "", time.Hour},
		{"unparseable", "public, max-age=soon", time.Hour},
		{"zero", "max-age=0", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cacheTTL(tt.header))
		})
	}
}
