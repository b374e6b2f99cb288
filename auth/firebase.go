package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
)

// googleCertURL serves the x509 certificates Google signs Firebase ID
// tokens with, as a JSON map of kid -> PEM certificate.
const googleCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	Email string
	UID   string
}

// Verifier validates a bearer token and returns the caller's identity.
// Every failure mode is equivalent to the caller: the middleware maps
// them all to a single unauthorized outcome.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier checks Firebase ID tokens against Google's published
// signing certificates. Stateless per request; only the certificate map
// is cached, for the lifetime advertised by its Cache-Control header.
type FirebaseVerifier struct {
	projectID string
	certURL   string
	client    *resty.Client

	mu      sync.Mutex
	certs   map[string]string
	expires time.Time
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
	return &FirebaseVerifier{
		projectID: projectID,
		certURL:   googleCertURL,
		client:    resty.New().SetTimeout(10 * time.Second),
	}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		cert, err := v.certificate(ctx, kid)
		if err != nil {
			return nil, err
		}
		return publicKeyFromPEM(cert)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if !claims.VerifyAudience(v.projectID, true) {
		return nil, fmt.Errorf("unexpected token audience")
	}
	if !claims.VerifyIssuer("https://securetoken.google.com/"+v.projectID, true) {
		return nil, fmt.Errorf("unexpected token issuer")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("token carries no email claim")
	}
	uid, _ := claims["sub"].(string)
	return &Identity{Email: email, UID: uid}, nil
}

// certificate returns the PEM certificate for kid, refreshing the cached
// map when it has expired.
func (v *FirebaseVerifier) certificate(ctx context.Context, kid string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.certs == nil || time.Now().After(v.expires) {
		resp, err := v.client.R().SetContext(ctx).Get(v.certURL)
		if err != nil {
			return "", err
		}
		if !resp.IsSuccess() {
			return "", fmt.Errorf("certificate fetch returned %s", resp.Status())
		}
		certs := map[string]string{}
		if err := json.Unmarshal(resp.Body(), &certs); err != nil {
			return "", fmt.Errorf("malformed certificate response: %w", err)
		}
		v.certs = certs
		v.expires = time.Now().Add(cacheTTL(resp.Header().Get("Cache-Control")))
	}

	cert, ok := v.certs[kid]
	if !ok {
		return "", fmt.Errorf("no certificate for kid %q", kid)
	}
	return cert, nil
}

func cacheTTL(header string) time.Duration {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if value, ok := strings.CutPrefix(part, "max-age="); ok {
			if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return time.Hour
}

func publicKeyFromPEM(cert string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(cert))
	if block == nil {
		return nil, fmt.Errorf("malformed certificate PEM")
	}
	parsed, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not carry an RSA key")
	}
	return key, nil
}
