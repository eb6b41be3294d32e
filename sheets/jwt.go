package sheets

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// assertionLifetime is how long a signed assertion stays valid
const assertionLifetime = 3600 * time.Second

var pemArmour = regexp.MustCompile(`-----(BEGIN|END) (RSA )?PRIVATE KEY-----`)

// Claims are the JWT-bearer assertion claims for a service account
type Claims struct {
	Issuer   string `json:"iss"`
	Scope    string `json:"scope"`
	Audience string `json:"aud"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
}

// NewClaims builds claims issued at now and expiring one hour later
func NewClaims(issuer, scope, audience string, now time.Time) Claims {
	iat := now.Unix()
	return Claims{
		Issuer:   issuer,
		Scope:    scope,
		Audience: audience,
		IssuedAt: iat,
		Expiry:   iat + int64(assertionLifetime/time.Second),
	}
}

type jwtHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// base64URL encodes without padding, with '+' -> '-' and '/' -> '_'
func base64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// SignAssertion builds header.claims.signature, every segment base64url without padding,
// signed with RSASSA-PKCS1-v1_5 over SHA-256 of "header.claims".
func SignAssertion(key *rsa.PrivateKey, claims Claims) (string, error) {
	header, err := json.Marshal(jwtHeader{Alg: "RS256", Typ: "JWT"})
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %w", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	signingInput := base64URL(header) + "." + base64URL(payload)

	digest := sha256.Sum256([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}

	return signingInput + "." + base64URL(signature), nil
}

// ParsePrivateKey imports a PKCS8 RSA private key from PEM text.
// The armour lines and all whitespace are stripped before decoding, and literal "\n"
// sequences (as found in keys pasted into environment variables) are tolerated.
func ParsePrivateKey(pemText string) (*rsa.PrivateKey, error) {
	body := strings.ReplaceAll(pemText, `\n`, "\n")
	body = pemArmour.ReplaceAllString(body, "")
	body = strings.Join(strings.Fields(body), "")
	if body == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PKCS8 private key: %w", err)
	}

	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA")
	}
	return key, nil
}
