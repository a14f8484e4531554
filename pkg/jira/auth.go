package jira

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Connect JWTs are short-lived; Atlassian recommends a few minutes at most.
const connectTokenLifetime = 3 * time.Minute

// authorize sets the Authorization header for a request. With a Connect key
// and shared secret configured, each request carries a freshly signed JWT;
// otherwise the personal access token is sent as a bearer token.
func (c *Client) authorize(req *http.Request) error {
	if c.connectKey != "" && len(c.sharedSecret) > 0 {
		token, err := c.connectJWT(req.Method, req.URL)
		if err != nil {
			return fmt.Errorf("sign connect JWT: %w", err)
		}
		req.Header.Set("Authorization", "JWT "+token)
		return nil
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}

// connectJWT builds an Atlassian Connect request token: HS256-signed with
// iss, iat, exp and the qsh claim binding the token to this exact request.
func (c *Client) connectJWT(method string, u *url.URL) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.connectKey,
		"iat": now.Unix(),
		"exp": now.Add(connectTokenLifetime).Unix(),
		"qsh": queryStringHash(method, u),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.sharedSecret)
}

// queryStringHash computes the SHA-256 of the canonical request string
// METHOD&path&query, with query parameters sorted by name and values
// percent-encoded, per the Atlassian Connect specification.
func queryStringHash(method string, u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	values := u.Query()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]string, 0, len(names))
	for _, name := range names {
		encoded := make([]string, 0, len(values[name]))
		for _, v := range values[name] {
			encoded = append(encoded, canonicalEncode(v))
		}
		params = append(params, canonicalEncode(name)+"="+strings.Join(encoded, ","))
	}

	canonical := strings.ToUpper(method) + "&" + path + "&" + strings.Join(params, "&")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// canonicalEncode percent-encodes a query component the way Connect's
// canonical form expects: spaces become %20, and '+', '*' and '~' are
// normalized explicitly.
func canonicalEncode(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	encoded = strings.ReplaceAll(encoded, "*", "%2A")
	encoded = strings.ReplaceAll(encoded, "%7E", "~")
	return encoded
}
