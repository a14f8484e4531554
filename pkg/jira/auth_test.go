package jira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestConnectJWTAuthorization(t *testing.T) {
	const secret = "shared-secret"

	var gotAuth string
	var gotURL *url.URL
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotURL = r.URL
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issues":[]}`))
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL, ConnectKey: "relnotes-app", SharedSecret: secret})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.SearchIssues(context.Background(), []string{"WEBDEV-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotAuth, "JWT ") {
		t.Fatalf("expected a JWT authorization header, got %q", gotAuth)
	}

	token, err := jwt.Parse(strings.TrimPrefix(gotAuth, "JWT "), func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("token does not verify with the shared secret: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", token.Claims)
	}
	if claims["iss"] != "relnotes-app" {
		t.Errorf("iss = %v, want relnotes-app", claims["iss"])
	}
	if want := queryStringHash(http.MethodGet, gotURL); claims["qsh"] != want {
		t.Errorf("qsh = %v, want %v", claims["qsh"], want)
	}
}

func TestQueryStringHashCanonicalForm(t *testing.T) {
	// Parameters must be sorted by name and the method uppercased; the same
	// request expressed two ways must hash identically.
	a, err := url.Parse("https://jira.example.com/rest/api/2/search?b=2&a=1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := url.Parse("https://jira.example.com/rest/api/2/search?a=1&b=2")
	if err != nil {
		t.Fatal(err)
	}

	if queryStringHash("get", a) != queryStringHash("GET", b) {
		t.Error("equivalent requests produced different hashes")
	}
}

func TestQueryStringHashEmptyPath(t *testing.T) {
	u, err := url.Parse("https://jira.example.com")
	if err != nil {
		t.Fatal(err)
	}

	if queryStringHash("GET", u) != queryStringHash("GET", mustParse(t, "https://jira.example.com/")) {
		t.Error("empty path must canonicalize to /")
	}
}

func TestCanonicalEncodeSpacesAndTilde(t *testing.T) {
	if got := canonicalEncode("a b~c*"); got != "a%20b~c%2A" {
		t.Errorf("canonicalEncode = %q", got)
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}
