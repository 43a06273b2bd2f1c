package webserver_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/webserver"
)

// TestAuthHandlerDifferentAuthMethods makes sure that the auth handler still supports
// all of its authentication methods.
func TestAuthHandlerDifferentAuthMethods(t *testing.T) {
	const (
		username = "auth_user"
		password = "auth_pass"
		secret   = "auth_secret_which_is_completely_unknown_to_anyone_promise"
	)

	signToken := func(issuer, tokenSecret string, exp time.Time) string {
		pl := jwt.Payload{
			Issuer:         issuer,
			IssuedAt:       jwt.NumericDate(time.Now()),
			ExpirationTime: jwt.NumericDate(exp),
		}
		token, err := jwt.Sign(pl, jwt.NewHS256([]byte(tokenSecret)))
		if err != nil {
			panic(err)
		}
		return string(token)
	}

	getToken := func() string {
		return signToken("tessella", secret, time.Now().Add(10*time.Minute))
	}

	assemblyToken := func(jobID string) string {
		link := export.AssemblyLink{URLBase: "https://example.com", Secret: secret}
		url, err := link.URL(jobID, time.Now())
		if err != nil {
			panic(err)
		}
		_, token, found := strings.Cut(url, "?token=")
		if !found {
			panic("assembly link has no token")
		}
		return token
	}

	tests := []struct {
		desc         string
		newRequest   func() *http.Request
		expectedCode int
		exceptions   []string
	}{
		{
			desc: "bearer JWT token",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", getToken()))
				return req
			},
			expectedCode: http.StatusOK,
		},
		{
			desc: "query token",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodDelete, "/v1/jobs/job-1", nil)
				query := req.URL.Query()
				query.Add("token", getToken())
				req.URL.RawQuery = query.Encode()
				return req
			},
			expectedCode: http.StatusOK,
		},
		{
			desc: "basic authenticate",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.SetBasicAuth(username, password)
				return req
			},
			expectedCode: http.StatusOK,
		},
		{
			desc: "wrong basic authenticate password",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.SetBasicAuth(username, "not the password")
				return req
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "path with exception",
			newRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/noauth", nil)
			},
			exceptions:   []string{"/noauth"},
			expectedCode: http.StatusOK,
		},
		{
			desc: "no authentication whatsoever",
			newRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/", nil)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "malformed token",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", "baba"))
				return req
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "token created with different secret",
			newRequest: func() *http.Request {
				token := signToken(
					"tessella",
					"not the correct secret",
					time.Now().Add(10*time.Minute),
				)
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
				return req
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "expired token",
			newRequest: func() *http.Request {
				token := signToken("tessella", secret, time.Now().Add(-10*time.Minute))
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
				return req
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "assembly token as a bearer token",
			newRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-1/pop/tiles/1", nil)
				req.Header.Set("Authorization", "Bearer "+assemblyToken("job-1"))
				return req
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "assembly token for its job",
			newRequest: func() *http.Request {
				return httptest.NewRequest(
					http.MethodGet,
					"/v1/jobs/job-1/pop/tiles/1?token="+assemblyToken("job-1"),
					nil,
				)
			},
			expectedCode: http.StatusOK,
		},
		{
			desc: "assembly token for another job",
			newRequest: func() *http.Request {
				return httptest.NewRequest(
					http.MethodGet,
					"/v1/jobs/job-2/pop/tiles/1?token="+assemblyToken("job-1"),
					nil,
				)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "assembly token for a job with the same prefix",
			newRequest: func() *http.Request {
				return httptest.NewRequest(
					http.MethodGet,
					"/v1/jobs/job-10/qr?token="+assemblyToken("job-1"),
					nil,
				)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "assembly token for deleting its job",
			newRequest: func() *http.Request {
				return httptest.NewRequest(
					http.MethodDelete,
					"/v1/jobs/job-1?token="+assemblyToken("job-1"),
					nil,
				)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			desc: "assembly token outside of jobs",
			newRequest: func() *http.Request {
				return httptest.NewRequest(
					http.MethodGet,
					"/v1/palettes?token="+assemblyToken("job-1"),
					nil,
				)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			var wrappedCalled bool
			wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				wrappedCalled = true
				w.WriteHeader(http.StatusOK)
			})

			h := webserver.NewAuthHandler(wrapped, username, password, secret, test.exceptions)

			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, test.newRequest())

			if resp.Code != test.expectedCode {
				t.Errorf("expected status code %d but got %d", test.expectedCode, resp.Code)
			}

			if test.expectedCode == http.StatusOK && !wrappedCalled {
				t.Errorf("wrapped handler was not called")
			}

			if test.expectedCode != http.StatusUnauthorized {
				return
			}

			if wrappedCalled {
				t.Errorf("wrapped handler was called for an unauthenticated request")
			}
			if resp.Header().Get("WWW-Authenticate") == "" {
				t.Errorf("WWW-Authenticate header is missing")
			}
			assertContentTypeJSON(t, resp.Header().Get("Content-Type"))
		})
	}
}

// TestAuthHandlerWithoutSecret makes sure tokens are never accepted when no
// secret is configured.
func TestAuthHandlerWithoutSecret(t *testing.T) {
	pl := jwt.Payload{
		Issuer:         "tessella",
		ExpirationTime: jwt.NumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.Sign(pl, jwt.NewHS256([]byte("")))
	if err != nil {
		t.Fatalf("signing token: %s", err)
	}

	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := webserver.NewAuthHandler(wrapped, "user", "pass", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+string(token))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status code %d but got %d", http.StatusUnauthorized, resp.Code)
	}
}

// TestServerWithAuthentication checks that the server as a whole lets
// through only authenticated requests, except for the health and login
// endpoints.
func TestServerWithAuthentication(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = true
	cfg.Authenticate.User = "user"
	cfg.Authenticate.Password = "pass"
	cfg.Authenticate.Secret = "server-secret"

	handler := newTestHandler(t, cfg, memoryStore())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, webserver.EndpointHealth, nil))
	if resp.Code != http.StatusOK {
		t.Errorf("health: expected status %d but got %d", http.StatusOK, resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(
		http.MethodGet, webserver.APIv1EndpointPalettes, nil,
	))
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("palettes without credentials: expected status %d but got %d",
			http.StatusUnauthorized, resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, jsonRequest(t, http.MethodPost, webserver.APIv1EndpointLoginToken,
		map[string]string{"username": "user", "password": "pass"},
	))
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected status %d but got %d", http.StatusOK, resp.Code)
	}

	var login struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp.Body, &login)

	req := httptest.NewRequest(http.MethodGet, webserver.APIv1EndpointPalettes, nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("palettes with token: expected status %d but got %d",
			http.StatusOK, resp.Code)
	}
}

func assertContentTypeJSON(t *testing.T, contentType string) {
	t.Helper()

	if !strings.HasPrefix(contentType, "application/json") {
		t.Errorf("expected JSON content type but got `%s`", contentType)
	}
}
