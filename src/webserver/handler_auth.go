package webserver

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/webserver/webutils"
)

// loginIssuer is the "iss" claim of the API tokens created by the login
// token handler.
const loginIssuer = "tessella"

// jobsPathPrefix is the beginning of all job scoped API paths.
const jobsPathPrefix = "/v1/jobs/"

// AuthHandler is a handler wrapper used for authentication. Its only job is
// to do the authentication and then pass the work to the Handler it wraps around.
// Possible methods for authentication:
//
//   - Basic Auth with the username and password
//   - Authorization Bearer JWT token
//   - JWT token as a query string
//   - Assembly token as a query string. It gives read only access to the
//     paths of the single job it was created for.
type AuthHandler struct {
	wrapped    http.Handler // The actual handler that does the APP Logic job
	username   string       // Username to be used for basic authenticate
	password   string       // Password to be used for basic authenticate
	secret     string       // Secret used to craft and decode tokens
	exceptions []string     // Paths which will be exempt from authentication

	now func() time.Time
}

// NewAuthHandler returns an AuthHandler wrapping handler. Requests for paths
// starting with any of the exceptions are not authenticated.
func NewAuthHandler(
	handler http.Handler,
	username, password, secret string,
	exceptions []string,
) *AuthHandler {
	return &AuthHandler{
		wrapped:    handler,
		username:   username,
		password:   password,
		secret:     secret,
		exceptions: exceptions,
		now:        time.Now,
	}
}

// ServeHTTP implements the http.Handler interface and does the actual
// authentication check for every request.
func (hl *AuthHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if !hl.authenticated(req) {
		writer.Header().Set("WWW-Authenticate", `Basic realm="Tessella"`)
		webutils.JSONError(writer, "authentication required", http.StatusUnauthorized)
		return
	}

	hl.wrapped.ServeHTTP(writer, req)
}

// Compares the authentication header with the stored user and passwords
// and returns true if they pass.
func (hl *AuthHandler) authenticated(r *http.Request) bool {
	for _, path := range hl.exceptions {
		if strings.HasPrefix(r.URL.Path, path) {
			return true
		}
	}

	authHeader := r.Header.Get("Authorization")

	if strings.HasPrefix(authHeader, "Bearer ") {
		return hl.withJWT(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if strings.HasPrefix(authHeader, "Basic ") {
		return hl.withBasicAuth(strings.TrimPrefix(authHeader, "Basic "))
	}

	if queryToken := r.URL.Query().Get("token"); queryToken != "" {
		return hl.withJWT(queryToken) || hl.withAssemblyToken(queryToken, r)
	}

	return false
}

func (hl *AuthHandler) withBasicAuth(encoded string) bool {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return false
	}

	pair := strings.SplitN(string(b), ":", 2)

	if len(pair) != 2 {
		return false
	}

	return checkLoginCreds(pair[0], pair[1], hl.username, hl.password)
}

func (hl *AuthHandler) withJWT(token string) bool {
	if hl.secret == "" {
		return false
	}

	var pl jwt.Payload
	_, err := jwt.Verify(
		[]byte(token),
		jwt.NewHS256([]byte(hl.secret)),
		&pl,
		jwt.ValidatePayload(
			&pl,
			jwt.IssuerValidator(loginIssuer),
			jwt.ExpirationTimeValidator(hl.now()),
		),
	)

	return err == nil
}

// withAssemblyToken accepts tokens from printed assembly links. They are
// good only for reading the paths of their own job.
func (hl *AuthHandler) withAssemblyToken(token string, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	jobID, err := export.VerifyAssemblyToken(hl.secret, token, hl.now())
	if err != nil {
		return false
	}

	return strings.HasPrefix(r.URL.Path, jobsPathPrefix+jobID+"/")
}

func checkLoginCreds(user, pass, expectedUser, expectedPass string) bool {
	return user == expectedUser && pass == expectedPass
}
