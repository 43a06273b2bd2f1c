package webserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gbrlsnchs/jwt/v3"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/webserver/webutils"
)

const (
	wrongLoginText = "wrong username or password"

	// tokenDuration is the validity of the API tokens.
	tokenDuration = 30 * 24 * time.Hour
)

type loginTokenHandler struct {
	auth config.Auth
}

// NewLoginTokenHandler returns a new login handler which will use the information in
// auth for deciding when a client was logged in correctly by entering
// username and password. It responds with a bearer token for the API.
func NewLoginTokenHandler(auth config.Auth) http.Handler {
	return &loginTokenHandler{
		auth: auth,
	}
}

func (h *loginTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqBody := struct {
		User string `json:"username"`
		Pass string `json:"password"`
	}{}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&reqBody); err != nil {
		webutils.JSONErrorf(w, http.StatusBadRequest, "Error parsing JSON request: %s.", err)
		return
	}

	if !checkLoginCreds(reqBody.User, reqBody.Pass, h.auth.User, h.auth.Password) {
		webutils.JSONError(w, wrongLoginText, http.StatusUnauthorized)
		return
	}

	if len(h.auth.Secret) == 0 {
		webutils.JSONError(
			w,
			"Error generating JWT: secret is empty.",
			http.StatusInternalServerError,
		)
		return
	}

	now := time.Now()
	pl := jwt.Payload{
		Issuer:         loginIssuer,
		IssuedAt:       jwt.NumericDate(now),
		ExpirationTime: jwt.NumericDate(now.Add(tokenDuration)),
	}

	token, err := jwt.Sign(pl, jwt.NewHS256([]byte(h.auth.Secret)))
	if err != nil {
		webutils.JSONErrorf(w, http.StatusInternalServerError, "Error generating JWT: %s.", err)
		return
	}

	respondWithJSON(w, http.StatusOK, &struct {
		Token string `json:"token"`
	}{
		Token: string(token),
	})
}
