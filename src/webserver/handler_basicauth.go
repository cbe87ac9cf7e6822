package webserver

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ironsmile/aoede/src/webserver/webutils"
)

// basicAuthHandler is a handler wrapper used for basic authentication. Its
// only job is to check the request credentials and then pass the work to the
// handler it wraps around.
type basicAuthHandler struct {
	wrapped  http.Handler
	username string
	password string
}

// NewBasicAuthHandler wraps a handler and requires HTTP basic authentication
// with this username and password for every request.
func NewBasicAuthHandler(wrapped http.Handler, username, password string) http.Handler {
	return &basicAuthHandler{
		wrapped:  wrapped,
		username: username,
		password: password,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (hl *basicAuthHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	auth := req.Header.Get("Authorization")

	if auth == "" || !hl.authenticate(auth) {
		writer.Header().Set("WWW-Authenticate", `Basic realm="Aoede"`)
		webutils.JSONError(writer, "authentication required", http.StatusUnauthorized)
		return
	}

	hl.wrapped.ServeHTTP(writer, req)
}

// authenticate compares the authentication header with the configured user
// and password and returns true if they match.
func (hl *basicAuthHandler) authenticate(auth string) bool {
	s := strings.SplitN(auth, " ", 2)
	if len(s) != 2 || s[0] != "Basic" {
		return false
	}

	b, err := base64.StdEncoding.DecodeString(s[1])
	if err != nil {
		return false
	}

	pair := strings.SplitN(string(b), ":", 2)
	if len(pair) != 2 {
		return false
	}

	return pair[0] == hl.username && pair[1] == hl.password
}
