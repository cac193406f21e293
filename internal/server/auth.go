package server

import (
	"errors"
	"net/http"
	"strings"
)

var errNoSession = errors.New("no valid session")

// sessionFromRequest resolves the Bearer token to a live play session.
func sessionFromRequest(r *http.Request, sessions *SessionRegistry) (*playSession, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		// SSE and websocket clients can't set headers; accept a query
		// parameter there.
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return nil, errNoSession
	}
	sess, ok := sessions.Get(token)
	if !ok {
		return nil, errNoSession
	}
	return sess, nil
}

type adminSession struct {
	AdminID string
	Email   string
}

var errNoAdminSession = errors.New("no valid admin session")

const adminCookieName = "admin_session"

// adminFromRequest reads the admin_session cookie and looks up the admin
// session in the store.
func adminFromRequest(r *http.Request, store Store) (adminSession, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return adminSession{}, errNoAdminSession
	}

	return store.AdminFromSession(r.Context(), cookie.Value)
}
