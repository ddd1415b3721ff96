package ui

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "coinlab_session"

// sessionID returns the UUID identifying this browser session, minting and
// setting a cookie on first contact.
func sessionID(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id
		}
	}

	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
