package common

import (
	"net/http"

	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	sessionMaxAge = 60 * 60 * 24 * 30
)

type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

func setSessionCookie(w http.ResponseWriter, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   sessionMaxAge,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id from the request cookie. A
// missing or malformed cookie gets a fresh uuid, which is set on the
// response and reported to the tracker.
func HandleSessionCookie(tracker SessionTracker, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if tracker != nil {
		go tracker.TrackSession(sessionId, r.Clone(r.Context()))
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
