package handlers

import (
	"net/http"

	"github.com/bobmcallan/market-portal/internal/session"
	"github.com/bobmcallan/market-portal/internal/view"
)

// SessionCookieName is the cookie carrying the market view session ID.
const SessionCookieName = "market_session"

// resolveSession returns the caller's view session, issuing a new cookie when
// the request carries none or an expired one.
func resolveSession(w http.ResponseWriter, r *http.Request, store *session.Store) (string, *view.Session) {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	id, sess, created := store.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id, sess
}
