package session

import (
	"net/http"
	"time"
)

const CookieName = "user_session"

// FromRequest returns the session id carried by the request cookie, or "".
func FromRequest(req *http.Request) string {
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// Cookie - builds the session cookie so it expires together with the stored session.
func Cookie(id string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Expires:  time.Now().Add(ttl),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func SetCookie(writer http.ResponseWriter, id string, ttl time.Duration) {
	http.SetCookie(writer, Cookie(id, ttl))
}

// ClearCookie - removes the session cookie from the browser.
func ClearCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
