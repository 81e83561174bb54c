package session

import "net/http"

const CookieName = "wa_session"

// Ensure returns the request's live session ID, starting a new session and setting the cookie when there is none.
func (s *Store) Ensure(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && s.Exists(c.Value) {
		return c.Value
	}
	id := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return id
}
