package http

import (
	"errors"
	"net/http"
	"time"

	"budzet/internal/core"
	"budzet/internal/log"
	"budzet/internal/middleware/security"
)

// userHandler is a handler for a route that requires a logged-in user. The
// user is resolved once per request and passed in explicitly.
type userHandler func(w http.ResponseWriter, r *http.Request, user core.User)

// requireLogin resolves the session cookie to a user. Requests without a
// live session are redirected to /login with 303. The request logger gains
// the user's id and name.
func (s *Server) requireLogin(h userHandler) http.Handler {
	return security.NoStore(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			redirect(w, r, "/login")
			return
		}

		user, err := s.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, core.ErrAuth) {
				s.clearSessionCookie(w)
				redirect(w, r, "/login")
				return
			}
			s.writeError(w, r, err)
			return
		}

		reqLogger := s.log(r).With(log.NewFields().WithUser(user.ID, user.Username).ToSlice()...)
		h(w, r.WithContext(log.WithLogger(r.Context(), reqLogger)), user)
	}))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess core.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
