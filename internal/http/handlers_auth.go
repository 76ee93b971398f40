package http

import (
	"net/http"
)

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", page{Title: "Rejestracja"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		http.Error(w, "Nieprawidłowy formularz", http.StatusBadRequest)
		return
	}

	if _, err := s.auth.Register(r.Context(), username, password); err != nil {
		s.writeError(w, r, err)
		return
	}
	redirect(w, r, "/login")
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", page{Title: "Logowanie"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		http.Error(w, "Nieprawidłowy formularz", http.StatusBadRequest)
		return
	}

	sess, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess)
	redirect(w, r, "/")
}

// handleLogout ends the session if there is one; an anonymous logout just
// lands on the login page.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.clearSessionCookie(w)
	redirect(w, r, "/login")
}
