package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"budzet/internal/log"
	"budzet/internal/middleware/ratelimit"
	"budzet/internal/middleware/security"
	"budzet/internal/middleware/trace"
	"budzet/internal/services"
	appweb "budzet/web"
)

const sessionCookieName = "session"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server needs. All of them are created in
// main and owned there.
type Deps struct {
	Auth           *services.AuthService
	Transactions   *services.TransactionService
	Store          Pinger
	Logger         *log.Logger
	LoginRateLimit int  // POSTs per minute per IP on /login and /register
	CookieSecure   bool // set Secure on the session cookie
}

type Server struct {
	http.Server
	templates    *template.Template
	auth         *services.AuthService
	transactions *services.TransactionService
	store        Pinger
	logger       *log.Logger
	detector     *security.Detector
	limiter      *ratelimit.Limiter
	cookieSecure bool

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and wires routes and middleware.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = log.New(log.DefaultConfig())
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates:    t,
		auth:         deps.Auth,
		transactions: deps.Transactions,
		store:        deps.Store,
		logger:       deps.Logger.WithComponent(log.ComponentHTTP),
		detector:     security.NewDetector(deps.Logger),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.LoginRateLimit}),
		cookieSecure: deps.CookieSecure,
	}

	mux := http.NewServeMux()
	if err := s.routes(mux); err != nil {
		s.limiter.Stop()
		return nil, err
	}

	tracer := trace.NewMiddleware(deps.Logger, s.detector.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(s.detector.Middleware(headers.Middleware(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(mux *http.ServeMux) error {
	sub, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("mount static assets: %w", err)
	}
	static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
	mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	throttle := s.limiter.Middleware(s.detector.ExtractClientIP, s.rateLimited, http.MethodPost)
	mux.HandleFunc("GET /register", s.handleRegisterForm)
	mux.Handle("POST /register", throttle(http.HandlerFunc(s.handleRegister)))
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.Handle("POST /login", throttle(http.HandlerFunc(s.handleLogin)))
	mux.HandleFunc("GET /logout", s.handleLogout)

	mux.Handle("GET /{$}", s.requireLogin(s.handleIndex))
	mux.Handle("GET /add", s.requireLogin(s.handleAddForm))
	mux.Handle("POST /add", s.requireLogin(s.handleAdd))
	mux.Handle("GET /edit/{id}", s.requireLogin(s.handleEditForm))
	mux.Handle("POST /edit/{id}", s.requireLogin(s.handleEdit))
	mux.Handle("GET /delete/{id}", s.requireLogin(s.handleDelete))

	mux.Handle("GET /export/pdf", s.requireLogin(s.handleExportPDF))
	mux.Handle("GET /export/csv", s.requireLogin(s.handleExportCSV))
	mux.Handle("GET /chart", s.requireLogin(s.handleChart))
	return nil
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
