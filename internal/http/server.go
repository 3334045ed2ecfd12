package http

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fundboard/internal/auth"
	"fundboard/internal/gateway"
	"fundboard/internal/log"
	"fundboard/internal/middleware/security"
	"fundboard/internal/middleware/trace"
	"fundboard/internal/session"
	"fundboard/internal/views"
	appweb "fundboard/web"
)

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Gateway  *gateway.Client
	Sessions *session.Store
	Auth     *auth.Flow
	Views    *views.Views
	Cookie   CookieConfig
	Logger   *log.Logger
}

type Server struct {
	http.Server
	templates *template.Template
	logger    *log.Logger

	gw       *gateway.Client
	sessions *session.Store
	auth     *auth.Flow
	views    *views.Views
	cookie   CookieConfig

	traceMiddleware *trace.Middleware
	appMetrics      *appMetrics

	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime        time.Time
	logins        atomic.Int64
	loginFailures atomic.Int64
	registrations atomic.Int64
	logouts       atomic.Int64
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	if deps.Cookie.Name == "" {
		deps.Cookie.Name = "fundboard_session"
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			// Pages wait on the backend, so the write budget must cover its timeout.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger:     logger.WithComponent(log.ComponentHTTP),
		gw:         deps.Gateway,
		sessions:   deps.Sessions,
		auth:       deps.Auth,
		views:      deps.Views,
		cookie:     deps.Cookie,
		appMetrics: &appMetrics{uptime: time.Now()},
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := appweb.Static(); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	mux.Handle("/", s.withSession(http.HandlerFunc(s.handleIndex)))
	mux.Handle("/register", s.withSession(http.HandlerFunc(s.handleRegister)))
	mux.Handle("/login", s.withSession(http.HandlerFunc(s.handleLogin)))
	mux.Handle("/logout", s.withSession(http.HandlerFunc(s.handleLogout)))

	s.traceMiddleware = trace.NewMiddleware(security.ClientIP, logger)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Handler = s.traceMiddleware.Middleware(headers.Middleware(mux))

	return s
}

// Shutdown gracefully shuts down the server and the session cleanup loop.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
		if s.sessions != nil {
			s.sessions.Close()
		}
	})
	return shutdownErr
}

// render executes a page template into a buffer so a failure can still be
// reported with a proper status code.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	ctx := r.Context()
	name := data.Page.Template()
	if s.templates == nil {
		log.FromContext(ctx).ErrorContext(ctx, "Templates not loaded", log.FieldTemplate, name)
		Problem(http.StatusInternalServerError, "Templates not loaded").Send(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Template execution failed",
			log.FieldTemplate, name, log.FieldError, err)
		Problem(http.StatusInternalServerError, "Page rendering failed").Send(w)
		return
	}

	Respond(status).HTML(buf.Bytes()).Send(w)
}
