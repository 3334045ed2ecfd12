package http

import (
	"errors"
	"net/http"

	"fundboard/internal/auth"
	"fundboard/internal/log"
	"fundboard/internal/notice"
	"fundboard/internal/session"
)

// handleLogin authenticates the session with the submitted credentials.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if resp := allowMethods(r, http.MethodPost); resp != nil {
		resp.Send(w)
		return
	}
	form, err := ReadSubmission(r)
	if err != nil {
		Problem(http.StatusBadRequest, "Invalid request body").Send(w)
		return
	}

	ctx := r.Context()
	sess := sessionFrom(ctx)
	email := form.Field("email")

	tr, err := s.auth.Login(ctx, sess, email, form.Secret("password"))
	if err != nil {
		s.appMetrics.loginFailures.Add(1)
		s.renderPage(w, r, PageLogin, sess.Get(), authStatus(err), formValues{Email: email})
		return
	}
	s.appMetrics.logins.Add(1)
	log.FromContext(ctx).InfoContext(ctx, "User signed in", log.FieldOperation, log.OpLogin)
	s.apply(w, r, sess, tr)
}

// handleRegister shows the registration form and creates accounts.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := sessionFrom(ctx)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		snap := sess.Get()
		if snap.Authenticated() {
			Respond(http.StatusSeeOther).Redirect(r, "/").Send(w)
			return
		}
		s.renderPage(w, r, Route(snap, string(PageRegister)), snap, http.StatusOK, formValues{})
		return
	case http.MethodPost:
	default:
		MethodNotAllowed(http.MethodGet, http.MethodHead, http.MethodPost).Send(w)
		return
	}

	form, err := ReadSubmission(r)
	if err != nil {
		Problem(http.StatusBadRequest, "Invalid request body").Send(w)
		return
	}
	in := auth.RegisterInput{
		Name:          form.Field("name"),
		Email:         form.Field("email"),
		Password:      form.Secret("password"),
		Role:          form.Field("role"),
		Organization:  form.Field("organization"),
		WalletAddress: form.Field("walletAddress"),
	}

	tr, err := s.auth.Register(ctx, sess, in)
	if err != nil {
		form := formValues{
			Name:          in.Name,
			Email:         in.Email,
			Role:          in.Role,
			Organization:  in.Organization,
			WalletAddress: in.WalletAddress,
		}
		s.renderPage(w, r, PageRegister, sess.Get(), authStatus(err), form)
		return
	}
	s.appMetrics.registrations.Add(1)
	log.FromContext(ctx).InfoContext(ctx, "User registered", log.FieldOperation, log.OpRegister)
	s.apply(w, r, sess, tr)
}

// handleLogout clears the session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := allowMethods(r, http.MethodPost); resp != nil {
		resp.Send(w)
		return
	}
	ctx := r.Context()
	sess := sessionFrom(ctx)
	tr := s.auth.Logout(ctx, sess)
	s.sessions.Forget(sess.ID())
	http.SetCookie(w, s.expiredCookie())
	s.appMetrics.logouts.Add(1)
	log.FromContext(ctx).InfoContext(ctx, "User signed out", log.FieldOperation, log.OpLogout)
	// The old ID is gone for good; any notices go out under a new one.
	s.apply(w, r, s.sessions.Begin(), tr)
}

// apply carries out a transition. A re-render is a redirect to the router so
// it evaluates the new session state; pending notices travel as flash. A
// session that just signed in moves to a fresh ID so an identifier handed out
// before authentication never becomes a signed-in one.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, sess *session.Session, tr auth.Transition) {
	if !tr.Rerender {
		Respond(http.StatusNoContent).Send(w)
		return
	}

	notices := notice.FromContext(r.Context()).Items()
	switch {
	case sess.Authenticated():
		sess = s.sessions.Rotate(sess)
		http.SetCookie(w, s.sessionCookie(sess.ID()))
	case len(notices) > 0:
		if s.sessions.Keep(sess) {
			http.SetCookie(w, s.sessionCookie(sess.ID()))
		}
	}
	sess.Flash(notices...)

	Respond(http.StatusSeeOther).
		SessionChanged(sess.Authenticated()).
		Redirect(r, "/").
		Send(w)
}

// authStatus maps a failed auth attempt to the status of the re-rendered form.
func authStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidRole):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrRejected):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
