package http

import (
	"context"
	"net/http"

	"fundboard/internal/log"
	"fundboard/internal/notice"
	"fundboard/internal/session"
)

type ctxKey int

const sessionKey ctxKey = iota

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// expiredCookie tells the browser to drop the session cookie.
func (s *Server) expiredCookie() *http.Cookie {
	c := s.sessionCookie("")
	c.MaxAge = -1
	return c
}

func (s *Server) sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// withSession attaches the browser's session and a fresh notice board to the
// request. Notices flashed before a redirect seed the board. Visitors without
// a stored session get a transient one; no cookie is issued until the session
// is stored.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cookie.Name); err == nil {
			id = c.Value
		}
		sess, _ := s.sessions.Resolve(id)

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = notice.WithBoard(ctx, notice.NewBoard(sess.TakeFlash()...))
		ctx = log.NewContext(ctx, log.FromContext(ctx).With(log.FieldSessionID, sess.LogID()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the request's session. Handlers behind withSession
// always have one.
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
