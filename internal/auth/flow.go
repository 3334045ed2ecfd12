// Package auth implements the login and registration flows that move a
// session from unauthenticated to authenticated, and the logout that moves
// it back.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fundboard/internal/audit"
	"fundboard/internal/core"
	"fundboard/internal/gateway"
	"fundboard/internal/log"
	"fundboard/internal/notice"
	"fundboard/internal/session"
)

var (
	ErrMissingCredentials = errors.New("please enter both email and password")
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrRejected           = errors.New("rejected by backend")
	ErrUnavailable        = errors.New("backend unavailable")
)

// connectionRefused is shown when the backend gave no usable answer.
const connectionRefused = "Connection refused"

// Roles offered by the registration form.
var Roles = []string{"beneficiary", "authority", "auditor", "admin"}

// Transition tells the caller what to do after a mutating operation.
// Rerender means session state changed and the page router must run again.
type Transition struct {
	Rerender bool
}

// Flow runs authentication against the backend.
type Flow struct {
	gw     *gateway.Client
	audit  audit.Publisher
	logger *log.Logger
}

// NewFlow creates a Flow. A nil publisher disables session events.
func NewFlow(gw *gateway.Client, pub audit.Publisher, logger *log.Logger) *Flow {
	if pub == nil {
		pub = audit.Discard{}
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Flow{gw: gw, audit: pub, logger: logger.WithComponent(log.ComponentAuth)}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	Token string           `json:"token"`
	User  core.UserProfile `json:"user"`
}

// Login validates the credentials locally, then authenticates against the
// backend. The session is only touched on success.
func (f *Flow) Login(ctx context.Context, sess *session.Session, email, password string) (Transition, error) {
	board := notice.FromContext(ctx)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		board.Error("Please enter both email and password")
		return Transition{}, ErrMissingCredentials
	}

	res := gateway.Fetch[authData](ctx, f.gw, gateway.Call{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   credentials{Email: email, Password: password},
	})
	if err := f.establish(ctx, sess, res, audit.EventLogin); err != nil {
		board.Error("Login Failed: " + failureMessage(err))
		f.logger.WarnContext(ctx, "Login failed", log.FieldEmail, email, log.FieldError, err)
		return Transition{}, err
	}

	board.Success("Login Successful!")
	return Transition{Rerender: true}, nil
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	Organization  string `json:"organization,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// Normalize trims fields and applies the default role.
func (in RegisterInput) Normalize() RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	in.Organization = strings.TrimSpace(in.Organization)
	in.WalletAddress = strings.TrimSpace(in.WalletAddress)
	if in.Role == "" {
		in.Role = Roles[0]
	}
	return in
}

// Validate checks the fields the backend requires.
func (in RegisterInput) Validate() error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return ErrMissingFields
	}
	for _, r := range Roles {
		if in.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrInvalidRole, in.Role)
}

// Register creates an account and signs the session in with it.
func (f *Flow) Register(ctx context.Context, sess *session.Session, in RegisterInput) (Transition, error) {
	board := notice.FromContext(ctx)
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		board.Error("Registration Failed: " + err.Error())
		return Transition{}, err
	}

	res := gateway.Fetch[authData](ctx, f.gw, gateway.Call{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   in,
	})
	if err := f.establish(ctx, sess, res, audit.EventRegister); err != nil {
		board.Error("Registration Failed: " + failureMessage(err))
		f.logger.WarnContext(ctx, "Registration failed", log.FieldEmail, in.Email, log.FieldError, err)
		return Transition{}, err
	}

	board.Success("Registration Successful!")
	return Transition{Rerender: true}, nil
}

// Logout clears the session.
func (f *Flow) Logout(ctx context.Context, sess *session.Session) Transition {
	snap := sess.Get()
	sess.Clear()
	if snap.User != nil {
		f.publish(ctx, audit.NewEvent(audit.EventLogout, snap.User.Email, snap.User.Role, snap.User.Organization))
	}
	return Transition{Rerender: true}
}

func (f *Flow) establish(ctx context.Context, sess *session.Session, res gateway.Result[authData], ev audit.EventType) error {
	switch res.Kind {
	case gateway.Failed:
		return fmt.Errorf("%w: %s", ErrRejected, res.Message)
	case gateway.Unavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, res.Err)
	}
	if err := sess.SetAuthenticated(res.Data.Token, res.Data.User); err != nil {
		return fmt.Errorf("%w: response carried no token", ErrUnavailable)
	}

	u := res.Data.User
	f.logger.InfoContext(ctx, "Session authenticated",
		log.FieldOperation, string(ev), log.FieldEmail, u.Email, log.FieldRole, u.Role)
	f.publish(ctx, audit.NewEvent(ev, u.Email, u.Role, u.Organization))
	return nil
}

func (f *Flow) publish(ctx context.Context, e audit.Event) {
	if err := f.audit.Publish(ctx, e); err != nil {
		f.logger.ErrorContext(ctx, "Session event publish failed",
			log.FieldEventType, string(e.Type), log.FieldError, err)
	}
}

// failureMessage extracts the text shown to the user for a failed attempt.
func failureMessage(err error) string {
	if errors.Is(err, ErrRejected) {
		msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), ErrRejected.Error()+":"))
		if msg != "" {
			return msg
		}
	}
	return connectionRefused
}
