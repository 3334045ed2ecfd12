// Package views builds the data behind each authenticated page. Views only
// read: they fetch from the backend, shape the result for templates and never
// touch session state.
package views

import (
	"context"
	"net/http"

	"fundboard/internal/gateway"
	"fundboard/internal/log"
	"fundboard/internal/session"
)

// Views renders page models from backend data.
type Views struct {
	gw     *gateway.Client
	logger *log.Logger
}

// New creates Views backed by gw.
func New(gw *gateway.Client, logger *log.Logger) *Views {
	if logger == nil {
		logger = log.Discard()
	}
	return &Views{gw: gw, logger: logger.WithComponent(log.ComponentViews)}
}

// Section describes how a backend-fed section resolved. Message holds the
// backend's explanation for a Failed result.
type Section struct {
	State   gateway.Kind
	Message string
}

// Available reports whether the section has data to render.
func (s Section) Available() bool { return s.State == gateway.OK }

func get[T any](ctx context.Context, v *Views, snap session.Snapshot, path string) (T, Section) {
	res := gateway.Fetch[T](ctx, v.gw, gateway.Call{
		Method:     http.MethodGet,
		Path:       path,
		Credential: snap.Credential,
	})
	if res.Kind == gateway.Failed {
		v.logger.WarnContext(ctx, "Backend refused view data",
			log.FieldAPIPath, path, log.FieldOutcome, res.Message)
	}
	return res.Data, Section{State: res.Kind, Message: res.Message}
}
