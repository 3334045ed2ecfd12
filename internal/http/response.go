package http

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
)

// Response collects status, headers, client-side events and body before
// anything is written, so handlers can decide late and write once.
type Response struct {
	status int
	header map[string]string
	events map[string]any
	body   []byte
}

// Respond starts a response with the given status.
func Respond(status int) *Response {
	return &Response{
		status: status,
		header: make(map[string]string),
		events: make(map[string]any),
	}
}

// Event queues an htmx event for the HX-Trigger header. detail may be nil.
func (r *Response) Event(name string, detail any) *Response {
	r.events[name] = detail
	return r
}

// SessionChanged tells the page that the sign-in state flipped.
func (r *Response) SessionChanged(authenticated bool) *Response {
	return r.Event("session:changed", map[string]bool{"authenticated": authenticated})
}

// Redirect sends the browser to target. htmx follows HX-Redirect on a 200;
// plain form posts get 303 See Other so the follow-up is a GET.
func (r *Response) Redirect(req *http.Request, target string) *Response {
	if isHTMX(req) {
		r.header["HX-Redirect"] = target
		r.status = http.StatusOK
		return r
	}
	r.header["Location"] = target
	r.status = http.StatusSeeOther
	return r
}

// Set adds a response header.
func (r *Response) Set(name, value string) *Response {
	r.header[name] = value
	return r
}

// HTML sets a rendered page or fragment as the body.
func (r *Response) HTML(page []byte) *Response {
	r.header["Content-Type"] = "text/html; charset=utf-8"
	r.body = page
	return r
}

// Text sets a plain text body.
func (r *Response) Text(s string) *Response {
	r.header["Content-Type"] = "text/plain; charset=utf-8"
	r.body = []byte(s)
	return r
}

// Send writes the response.
func (r *Response) Send(w http.ResponseWriter) {
	h := w.Header()
	for name, value := range r.header {
		h.Set(name, value)
	}
	if len(r.events) > 0 {
		if encoded, err := json.Marshal(r.events); err == nil {
			h.Set("HX-Trigger", string(encoded))
		}
	}
	w.WriteHeader(r.status)
	if len(r.body) > 0 {
		_, _ = w.Write(r.body)
	}
}

// Problem is an error notice fragment; app.js swaps it into the page for
// htmx requests. The message is escaped.
func Problem(status int, message string) *Response {
	return Respond(status).HTML([]byte(
		`<div class="notice notice--error">` + template.HTMLEscapeString(message) + `</div>`))
}

// MethodNotAllowed answers 405 and lists the allowed methods.
func MethodNotAllowed(allowed ...string) *Response {
	return Respond(http.StatusMethodNotAllowed).Set("Allow", strings.Join(allowed, ", "))
}

// allowMethods returns a 405 response unless the request uses one of methods.
func allowMethods(r *http.Request, methods ...string) *Response {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowed(methods...)
}
