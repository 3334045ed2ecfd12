package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fundboard/internal/core"
)

// maxFormBytes caps login and registration bodies.
const maxFormBytes = 64 << 10

var errBodyTooLarge = errors.New("request body too large")

// Submission is a decoded form post. htmx sends urlencoded forms; JSON bodies
// are accepted as well so scripts can drive the same endpoints.
type Submission struct {
	values url.Values
}

// ReadSubmission reads and decodes the request body once.
func ReadSubmission(r *http.Request) (*Submission, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxFormBytes {
		return nil, errBodyTooLarge
	}

	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if strings.HasPrefix(ct, "application/json") || (len(raw) > 0 && raw[0] == '{') {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		values := make(url.Values, len(fields))
		for k, v := range fields {
			if s, ok := scalar(v); ok {
				values.Set(k, s)
			}
		}
		return &Submission{values: values}, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decode form body: %w", err)
	}
	return &Submission{values: values}, nil
}

// Field returns a trimmed value with control characters removed.
func (s *Submission) Field(key string) string {
	return sanitizeInput(s.values.Get(key))
}

// Secret returns a value exactly as submitted. Passwords are never trimmed.
func (s *Submission) Secret(key string) string {
	return s.values.Get(key)
}

// scalar flattens JSON strings, numbers and booleans; anything else is
// ignored.
func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// ParseFundFilter reads the status and category selections from a query.
func ParseFundFilter(query url.Values) core.FundFilter {
	return core.NewFundFilter(
		sanitizeInput(query.Get("status")),
		sanitizeInput(query.Get("category")),
	)
}
