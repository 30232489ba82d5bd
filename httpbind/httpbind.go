package httpbind

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/message"
)

// MaxBodyBytes caps request bodies read by Conform. Override per binder via
// WithLimit.
const MaxBodyBytes = 1 << 20

// ctxKeyOutcome is a typed context key for storing a conform outcome.
type ctxKeyOutcome struct{}

// ContextWithOutcome attaches a validated outcome to the context.
func ContextWithOutcome(ctx context.Context, out verity.Outcome) context.Context {
	return context.WithValue(ctx, ctxKeyOutcome{}, out)
}

// OutcomeFromContext retrieves the outcome stored by middleware.
func OutcomeFromContext(ctx context.Context) (verity.Outcome, bool) {
	v, ok := ctx.Value(ctxKeyOutcome{}).(verity.Outcome)
	return v, ok
}

// Binder conforms request bodies against one contract.
type Binder struct {
	contract *verity.Contract
	limit    int64
}

// New wraps a contract for HTTP use.
func New(c *verity.Contract) *Binder {
	return &Binder{contract: c, limit: MaxBodyBytes}
}

// WithLimit sets the request body cap in bytes.
func (b *Binder) WithLimit(n int64) *Binder {
	b.limit = n
	return b
}

// Conform reads the request body and validates it. JSON and YAML bodies are
// selected by Content-Type; anything else is rejected. A decode error or an
// oversized body comes back as a plain error, a validation failure as the
// outcome's error tree.
func (b *Binder) Conform(r *http.Request) (verity.Outcome, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, b.limit+1))
	if err != nil {
		return verity.Outcome{}, fmt.Errorf("httpbind: read body: %w", err)
	}
	if int64(len(body)) > b.limit {
		return verity.Outcome{}, fmt.Errorf("httpbind: body exceeds %d bytes", b.limit)
	}
	ct := r.Header.Get("Content-Type")
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil && ct != "" {
		return verity.Outcome{}, fmt.Errorf("httpbind: content type: %w", err)
	}
	switch {
	case mt == "" || mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return b.contract.ConformJSON(body)
	case mt == "application/yaml" || mt == "text/yaml" || strings.HasSuffix(mt, "+yaml"):
		return b.contract.ConformYAML(body)
	default:
		return verity.Outcome{}, fmt.Errorf("httpbind: unsupported content type %q", mt)
	}
}

// Middleware conforms the body and stores the outcome in the request
// context; failures are answered with WriteFailure before next runs.
func (b *Binder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out, err := b.Conform(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !out.OK() {
			WriteFailure(w, out.Err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithOutcome(r.Context(), out)))
	})
}

// Payload shapes a failure tree for JSON responses: one entry per flattened
// node with its pointer path and rendered text.
func Payload(n verity.ErrorNode) map[string]any {
	msgs := message.Render(n)
	errs := make([]map[string]any, len(msgs))
	for i, m := range msgs {
		errs[i] = map[string]any{"path": m.Path, "message": m.Text}
	}
	return map[string]any{"errors": errs}
}

// WriteFailure renders a 422 with the failure payload.
func WriteFailure(w http.ResponseWriter, n verity.ErrorNode) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(Payload(n))
}
