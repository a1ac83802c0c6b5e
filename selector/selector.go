// Package selector resolves caller-supplied request strings into concrete
// operations of a document. Each request is tried against three strategies in
// order, stopping at the first that yields anything: operationId match
// (exact, then substring), method+path match (or bare path for all methods),
// and fuzzy text match over the operation's descriptive fields.
package selector

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oasminify/document"
	"github.com/erraggy/oasminify/internal/naming"
	"github.com/erraggy/oasminify/internal/textmatch"
)

// Defaults for the fuzzy strategy.
const (
	DefaultFuzzyThreshold = 0.25
	DefaultFuzzyLimit     = 5
)

// Descriptor identifies one selected operation. Method is lowercase, as in
// document.Operation.
type Descriptor struct {
	// Method is the lowercase HTTP method
	Method string
	// Path is the path template
	Path string
	// OperationID is the declared operationId, empty when absent
	OperationID string
	// Operation is the typed view of the selected operation
	Operation *document.Operation
}

// String formats the descriptor as "METHOD path (label)", where the label is
// the operationId or, when absent, a display name derived from the method
// and path.
func (d Descriptor) String() string {
	label := d.OperationID
	if label == "" {
		label = naming.DisplayName(d.Method, d.Path)
	}
	return fmt.Sprintf("%s %s (%s)", strings.ToUpper(d.Method), d.Path, label)
}

// Option configures selection.
type Option func(*selector)

// WithLogger sets the logger used for selection diagnostics.
func WithLogger(logger document.Logger) Option {
	return func(s *selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFuzzyThreshold overrides the minimum similarity ratio for fuzzy
// matches. Values outside (0, 1] are ignored.
func WithFuzzyThreshold(threshold float64) Option {
	return func(s *selector) {
		if threshold > 0 && threshold <= 1 {
			s.threshold = threshold
		}
	}
}

// WithFuzzyLimit overrides the maximum number of fuzzy matches per request.
func WithFuzzyLimit(limit int) Option {
	return func(s *selector) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

type selector struct {
	logger    document.Logger
	threshold float64
	limit     int
}

// methodPathPattern accepts "POST:/path" and "POST /path" forms.
var methodPathPattern = regexp.MustCompile(`^\s*(\w+)\s*[:\s]\s*(\S+)\s*$`)

// Select resolves requests against the document's operations. The result
// preserves request order and first-seen operation order, de-duplicated by
// (path, method). A request matching nothing contributes nothing; that is not
// an error at this layer.
func Select(doc *document.Document, requests []string, opts ...Option) []Descriptor {
	s := &selector{
		logger:    document.NopLogger{},
		threshold: DefaultFuzzyThreshold,
		limit:     DefaultFuzzyLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	ops := doc.Operations()
	var candidates []*document.Operation
	for _, req := range requests {
		hits := s.byOperationID(ops, req)
		if len(hits) == 0 {
			hits = s.byMethodAndPath(ops, req)
		}
		if len(hits) == 0 {
			hits = s.fuzzy(ops, req)
		}
		if len(hits) == 0 {
			s.logger.Debug("no operations matched request", "request", req)
		}
		candidates = append(candidates, hits...)
	}

	type key struct{ method, path string }
	seen := make(map[key]struct{}, len(candidates))
	out := make([]Descriptor, 0, len(candidates))
	for _, op := range candidates {
		k := key{op.Method, op.Path}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, Descriptor{
			Method:      op.Method,
			Path:        op.Path,
			OperationID: op.OperationID,
			Operation:   op,
		})
	}
	return out
}

// byOperationID matches case-insensitively against operationId: exact
// matches win; only when none exist does it fall back to substring matches.
func (s *selector) byOperationID(ops []*document.Operation, req string) []*document.Operation {
	q := strings.ToLower(strings.TrimSpace(req))
	if q == "" {
		return nil
	}
	var exact, partial []*document.Operation
	for _, op := range ops {
		id := strings.ToLower(op.OperationID)
		if id == "" {
			continue
		}
		switch {
		case id == q:
			exact = append(exact, op)
		case strings.Contains(id, q):
			partial = append(partial, op)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return partial
}

// byMethodAndPath matches "METHOD:/path" or "METHOD /path" exactly; any
// request not in that shape is treated as a bare path selecting all methods
// defined at that path.
func (s *selector) byMethodAndPath(ops []*document.Operation, req string) []*document.Operation {
	if m := methodPathPattern.FindStringSubmatch(req); m != nil {
		method, path := strings.ToLower(m[1]), m[2]
		var out []*document.Operation
		for _, op := range ops {
			if op.Method == method && op.Path == path {
				out = append(out, op)
			}
		}
		return out
	}
	path := strings.TrimSpace(req)
	var out []*document.Operation
	for _, op := range ops {
		if op.Path == path {
			out = append(out, op)
		}
	}
	return out
}

// fuzzy scores the request against each operation's descriptive text and
// keeps the closest matches above the threshold.
func (s *selector) fuzzy(ops []*document.Operation, req string) []*document.Operation {
	q := strings.ToLower(req)
	type scored struct {
		ratio float64
		op    *document.Operation
	}
	var hits []scored
	for _, op := range ops {
		hay := strings.ToLower(strings.Join([]string{
			op.OperationID,
			op.Summary,
			op.Description,
			strings.Join(op.Tags, " "),
			op.Method + " " + op.Path,
		}, " "))
		ratio := textmatch.Ratio(hay, q)
		if ratio > s.threshold {
			hits = append(hits, scored{ratio: ratio, op: op})
		}
	}
	// Stable sort keeps document order among equally scored operations.
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].ratio > hits[b].ratio })
	if len(hits) > s.limit {
		hits = hits[:s.limit]
	}
	out := make([]*document.Operation, len(hits))
	for i, h := range hits {
		out[i] = h.op
	}
	if len(out) > 0 {
		s.logger.Debug("fuzzy match resolved request", "request", req, "matches", len(out))
	}
	return out
}
