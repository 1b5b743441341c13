package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Policy decides what happens to a load when individual entries fail
type Policy string

const (
	// PolicyAbort fails the whole load on the first bad entry
	PolicyAbort Policy = "abort"
	// PolicySkip drops bad entries and keeps the rest
	PolicySkip Policy = "skip"
	// PolicyAsk defers to a confirmation callback
	PolicyAsk Policy = "ask"
)

// ParsePolicy maps a config string onto a Policy
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyAbort, PolicySkip, PolicyAsk:
		return p, nil
	case "":
		return PolicyAbort, nil
	}
	return "", fmt.Errorf("unknown load policy %q (want abort, skip or ask)", s)
}

// LoadResult is the outcome of reading a single entry from a Source
type LoadResult struct {
	Source string
	Path   string
	List   TodoList
	Err    error
}

// Source yields lists. A returned error means the source itself could not be read,
// which is always fatal; per-entry failures are reported through LoadResult.Err.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]LoadResult, error)
}

// ConfirmFunc is consulted under PolicyAsk. Returning true keeps the successful
// entries, false aborts.
type ConfirmFunc func(failed []LoadResult) bool

// Loader builds a Collection from an ordered set of sources
type Loader struct {
	sources []Source
	policy  Policy
	confirm ConfirmFunc
	log     *log.Logger
}

// NewLoader returns a Loader over the given sources. A nil logger discards output.
func NewLoader(policy Policy, logger *log.Logger, sources ...Source) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		sources: sources,
		policy:  policy,
		log:     logger,
	}
}

// SetConfirm registers the callback used by PolicyAsk
func (l *Loader) SetConfirm(f ConfirmFunc) {
	l.confirm = f
}

// Collect reads every source in order and returns all per-entry results, good and bad
func (l *Loader) Collect(ctx context.Context) ([]LoadResult, error) {
	var results []LoadResult
	for _, s := range l.sources {
		res, err := s.Load(ctx)
		if err != nil {
			l.log.Error("source failed", "source", s.Name(), "err", err)
			return nil, fmt.Errorf("loading %s: %w", s.Name(), err)
		}
		l.log.Debug("source loaded", "source", s.Name(), "entries", len(res))
		results = append(results, res...)
	}
	return results, nil
}

// Load reads every source and resolves failures according to the policy
func (l *Loader) Load(ctx context.Context) (Collection, error) {
	results, err := l.Collect(ctx)
	if err != nil {
		return nil, err
	}

	var failed []LoadResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	if len(failed) > 0 {
		switch l.policy {
		case PolicySkip:
		case PolicyAsk:
			if l.confirm == nil || !l.confirm(failed) {
				return nil, failed[0].wrapErr()
			}
		default:
			return nil, failed[0].wrapErr()
		}
		for _, f := range failed {
			l.log.Warn("skipping list", "source", f.Source, "path", f.Path, "err", f.Err)
		}
	}

	lists := make(Collection, 0, len(results)-len(failed))
	for _, r := range results {
		if r.Err == nil {
			lists = append(lists, r.List)
		}
	}
	l.log.Info("lists loaded", "count", len(lists), "skipped", len(failed))
	return lists, nil
}

func (r LoadResult) wrapErr() error {
	return fmt.Errorf("loading %s %s: %w", r.Source, r.Path, r.Err)
}
