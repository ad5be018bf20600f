// Package loop wires the outcome store to the analytics pipeline. It is the
// surface that host automation (issue resolvers, prompt builders, the CLI)
// calls.
package loop

import (
	"time"

	"github.com/seedplanter/seedloop/internal/guidance"
	"github.com/seedplanter/seedloop/internal/metrics"
	"github.com/seedplanter/seedloop/internal/models"
	"github.com/seedplanter/seedloop/internal/store"
)

// Loop provides the feedback loop business logic.
type Loop struct {
	store *store.Store
	opts  guidance.Options
}

// New creates a new feedback loop over the given store.
func New(s *store.Store, opts guidance.Options) *Loop {
	return &Loop{store: s, opts: opts}
}

// RecordAttempt records the start of a resolution attempt.
func (l *Loop) RecordAttempt(issueNumber int, issueTitle string, labels []string, category string) (*models.OutcomeRecord, error) {
	return l.store.RecordAttempt(issueNumber, issueTitle, labels, category)
}

// UpdateStatus transitions an attempt through its lifecycle.
func (l *Loop) UpdateStatus(issueNumber int, newStatus models.Status, opts store.UpdateOptions) (*models.OutcomeRecord, error) {
	return l.store.UpdateStatus(issueNumber, newStatus, opts)
}

// Recent returns attempts recorded within the window, newest first.
func (l *Loop) Recent(window time.Duration, category string) ([]models.OutcomeRecord, error) {
	return l.store.Query(window, category)
}

// Report bundles the overall and per-category statistics for one window.
type Report struct {
	Window     time.Duration                   `json:"-"`
	Overall    models.OverallStats             `json:"overall"`
	Categories map[string]models.CategoryStats `json:"categories"`
}

// Report computes statistics over the attempts recorded within the window.
func (l *Loop) Report(window time.Duration) (*Report, error) {
	records, err := l.store.Query(window, "")
	if err != nil {
		return nil, err
	}
	return &Report{
		Window:     window,
		Overall:    metrics.Overall(records),
		Categories: metrics.PerCategory(records),
	}, nil
}

// Guidance derives generation guidance from the attempts recorded within the
// window.
func (l *Loop) Guidance(window time.Duration) (*models.Guidance, error) {
	records, err := l.store.Query(window, "")
	if err != nil {
		return nil, err
	}
	g := guidance.Build(metrics.PerCategory(records), metrics.Overall(records), l.opts)
	return &g, nil
}
