// Package models defines the core domain types for the outcome feedback loop.
package models

import "time"

// Status represents the current state of a resolution attempt.
type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusMerged   Status = "merged"
	StatusClosed   Status = "closed"
	StatusFailed   Status = "failed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusMerged, StatusClosed, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is a terminal status. No transition is
// permitted out of a terminal status.
func (s Status) Terminal() bool {
	switch s {
	case StatusMerged, StatusClosed, StatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next:
//
//	pending  -> resolved | failed
//	resolved -> merged | closed
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusResolved || next == StatusFailed
	case StatusResolved:
		return next == StatusMerged || next == StatusClosed
	}
	return false
}

// OutcomeRecord describes the lifecycle of a single automated
// issue-resolution attempt.
type OutcomeRecord struct {
	ID                   string     `json:"id"`
	IssueNumber          int        `json:"issue_number"`
	IssueTitle           string     `json:"issue_title"`
	Category             string     `json:"category"`
	Labels               []string   `json:"labels,omitempty"`
	Status               Status     `json:"status"`
	PRNumber             int        `json:"pr_number,omitempty"`
	FilesChanged         int        `json:"files_changed"`
	ErrorMessage         string     `json:"error_message,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	MergedAt             *time.Time `json:"merged_at,omitempty"`
	TimeToResolveMinutes *float64   `json:"time_to_resolve_minutes,omitempty"`
	TimeToMergeMinutes   *float64   `json:"time_to_merge_minutes,omitempty"`
}

// Resolved reports whether the attempt produced a pull request, i.e. reached
// at least the resolved state.
func (r *OutcomeRecord) Resolved() bool {
	switch r.Status {
	case StatusResolved, StatusMerged, StatusClosed:
		return true
	}
	return false
}

// OverallStats aggregates attempt outcomes across all categories.
type OverallStats struct {
	Total             int     `json:"total"`
	ResolvedCount     int     `json:"resolved_count"`
	MergedCount       int     `json:"merged_count"`
	FailedCount       int     `json:"failed_count"`
	SuccessRate       float64 `json:"success_rate"`
	MergeRate         float64 `json:"merge_rate"`
	AvgResolveMinutes float64 `json:"avg_resolve_minutes"`
	AvgMergeMinutes   float64 `json:"avg_merge_minutes"`
}

// CategoryStats aggregates attempt outcomes for one category.
type CategoryStats struct {
	Category          string  `json:"category"`
	TotalAttempts     int     `json:"total_attempts"`
	ResolvedCount     int     `json:"resolved_count"`
	MergedCount       int     `json:"merged_count"`
	FailedCount       int     `json:"failed_count"`
	SuccessRate       float64 `json:"success_rate"`
	MergeRate         float64 `json:"merge_rate"`
	AvgResolveMinutes float64 `json:"avg_resolve_minutes"`
}

// Guidance is the recommendation consumed by the issue-generation prompt
// builder. It is recomputed on every call and never persisted.
type Guidance struct {
	HighPriorityCategories []string           `json:"high_priority_categories"`
	LowPriorityCategories  []string           `json:"low_priority_categories"`
	CategoryWeights        map[string]float64 `json:"category_weights"`
	PromptAdjustment       string             `json:"prompt_adjustment"`
	GeneratedAt            time.Time          `json:"generated_at"`
}
