package loop

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/seedplanter/seedloop/internal/guidance"
	"github.com/seedplanter/seedloop/internal/models"
	"github.com/seedplanter/seedloop/internal/store"
)

func TestLoop_EndToEnd(t *testing.T) {
	l, s := newTestLoop(t)
	defer s.Close()

	// Record a feature attempt and walk it to merged
	record, err := l.RecordAttempt(42, "Add dark mode", []string{"feature"}, "")
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if record.Category != "feature" {
		t.Errorf("Expected category feature, got %s", record.Category)
	}

	if _, err := l.UpdateStatus(42, models.StatusResolved, store.UpdateOptions{PRNumber: 100}); err != nil {
		t.Fatalf("UpdateStatus to resolved failed: %v", err)
	}
	if _, err := l.UpdateStatus(42, models.StatusMerged, store.UpdateOptions{}); err != nil {
		t.Fatalf("UpdateStatus to merged failed: %v", err)
	}

	report, err := l.Report(24 * time.Hour)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Overall.Total != 1 {
		t.Errorf("Expected 1 attempt, got %d", report.Overall.Total)
	}
	if report.Overall.ResolvedCount != 1 || report.Overall.MergedCount != 1 {
		t.Errorf("Expected 1 resolved and 1 merged, got %d / %d",
			report.Overall.ResolvedCount, report.Overall.MergedCount)
	}
	if report.Overall.SuccessRate != 1.0 {
		t.Errorf("Expected success rate 1.0, got %f", report.Overall.SuccessRate)
	}
}

func TestLoop_Guidance(t *testing.T) {
	l, s := newTestLoop(t)
	defer s.Close()

	// 4 merged bugs, 1 failed bug: success rate 0.8 over 5 samples
	for i := 1; i <= 4; i++ {
		mustRecord(t, l, i, "bug")
		mustUpdate(t, l, i, models.StatusResolved)
		mustUpdate(t, l, i, models.StatusMerged)
	}
	mustRecord(t, l, 5, "bug")
	mustUpdate(t, l, 5, models.StatusFailed)

	g, err := l.Guidance(24 * time.Hour)
	if err != nil {
		t.Fatalf("Guidance failed: %v", err)
	}

	if len(g.HighPriorityCategories) != 1 || g.HighPriorityCategories[0] != "bug" {
		t.Errorf("Expected bug prioritized, got %v", g.HighPriorityCategories)
	}
	w, ok := g.CategoryWeights["bug"]
	if !ok {
		t.Fatal("Expected weight for bug")
	}
	// exp(0.8*1.5)/e at full confidence
	if w < 1.22 || w > 1.23 {
		t.Errorf("Expected weight ~1.2214, got %f", w)
	}
}

func TestLoop_GuidanceEmptyStore(t *testing.T) {
	l, s := newTestLoop(t)
	defer s.Close()

	g, err := l.Guidance(24 * time.Hour)
	if err != nil {
		t.Fatalf("Guidance on empty store failed: %v", err)
	}
	if len(g.HighPriorityCategories) != 0 || len(g.LowPriorityCategories) != 0 {
		t.Error("Empty store should yield empty priority lists")
	}
	if g.PromptAdjustment == "" {
		t.Error("Empty store should yield a neutral adjustment string")
	}
}

// --- Helpers ---

func newTestLoop(t *testing.T) (*Loop, *store.Store) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return New(s, guidance.DefaultOptions()), s
}

func mustRecord(t *testing.T, l *Loop, issue int, label string) {
	t.Helper()
	if _, err := l.RecordAttempt(issue, fmt.Sprintf("Issue %d", issue), []string{label}, ""); err != nil {
		t.Fatalf("RecordAttempt(%d) failed: %v", issue, err)
	}
}

func mustUpdate(t *testing.T, l *Loop, issue int, status models.Status) {
	t.Helper()
	if _, err := l.UpdateStatus(issue, status, store.UpdateOptions{}); err != nil {
		t.Fatalf("UpdateStatus(%d, %s) failed: %v", issue, status, err)
	}
}
