// Package guidance derives issue-generation recommendations from outcome
// statistics.
package guidance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/seedplanter/seedloop/internal/models"
	"github.com/seedplanter/seedloop/internal/weight"
)

// Options controls the thresholds used when building guidance.
type Options struct {
	// MinSamples is the minimum number of attempts before a category is
	// eligible for the priority lists.
	MinSamples int
	// HighSuccessThreshold is the success rate at or above which a category
	// is prioritized.
	HighSuccessThreshold float64
	// LowSuccessThreshold is the success rate below which a category is
	// de-emphasized.
	LowSuccessThreshold float64
	// FastResolveRatio flags a category as fast-resolving when its average
	// resolve time is at or below this fraction of the overall average.
	FastResolveRatio float64
}

// DefaultOptions returns the default guidance thresholds.
func DefaultOptions() Options {
	return Options{
		MinSamples:           3,
		HighSuccessThreshold: 0.7,
		LowSuccessThreshold:  0.4,
		FastResolveRatio:     0.7,
	}
}

// Build turns per-category statistics into structured generation guidance.
// It never fails: with no data it returns empty priority lists and a neutral
// adjustment string. Categories below MinSamples are excluded from both
// priority lists but still receive a computed weight.
func Build(perCategory map[string]models.CategoryStats, overall models.OverallStats, opts Options) models.Guidance {
	g := models.Guidance{
		HighPriorityCategories: []string{},
		LowPriorityCategories:  []string{},
		CategoryWeights:        make(map[string]float64, len(perCategory)),
		GeneratedAt:            time.Now().UTC(),
	}

	var high, low []models.CategoryStats
	for name, stats := range perCategory {
		g.CategoryWeights[name] = weight.Compute(stats.SuccessRate, stats.TotalAttempts)

		if stats.TotalAttempts < opts.MinSamples {
			continue
		}
		if stats.SuccessRate >= opts.HighSuccessThreshold {
			high = append(high, stats)
		} else if stats.SuccessRate < opts.LowSuccessThreshold {
			low = append(low, stats)
		}
	}

	// High-priority: descending weight. Low-priority: ascending success rate.
	// Category name breaks ties so output is deterministic.
	sort.Slice(high, func(i, j int) bool {
		wi := g.CategoryWeights[high[i].Category]
		wj := g.CategoryWeights[high[j].Category]
		if wi != wj {
			return wi > wj
		}
		return high[i].Category < high[j].Category
	})
	sort.Slice(low, func(i, j int) bool {
		if low[i].SuccessRate != low[j].SuccessRate {
			return low[i].SuccessRate < low[j].SuccessRate
		}
		return low[i].Category < low[j].Category
	})

	for _, s := range high {
		g.HighPriorityCategories = append(g.HighPriorityCategories, s.Category)
	}
	for _, s := range low {
		g.LowPriorityCategories = append(g.LowPriorityCategories, s.Category)
	}

	g.PromptAdjustment = buildAdjustment(g.HighPriorityCategories, g.LowPriorityCategories, perCategory, overall, opts)
	return g
}

// buildAdjustment renders the human-readable prompt-adjustment string.
func buildAdjustment(high, low []string, perCategory map[string]models.CategoryStats, overall models.OverallStats, opts Options) string {
	var parts []string

	if len(high) > 0 {
		parts = append(parts, fmt.Sprintf("Prioritize %s issues; they have a strong resolution history.", strings.Join(high, ", ")))
	}
	if len(low) > 0 {
		parts = append(parts, fmt.Sprintf("Generate fewer %s issues; they rarely resolve successfully.", strings.Join(low, ", ")))
	}

	for _, name := range fastResolvers(perCategory, overall, opts) {
		stats := perCategory[name]
		parts = append(parts, fmt.Sprintf("%s issues resolve quickly (avg %.0f min vs %.0f min overall).",
			name, stats.AvgResolveMinutes, overall.AvgResolveMinutes))
	}

	if len(parts) == 0 {
		return "No strong signal in outcome history yet; keep issue generation balanced across categories."
	}
	return strings.Join(parts, " ")
}

// fastResolvers returns categories whose average resolve time is notably
// below the overall average, sorted by name for stable output.
func fastResolvers(perCategory map[string]models.CategoryStats, overall models.OverallStats, opts Options) []string {
	if overall.AvgResolveMinutes <= 0 {
		return nil
	}
	var fast []string
	for name, stats := range perCategory {
		if stats.TotalAttempts < opts.MinSamples || stats.AvgResolveMinutes <= 0 {
			continue
		}
		if stats.AvgResolveMinutes <= overall.AvgResolveMinutes*opts.FastResolveRatio {
			fast = append(fast, name)
		}
	}
	sort.Strings(fast)
	return fast
}
