// Package metrics computes aggregate statistics over outcome records.
//
// All functions are pure: they operate on an immutable snapshot of records
// returned by the store and hold no state of their own.
package metrics

import "github.com/seedplanter/seedloop/internal/models"

// Overall computes statistics across all records. An empty input is a valid
// "no data yet" case: all counts and rates are zero, never NaN.
func Overall(records []models.OutcomeRecord) models.OverallStats {
	stats := models.OverallStats{Total: len(records)}

	var resolveSum, mergeSum float64
	var resolveN, mergeN int
	for i := range records {
		r := &records[i]
		if r.Resolved() {
			stats.ResolvedCount++
		}
		switch r.Status {
		case models.StatusMerged:
			stats.MergedCount++
		case models.StatusFailed:
			stats.FailedCount++
		}
		if r.TimeToResolveMinutes != nil {
			resolveSum += *r.TimeToResolveMinutes
			resolveN++
		}
		if r.TimeToMergeMinutes != nil {
			mergeSum += *r.TimeToMergeMinutes
			mergeN++
		}
	}

	stats.SuccessRate = rate(stats.ResolvedCount, stats.Total)
	stats.MergeRate = rate(stats.MergedCount, stats.Total)
	stats.AvgResolveMinutes = avg(resolveSum, resolveN)
	stats.AvgMergeMinutes = avg(mergeSum, mergeN)
	return stats
}

// PerCategory computes statistics for each category present in records.
// Categories with zero attempts in the snapshot are omitted.
func PerCategory(records []models.OutcomeRecord) map[string]models.CategoryStats {
	byCategory := make(map[string][]models.OutcomeRecord)
	for _, r := range records {
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	result := make(map[string]models.CategoryStats, len(byCategory))
	for category, group := range byCategory {
		overall := Overall(group)
		result[category] = models.CategoryStats{
			Category:          category,
			TotalAttempts:     overall.Total,
			ResolvedCount:     overall.ResolvedCount,
			MergedCount:       overall.MergedCount,
			FailedCount:       overall.FailedCount,
			SuccessRate:       overall.SuccessRate,
			MergeRate:         overall.MergeRate,
			AvgResolveMinutes: overall.AvgResolveMinutes,
		}
	}
	return result
}

// rate returns n/total, or 0.0 when the denominator is zero.
func rate(n, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(n) / float64(total)
}

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0.0
	}
	return sum / float64(n)
}
