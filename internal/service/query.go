package service

import (
	"strings"

	"github.com/RubachokBoss/driving-test-service/internal/models"
)

const statsDateLayout = "2006-01-02"

// FilterByName keeps results whose names contain the given fragments,
// ignoring case. Empty fragments do not filter. The result is never nil.
func FilterByName(results []models.TestResult, firstName, lastName string) []models.TestResult {
	filtered := make([]models.TestResult, 0, len(results))
	filtered = append(filtered, results...)

	if firstName != "" {
		filtered = filterBy(filtered, firstName, func(r models.TestResult) string { return r.FirstName })
	}

	if lastName != "" {
		filtered = filterBy(filtered, lastName, func(r models.TestResult) string { return r.LastName })
	}

	return filtered
}

func filterBy(results []models.TestResult, fragment string, field func(models.TestResult) string) []models.TestResult {
	needle := strings.ToLower(fragment)

	matched := make([]models.TestResult, 0, len(results))
	for _, result := range results {
		if strings.Contains(strings.ToLower(field(result)), needle) {
			matched = append(matched, result)
		}
	}

	return matched
}

// AggregateByDay counts passed and failed results per UTC day of creation.
// Pending results are skipped entirely, so a day holding only pending
// results has no entry.
func AggregateByDay(results []models.TestResult) models.StatsResponse {
	stats := make(models.StatsResponse)

	for _, result := range results {
		var passed, notPassed int
		switch result.OverallStatus {
		case models.OverallStatusPassed:
			passed = 1
		case models.OverallStatusFailed:
			notPassed = 1
		default:
			continue
		}

		day := result.CreatedAt.UTC().Format(statsDateLayout)
		entry := stats[day]
		entry.Passed += passed
		entry.NotPassed += notPassed
		stats[day] = entry
	}

	return stats
}
