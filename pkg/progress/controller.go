// Package progress holds the pure decision rules for question advancement and
// week unlocking. Everything here is stateless and safe from any number of
// concurrent turns.
package progress

// ShouldAdvance reports whether a question is finished after the current
// iteration: either the classifier landed on a resolved scenario, or the
// iteration count reached the question's configured maximum, whichever comes
// first.
func ShouldAdvance(iteration, maxIterations int, scenario string, resolvedScenarios []string) bool {
	for _, s := range resolvedScenarios {
		if s == scenario {
			return true
		}
	}
	return maxIterations > 0 && iteration >= maxIterations
}

// WeekComplete reports whether every question of a week carries a completion.
func WeekComplete(questionCount, completedCount int) bool {
	return questionCount > 0 && completedCount >= questionCount
}

// IsWeekUnlocked is the strictly sequential gate: week 1 is always reachable,
// week N+1 only once week N is fully complete.
func IsWeekUnlocked(weekNumber int, priorWeekComplete bool) bool {
	if weekNumber <= 1 {
		return true
	}
	return priorWeekComplete
}
