package dominance

import "roast-master/internal/domain"

const (
	DefaultPlayoffStartWeek = 15
	minInferredPlayoffStart = 15
)

// PlayoffSettings carries whatever playoff boundary fields a league publishes.
// Zero means the field is absent.
type PlayoffSettings struct {
	PlayoffStartWeek int
	PlayoffWeekStart int
	PlayoffWeekEnd   int
}

// InferPlayoffStart returns the first playoff week and whether it had to be
// guessed. When only the last playoff week is known a two-round playoff is
// assumed.
func InferPlayoffStart(s PlayoffSettings) (int, bool) {
	switch {
	case s.PlayoffStartWeek > 0:
		return s.PlayoffStartWeek, false
	case s.PlayoffWeekStart > 0:
		return s.PlayoffWeekStart, false
	case s.PlayoffWeekEnd > 0:
		return max(minInferredPlayoffStart, s.PlayoffWeekEnd-1), true
	default:
		return DefaultPlayoffStartWeek, true
	}
}

// ResolveWeekRange clamps the requested window to one season. The second
// return value is false when the season contributes no weeks at all.
func ResolveWeekRange(start, end, playoffStart int, includePlayoffs bool) (domain.WeekRange, bool) {
	regularSeasonEnd := max(1, playoffStart-1)

	effectiveEnd := end
	if !includePlayoffs {
		effectiveEnd = min(end, regularSeasonEnd)
	}
	if effectiveEnd < start {
		return domain.WeekRange{}, false
	}
	return domain.WeekRange{Start: start, End: effectiveEnd}, true
}
