package dominance

import (
	"sort"

	"roast-master/internal/domain"
)

// Builder collects one request's seasons and games and assembles the report.
// Seasons must be added oldest first.
type Builder struct {
	registry  *Registry
	pairs     []Pairing
	summaries []domain.SeasonSummary
	seasons   []domain.SeasonMeta
}

func NewBuilder() *Builder {
	return &Builder{registry: NewRegistry()}
}

func (b *Builder) Registry() *Registry {
	return b.registry
}

func (b *Builder) AddSeason(meta domain.SeasonMeta, summaries []domain.SeasonSummary) {
	if meta.WeeksIncluded == nil {
		meta.WeeksIncluded = []int{}
	}
	b.seasons = append(b.seasons, meta)
	b.summaries = append(b.summaries, summaries...)
}

func (b *Builder) AddPairs(pairs []Pairing) {
	b.pairs = append(b.pairs, pairs...)
}

func (b *Builder) Report(leagueID, leagueName string) domain.Report {
	managers := b.registry.Managers()
	names := NamesOf(managers)

	acc := NewAccumulator(b.registry.Keys())
	matchups := make([]domain.WeeklyMatchup, 0, len(b.pairs))
	for _, p := range b.pairs {
		if acc.Add(p) {
			matchups = append(matchups, p.Matchup())
		}
	}

	matrix := BuildMatrix(managers, acc.Cells())
	cells := Flatten(matrix)

	labels := make([]string, 0, len(b.seasons))
	for _, s := range b.seasons {
		labels = append(labels, s.Season)
	}
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	sort.SliceStable(matchups, func(i, j int) bool {
		if idx[matchups[i].Season] != idx[matchups[j].Season] {
			return idx[matchups[i].Season] < idx[matchups[j].Season]
		}
		return matchups[i].Week < matchups[j].Week
	})

	hero := HeroCards(HeroInput{
		Seasons:   labels,
		Matchups:  matchups,
		Summaries: b.summaries,
		Names:     names,
	})

	return domain.Report{
		LeagueID:        leagueID,
		LeagueName:      leagueName,
		Managers:        managers,
		Matrix:          matrix,
		Cells:           cells,
		SeasonSummaries: append([]domain.SeasonSummary{}, b.summaries...),
		WeeklyMatchups:  matchups,
		Seasons:         append([]domain.SeasonMeta{}, b.seasons...),
		Landlord:        FindLandlord(cells, names),
		MostOwned:       FindMostOwned(cells, names),
		BiggestRivalry:  FindBiggestRivalry(cells, names),
		Storylines:      Storylines(cells, names),
		HeroCards:       hero,
		Superlatives:    PersonalSuperlatives(matrix.Order, cells),
	}
}
