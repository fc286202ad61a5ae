package dominance

import "roast-master/internal/domain"

type tally struct {
	wins, losses, ties       int
	pointsFor, pointsAgainst float64
}

// Accumulator folds games into directional records for every ordered pair of
// the managers it was created with.
type Accumulator struct {
	keys    []string
	index   map[string]int
	tallies [][]tally
}

func NewAccumulator(keys []string) *Accumulator {
	a := &Accumulator{
		keys:    append([]string(nil), keys...),
		index:   make(map[string]int, len(keys)),
		tallies: make([][]tally, len(keys)),
	}
	for i, k := range keys {
		a.index[k] = i
		a.tallies[i] = make([]tally, len(keys))
	}
	return a
}

// Add folds one game into both directions. Games involving an unknown
// manager or a manager against themself are ignored and reported as false.
func (a *Accumulator) Add(p Pairing) bool {
	i, ok := a.index[p.A]
	if !ok {
		return false
	}
	j, ok := a.index[p.B]
	if !ok || i == j {
		return false
	}

	ab, ba := &a.tallies[i][j], &a.tallies[j][i]
	ab.pointsFor += p.PointsA
	ab.pointsAgainst += p.PointsB
	ba.pointsFor += p.PointsB
	ba.pointsAgainst += p.PointsA

	switch {
	case p.PointsA > p.PointsB:
		ab.wins++
		ba.losses++
	case p.PointsB > p.PointsA:
		ab.losses++
		ba.wins++
	default:
		ab.ties++
		ba.ties++
	}
	return true
}

// Cells finalizes every ordered pair. The diagonal is returned zeroed and
// unclassified.
func (a *Accumulator) Cells() map[string]map[string]domain.Cell {
	out := make(map[string]map[string]domain.Cell, len(a.keys))
	for i, ki := range a.keys {
		row := make(map[string]domain.Cell, len(a.keys))
		for j, kj := range a.keys {
			if i == j {
				row[kj] = domain.Cell{
					Manager:       ki,
					Opponent:      kj,
					DisplayRecord: DisplayRecord(0, 0, 0),
					DisplayScore:  DisplayScore(0),
				}
				continue
			}
			row[kj] = finalize(ki, kj, a.tallies[i][j])
		}
		out[ki] = row
	}
	return out
}

func finalize(manager, opponent string, t tally) domain.Cell {
	games := t.wins + t.losses + t.ties
	score := Score(t.wins, t.losses, games)
	return domain.Cell{
		Manager:       manager,
		Opponent:      opponent,
		Wins:          t.wins,
		Losses:        t.losses,
		Ties:          t.ties,
		Games:         games,
		PointsFor:     t.pointsFor,
		PointsAgainst: t.pointsAgainst,
		Score:         score,
		Badge:         Classify(t.wins, t.losses, games, score),
		DisplayRecord: DisplayRecord(t.wins, t.losses, t.ties),
		DisplayScore:  DisplayScore(score),
	}
}
