package dominance

import (
	"sort"

	"roast-master/internal/domain"
)

// BuildMatrix assembles finalized cells with their totals. Managers are
// ordered by net wins, then total wins, then name; the order is presentation
// only.
func BuildMatrix(managers []domain.Manager, cells map[string]map[string]domain.Cell) domain.Matrix {
	m := domain.Matrix{
		Cells:        cells,
		RowTotals:    make(map[string]domain.Totals, len(managers)),
		ColumnTotals: make(map[string]domain.Totals, len(managers)),
	}

	names := make(map[string]string, len(managers))
	for _, mg := range managers {
		names[mg.Key] = mg.Name
		m.Order = append(m.Order, mg.Key)
	}

	var grand domain.Totals
	for _, row := range m.Order {
		for _, col := range m.Order {
			if row == col {
				continue
			}
			c := cells[row][col]

			rt := m.RowTotals[row]
			addCell(&rt, c)
			m.RowTotals[row] = rt

			ct := m.ColumnTotals[col]
			addCell(&ct, c)
			m.ColumnTotals[col] = ct

			addCell(&grand, c)
		}
	}
	for k, t := range m.RowTotals {
		t.Score = Score(t.Wins, t.Losses, t.Games)
		m.RowTotals[k] = t
	}
	for k, t := range m.ColumnTotals {
		t.Score = Score(t.Wins, t.Losses, t.Games)
		m.ColumnTotals[k] = t
	}
	grand.Score = Score(grand.Wins, grand.Losses, grand.Games)
	m.GrandTotals = grand

	sort.SliceStable(m.Order, func(i, j int) bool {
		a, b := m.RowTotals[m.Order[i]], m.RowTotals[m.Order[j]]
		if na, nb := a.Wins-a.Losses, b.Wins-b.Losses; na != nb {
			return na > nb
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if names[m.Order[i]] != names[m.Order[j]] {
			return names[m.Order[i]] < names[m.Order[j]]
		}
		return m.Order[i] < m.Order[j]
	})
	return m
}

func addCell(t *domain.Totals, c domain.Cell) {
	t.Wins += c.Wins
	t.Losses += c.Losses
	t.Ties += c.Ties
	t.Games += c.Games
	t.PointsFor += c.PointsFor
	t.PointsAgainst += c.PointsAgainst
}

// Flatten lists every off-diagonal cell in display order.
func Flatten(m domain.Matrix) []domain.Cell {
	out := make([]domain.Cell, 0, len(m.Order)*len(m.Order))
	for _, row := range m.Order {
		for _, col := range m.Order {
			if row == col {
				continue
			}
			out = append(out, m.Cells[row][col])
		}
	}
	return out
}
