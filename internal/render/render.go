// Package render writes dominance reports as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"roast-master/internal/domain"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	ownedColor   = color.New(color.FgGreen, color.Bold)
	nemesisColor = color.New(color.FgRed, color.Bold)
	rivalColor   = color.New(color.FgYellow)
	edgeColor    = color.New(color.FgCyan)
	quietColor   = color.New(color.FgHiBlack)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

func badgeColor(b domain.Badge) *color.Color {
	switch b {
	case domain.BadgeOwned:
		return ownedColor
	case domain.BadgeNemesis:
		return nemesisColor
	case domain.BadgeRival:
		return rivalColor
	case domain.BadgeEdge:
		return edgeColor
	default:
		return quietColor
	}
}

// cellText renders one matrix cell as "W-L (+0.33)", or "-" when the pair
// never played.
func cellText(c domain.Cell) string {
	if c.Games == 0 {
		return "-"
	}
	return badgeColor(c.Badge).Sprintf("%s (%s)", c.DisplayRecord, c.DisplayScore)
}

// Matrix writes the head-to-head grid, rows beating columns.
func Matrix(w io.Writer, r *domain.Report) error {
	names := make(map[string]string, len(r.Managers))
	for _, m := range r.Managers {
		names[m.Key] = m.Name
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Manager"}
	for _, k := range r.Matrix.Order {
		headers = append(headers, names[k])
	}
	headers = append(headers, "Total")
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range r.Matrix.Order {
		line := []string{names[row]}
		for _, col := range r.Matrix.Order {
			if row == col {
				line = append(line, "")
				continue
			}
			line = append(line, cellText(r.Matrix.Cells[row][col]))
		}
		t := r.Matrix.RowTotals[row]
		line = append(line, fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties))
		data = append(data, line)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %d managers, %d seasons, %d games\n",
		r.LeagueName, len(r.Managers), len(r.Seasons), r.Matrix.GrandTotals.Games/2)
	return err
}

// Insights writes the headline awards and every card.
func Insights(w io.Writer, r *domain.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Award", "Who", "Detail"})

	var data [][]string
	if l := r.Landlord; l != nil {
		victims := make([]string, 0, len(l.Victims))
		for _, v := range l.Victims {
			victims = append(victims, fmt.Sprintf("%s %s", v.Name, v.Record))
		}
		data = append(data, []string{"Landlord", l.Name, strings.Join(victims, ", ")})
	}
	if m := r.MostOwned; m != nil {
		data = append(data, []string{"Most Owned", m.Name,
			fmt.Sprintf("owned by %d, %d games", len(m.Owners), m.TotalGames)})
	}
	if rv := r.BiggestRivalry; rv != nil {
		data = append(data, []string{"Biggest Rivalry", rv.NameA + " vs " + rv.NameB,
			fmt.Sprintf("%s over %d games", rv.Record, rv.Games)})
	}
	if len(data) > 0 {
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	for _, group := range []struct {
		title string
		cards []domain.Card
	}{
		{"Storylines", r.Storylines},
		{"Hall of Fame", r.HeroCards},
	} {
		if len(group.cards) == 0 {
			continue
		}
		if _, err := titleColor.Fprintln(w, group.title); err != nil {
			return err
		}
		for _, c := range group.cards {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", c.Title, c.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// Seasons lists the week window and any failed weeks for each season.
func Seasons(w io.Writer, r *domain.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Season", "Playoffs", "Weeks", "Failed"})

	var data [][]string
	for _, s := range r.Seasons {
		playoffs := fmt.Sprintf("wk %d", s.PlayoffStartWeek)
		if s.PlayoffStartInferred {
			playoffs += "*"
		}
		weeks := "none"
		if s.WeekRange != nil {
			weeks = fmt.Sprintf("%d-%d", s.WeekRange.Start, s.WeekRange.End)
		}
		failed := ""
		if len(s.WeeksFailed) > 0 {
			failed = nemesisColor.Sprint(joinInts(s.WeeksFailed))
		}
		data = append(data, []string{s.Season, playoffs, weeks, failed})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
