/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikeb26/bcc-swiss/internal"
)

func displayRating(rating int) string {
	if rating == 0 {
		return "unr."
	}
	return fmt.Sprintf("%d", rating)
}

func playerLabel(c Competitor) string {
	return fmt.Sprintf("%s(%s %v)", c.Name, displayRating(c.Rating),
		internal.ScoreToString(c.Points))
}

// writeTable writes a header row and rows with every column padded to its
// widest cell.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if l := len(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}
	writeRow := func(cells []string) {
		line := make([]string, len(cells))
		for i, cell := range cells {
			line[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
		sb.WriteString("\n")
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
}

// BuildPairingsOutput formats the current round's pairings as an aligned
// table.
func BuildPairingsOutput(s State) string {
	var sb strings.Builder

	if len(s.Pairings) == 0 {
		if s.Phase() == PhaseCompleted {
			sb.WriteString("Tournament completed; no further pairings\n")
		} else {
			sb.WriteString(fmt.Sprintf("Round %v pairings have not been generated\n",
				s.Round))
		}
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Round %v Pairings:\n\n", s.Round))

	list := append([]Pairing{}, s.Pairings...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Table < list[j].Table
	})

	var rows [][]string
	for _, p := range list {
		w, _ := s.Competitor(p.WhiteID)
		b, _ := s.Competitor(p.BlackID)
		res := string(p.Result)
		if p.Status == StatusOngoing {
			res = "playing"
		}
		rows = append(rows, []string{fmt.Sprintf("%d.", p.Table),
			playerLabel(w), playerLabel(b), res})
	}
	if s.ByeID != "" {
		c, _ := s.Competitor(s.ByeID)
		rows = append(rows, []string{"n/a", playerLabel(c), "BYE(1)", ""})
	}
	writeTable(&sb, []string{"Board", "White", "Black", "Result"}, rows)

	return sb.String()
}

// BuildStandingsOutput formats the competitors in ranked order with their
// tiebreaks.
func BuildStandingsOutput(s State) string {
	var sb strings.Builder

	if s.Phase() == PhaseCompleted {
		sb.WriteString("Final Standings:\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Standings prior to Round %v:\n\n", s.Round))
	}

	var rows [][]string
	for idx, c := range s.Competitors {
		rows = append(rows, []string{
			fmt.Sprintf("%v.", idx+1),
			c.Name,
			displayRating(c.Rating),
			fmt.Sprintf("%.1f", c.Points),
			fmt.Sprintf("%.1f", c.Buchholz),
			fmt.Sprintf("%.1f", c.BuchholzCut1),
			fmt.Sprintf("%v", c.Wins),
		})
	}
	writeTable(&sb, []string{"Place", "Name", "Rating", "Score", "Bhz",
		"Bhz-C1", "Wins"}, rows)

	return sb.String()
}

// BuildWallChartOutput formats a cross table: one row per competitor in
// ranked order and one column per completed round. A cell such as "W3"
// means a win against the competitor currently placed 3rd; "B" is a bye.
func BuildWallChartOutput(s State) string {
	place := make(map[string]int, len(s.Competitors))
	for idx, c := range s.Competitors {
		place[c.ID] = idx + 1
	}

	cells := make(map[string][]string, len(s.Competitors))
	for _, c := range s.Competitors {
		cells[c.ID] = make([]string, len(s.Results))
		for r := range s.Results {
			cells[c.ID][r] = "-"
		}
	}
	set := func(id string, round int, v string) {
		if row, ok := cells[id]; ok {
			row[round] = v
		}
	}
	for r, rec := range s.Results {
		for _, g := range rec.Games {
			wOut, bOut := "D", "D"
			switch g.Result {
			case ResultWhiteWin:
				wOut, bOut = "W", "L"
			case ResultBlackWin:
				wOut, bOut = "L", "W"
			}
			set(g.WhiteID, r, fmt.Sprintf("%s%d", wOut, place[g.BlackID]))
			set(g.BlackID, r, fmt.Sprintf("%s%d", bOut, place[g.WhiteID]))
		}
		if rec.ByeID != "" {
			set(rec.ByeID, r, "B")
		}
	}

	header := []string{"Place", "Name", "Rating"}
	for r := range s.Results {
		header = append(header, fmt.Sprintf("R%d", r+1))
	}
	header = append(header, "Total")

	var rows [][]string
	for idx, c := range s.Competitors {
		row := []string{fmt.Sprintf("%v.", idx+1), c.Name,
			displayRating(c.Rating)}
		row = append(row, cells[c.ID]...)
		row = append(row, internal.ScoreToString(c.Points))
		rows = append(rows, row)
	}

	var sb strings.Builder
	writeTable(&sb, header, rows)

	return sb.String()
}
