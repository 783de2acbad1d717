/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"sort"
)

// Rank returns a copy of cs ordered by points, Buchholz, Buchholz Cut-1,
// wins and rating, all descending. Full ties keep their input order.
func Rank(cs []Competitor) []Competitor {
	ranked := cloneCompetitors(cs)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Buchholz != b.Buchholz {
			return a.Buchholz > b.Buchholz
		}
		if a.BuchholzCut1 != b.BuchholzCut1 {
			return a.BuchholzCut1 > b.BuchholzCut1
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Rating > b.Rating
	})

	return ranked
}

// AdvanceRound applies one round's results to a copy of cs, recomputes
// every competitor's tiebreaks and returns the re-ranked list. Results that
// reference unknown competitors or carry no recognized outcome are skipped.
func AdvanceRound(cs []Competitor, results []GameResult) []Competitor {
	updated := cloneCompetitors(cs)
	byID := indexByID(updated)

	for _, res := range results {
		white, wok := byID[res.WhiteID]
		black, bok := byID[res.BlackID]
		if !wok || !bok || !res.Result.Valid() {
			continue
		}
		white.Games++
		black.Games++
		switch res.Result {
		case ResultWhiteWin:
			white.Points += 1
			white.Wins++
		case ResultBlackWin:
			black.Points += 1
			black.Wins++
		case ResultDraw:
			white.Points += 0.5
			black.Points += 0.5
		}
	}
	ApplyTiebreaks(updated)

	return Rank(updated)
}
