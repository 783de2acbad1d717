/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"testing"
)

func TestGetStats(t *testing.T) {
	tourney := newTestTournament(t, makeRegistry(2000, 1800, 1600, 1400, 0), 3,
		Options{})
	if _, err := tourney.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if err := tourney.SubmitResult(1, ResultDraw); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	if err := tourney.SubmitResult(2, ResultWhiteWin); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	if _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	if _, err := tourney.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if err := tourney.StartGame(2); err != nil {
		t.Fatalf("StartGame returned error: %v", err)
	}
	if err := tourney.SubmitResult(1, ResultBlackWin); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}

	st := GetStats(tourney.Snapshot())
	want := Stats{
		Competitors:     5,
		GamesPlayed:     2,
		DecisiveGames:   1,
		Draws:           1,
		ByesAwarded:     2,
		DrawRate:        50,
		CompletedGames:  1,
		OngoingGames:    1,
		NotStartedGames: 0,
		AverageRating:   1360,
	}
	if st != want {
		t.Errorf("GetStats = %+v; want %+v", st, want)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	st := GetStats(newState(nil, 0))
	if st != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", st)
	}
}
