/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package swiss

import (
	"strings"
	"testing"
)

// threePlayerRound plays round 1 over three competitors: p01 beats p03 and
// p02 takes the bye.
func threePlayerRound(t *testing.T) *Tournament {
	t.Helper()
	tourney := newTestTournament(t, makeRegistry(2000, 1800, 1600), 3, Options{})
	if _, err := tourney.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return tourney
}

func TestBuildPairingsOutput(t *testing.T) {
	tourney := newTestTournament(t, makeRegistry(2000, 1800, 1600), 3, Options{})
	out := BuildPairingsOutput(tourney.Snapshot())
	if !strings.Contains(out, "Round 1 pairings have not been generated") {
		t.Errorf("unexpected output before generate:\n%v", out)
	}

	if _, err := tourney.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if err := tourney.StartGame(1); err != nil {
		t.Fatalf("StartGame returned error: %v", err)
	}
	out = BuildPairingsOutput(tourney.Snapshot())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%v", len(lines), out)
	}
	if lines[0] != "Round 1 Pairings:" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "Board") || !strings.HasSuffix(lines[2], "Result") {
		t.Errorf("column header = %q", lines[2])
	}
	for _, want := range []string{"1.", "Player 01(2000 0)", "Player 03(1600 0)",
		"playing"} {
		if !strings.Contains(lines[3], want) {
			t.Errorf("board line %q missing %q", lines[3], want)
		}
	}
	for _, want := range []string{"n/a", "Player 02(1800 1)", "BYE(1)"} {
		if !strings.Contains(lines[4], want) {
			t.Errorf("bye line %q missing %q", lines[4], want)
		}
	}
	// columns are aligned on the widest cell
	if strings.Index(lines[3], "Player 01") != strings.Index(lines[4], "Player 02") {
		t.Errorf("white column not aligned:\n%v", out)
	}

	if err := tourney.SubmitResult(1, ResultWhiteWin); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	out = BuildPairingsOutput(tourney.Snapshot())
	if !strings.Contains(out, "1-0") || strings.Contains(out, "playing") {
		t.Errorf("finished board not shown with its result:\n%v", out)
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	tourney := threePlayerRound(t)
	if err := tourney.SubmitResult(1, ResultWhiteWin); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	if _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	out := BuildStandingsOutput(tourney.Snapshot())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Standings prior to Round 2:" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%v", len(lines), out)
	}
	order := []string{"Player 01", "Player 02", "Player 03"}
	for idx, name := range order {
		if !strings.Contains(lines[3+idx], name) {
			t.Errorf("place %d line %q; want %v", idx+1, lines[3+idx], name)
		}
	}
	if !strings.Contains(lines[5], "0.0") {
		t.Errorf("expected zero score for last place: %q", lines[5])
	}
}

func TestBuildStandingsOutputFinal(t *testing.T) {
	tourney := newTestTournament(t, makeRegistry(1500, 0), 1, Options{})
	if _, err := tourney.Generate(); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if err := tourney.SubmitResult(1, ResultDraw); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	if _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	out := BuildStandingsOutput(tourney.Snapshot())
	if !strings.HasPrefix(out, "Final Standings:") {
		t.Errorf("unexpected header:\n%v", out)
	}
	if !strings.Contains(out, "unr.") {
		t.Errorf("unrated competitor not shown as unr.:\n%v", out)
	}
	if p := BuildPairingsOutput(tourney.Snapshot()); !strings.Contains(p,
		"Tournament completed") {
		t.Errorf("unexpected pairings output after completion:\n%v", p)
	}
}

func TestBuildWallChartOutput(t *testing.T) {
	tourney := threePlayerRound(t)
	if err := tourney.SubmitResult(1, ResultWhiteWin); err != nil {
		t.Fatalf("SubmitResult returned error: %v", err)
	}
	if _, err := tourney.Advance(); err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}

	out := BuildWallChartOutput(tourney.Snapshot())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%v", len(lines), out)
	}
	if !strings.Contains(lines[0], "R1") || !strings.HasSuffix(lines[0], "Total") {
		t.Errorf("header = %q", lines[0])
	}
	want := []struct {
		name string
		cell string
	}{
		{"Player 01", "W3"},
		{"Player 02", "B"},
		{"Player 03", "L1"},
	}
	for idx, w := range want {
		fields := strings.Fields(lines[1+idx])
		// place, first name, last name, rating, R1, total
		if len(fields) != 6 {
			t.Fatalf("row %q: unexpected fields %v", lines[1+idx], fields)
		}
		if fields[1]+" "+fields[2] != w.name || fields[4] != w.cell {
			t.Errorf("row %d = %v; want %v with %v", idx+1, fields, w.name, w.cell)
		}
	}
}
