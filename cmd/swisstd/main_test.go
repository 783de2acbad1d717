/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/internal/config"
	"github.com/mikeb26/bcc-swiss/store"
	"github.com/mikeb26/bcc-swiss/swiss"
)

const playersJSON = `[
	{"id": "1", "firstName": "Ann", "lastName": "Lee", "rating": "1850"},
	{"id": "2", "firstName": "Bo", "lastName": "Chan", "rating": 1720},
	{"id": "3", "firstName": "Cy", "lastName": "Roe", "rating": 1600},
	{"id": "4", "firstName": "Di", "lastName": "Fox", "rating": "unrated"}
]`

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	st, err := store.NewFileStore(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	var out bytes.Buffer
	return &app{
		cfg:        &config.Config{TotalRounds: 2},
		log:        zerolog.Nop(),
		store:      st,
		out:        &out,
		errw:       &bytes.Buffer{},
		httpClient: http.DefaultClient,
	}, &out
}

func writePlayers(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	if err := os.WriteFile(path, []byte(playersJSON), 0o600); err != nil {
		t.Fatalf("write players: %v", err)
	}
	return path
}

func mustRun(t *testing.T, a *app, out *bytes.Buffer, args ...string) string {
	t.Helper()
	out.Reset()
	if err := a.run(context.Background(), args); err != nil {
		t.Fatalf("%v returned error: %v", args, err)
	}
	return out.String()
}

func TestTournamentLifecycle(t *testing.T) {
	a, out := newTestApp(t)
	players := writePlayers(t)

	got := mustRun(t, a, out, "new", "--id", "club-ch", "--players", players)
	if !strings.Contains(got, "4 competitors over 2 rounds") {
		t.Errorf("unexpected new output: %v", got)
	}
	if err := a.run(context.Background(), []string{"new", "--id", "club-ch",
		"--players", players}); err == nil {
		t.Errorf("expected error creating a duplicate tournament")
	}

	for round := 1; round <= 2; round++ {
		got = mustRun(t, a, out, "pair", "--id", "club-ch")
		if !strings.Contains(got, fmt.Sprintf("Round %d Pairings:", round)) {
			t.Fatalf("unexpected pairings output:\n%v", got)
		}
		mustRun(t, a, out, "start", "--id", "club-ch", "--board", "1")
		mustRun(t, a, out, "result", "--id", "club-ch", "--board", "1",
			"--result", "1-0")
		got = mustRun(t, a, out, "result", "--id", "club-ch", "--board", "2",
			"--result", "draw")
		if !strings.Contains(got, "run advance") {
			t.Errorf("expected advance hint, got %v", got)
		}
		got = mustRun(t, a, out, "advance", "--id", "club-ch")
		if !strings.Contains(got, "Standings") {
			t.Errorf("unexpected advance output:\n%v", got)
		}
	}
	if !strings.HasPrefix(got, "Final Standings:") {
		t.Errorf("expected final standings after the last round:\n%v", got)
	}

	err := a.run(context.Background(), []string{"pair", "--id", "club-ch"})
	if !errors.Is(err, swiss.ErrTournamentComplete) {
		t.Errorf("pair after completion: got %v; want ErrTournamentComplete", err)
	}

	got = mustRun(t, a, out, "wallchart", "--id", "club-ch")
	if !strings.Contains(got, "R2") {
		t.Errorf("unexpected wall chart:\n%v", got)
	}
	got = mustRun(t, a, out, "stats", "--id", "club-ch")
	if !strings.Contains(got, "Games played: 4 (2 decisive, 2 drawn, 50% draws)") {
		t.Errorf("unexpected stats:\n%v", got)
	}
	got = mustRun(t, a, out, "list")
	if !strings.Contains(got, "club-ch  4 competitors  completed") {
		t.Errorf("unexpected list output: %v", got)
	}

	mustRun(t, a, out, "reset", "--id", "club-ch")
	got = mustRun(t, a, out, "pairings", "--id", "club-ch")
	if !strings.Contains(got, "Round 1 pairings have not been generated") {
		t.Errorf("unexpected pairings after reset:\n%v", got)
	}

	mustRun(t, a, out, "delete", "--id", "club-ch")
	err = a.run(context.Background(), []string{"standings", "--id", "club-ch"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("standings after delete: got %v; want ErrNotFound", err)
	}
}

func TestResultRejected(t *testing.T) {
	a, out := newTestApp(t)
	mustRun(t, a, out, "new", "--id", "t1", "--players", writePlayers(t))
	mustRun(t, a, out, "pair", "--id", "t1")

	err := a.run(context.Background(), []string{"result", "--id", "t1",
		"--board", "7", "--result", "1-0"})
	if !errors.Is(err, swiss.ErrInvalidTableReference) {
		t.Errorf("got %v; want ErrInvalidTableReference", err)
	}
	err = a.run(context.Background(), []string{"result", "--id", "t1",
		"--board", "1", "--result", "2-0"})
	if !errors.Is(err, swiss.ErrInvalidResult) {
		t.Errorf("got %v; want ErrInvalidResult", err)
	}
	err = a.run(context.Background(), []string{"advance", "--id", "t1"})
	if !errors.Is(err, swiss.ErrRoundNotReady) {
		t.Errorf("got %v; want ErrRoundNotReady", err)
	}
	err = a.run(context.Background(), []string{"add", "--id", "t1",
		"--first", "Late", "--last", "Comer"})
	if !errors.Is(err, swiss.ErrPairingsExist) {
		t.Errorf("got %v; want ErrPairingsExist", err)
	}
}

func TestNewDuplicatePlayers(t *testing.T) {
	a, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "players.json")
	dup := `[{"id": "7", "firstName": "Ann", "lastName": "Lee"},
		{"id": "7", "firstName": "Bo", "lastName": "Chan"}]`
	if err := os.WriteFile(path, []byte(dup), 0o600); err != nil {
		t.Fatalf("write players: %v", err)
	}

	err := a.run(context.Background(), []string{"new", "--id", "dup",
		"--players", path})
	if !errors.Is(err, swiss.ErrDuplicateCompetitor) {
		t.Fatalf("expected ErrDuplicateCompetitor, got %v", err)
	}
	if _, err := a.store.Load(context.Background(), "dup"); !errors.Is(err,
		store.ErrNotFound) {
		t.Errorf("tournament saved despite duplicate ids: %v", err)
	}
}

func TestAddCompetitor(t *testing.T) {
	a, out := newTestApp(t)
	mustRun(t, a, out, "new", "--id", "t1", "--players", writePlayers(t))
	got := mustRun(t, a, out, "add", "--id", "t1", "--first", "Eve",
		"--last", "Park", "--rating", "1400", "--uscfid", "30000001")
	if !strings.Contains(got, "Added Eve Park") {
		t.Errorf("unexpected add output: %v", got)
	}
	got = mustRun(t, a, out, "standings", "--id", "t1")
	if !strings.Contains(got, "Eve Park") {
		t.Errorf("late entrant missing from standings:\n%v", got)
	}
}

func TestNewFromEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"eventId": 77, "title": "Thursday Swiss", "entries": [
			{"firstName": "Ann", "lastName": "Lee", "uscfId": 11, "sectionName": "Open", "primaryRating": "1850"},
			{"firstName": "Bo", "lastName": "Chan", "uscfId": 12, "sectionName": "Open", "primaryRating": "1720"}
		]}`)
	}))
	defer srv.Close()

	a, out := newTestApp(t)
	// route the club API host to the test server
	a.httpClient = &http.Client{Transport: rewriteTransport{target: srv.URL}}

	got := mustRun(t, a, out, "new", "--id", "thu", "--eventid", "77",
		"--section", "Open", "--rounds", "3")
	if !strings.Contains(got, "2 competitors over 3 rounds") {
		t.Errorf("unexpected new output: %v", got)
	}
	s, err := a.store.Load(context.Background(), "thu")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Competitors[0].ID != "11" || s.Competitors[0].Rating != 1850 {
		t.Errorf("unexpected competitor %+v", s.Competitors[0])
	}
}

func TestEventCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"eventId": 78, "title": "Saturday Swiss", "entries": [
			{"firstName": "Ann", "lastName": "Lee", "uscfId": 11, "sectionName": "U1800", "primaryRating": "1750"},
			{"firstName": "Bo", "lastName": "Chan", "uscfId": 12, "sectionName": "Open", "primaryRating": "2010"},
			{"firstName": "Cy", "lastName": "Roe", "uscfId": 13, "sectionName": "Open", "primaryRating": "1900"}
		]}`)
	}))
	defer srv.Close()

	a, out := newTestApp(t)
	a.httpClient = &http.Client{Transport: rewriteTransport{target: srv.URL}}

	got := mustRun(t, a, out, "event", "--eventid", "78")
	for _, want := range []string{"Saturday Swiss", "Sections: Open, U1800",
		"Bo Chan"} {
		if !strings.Contains(got, want) {
			t.Errorf("event output missing %q:\n%v", want, got)
		}
	}
	if strings.Count(got, "Sections:") != 1 {
		t.Errorf("expected one sections line:\n%v", got)
	}
}

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u := rt.target + req.URL.Path
	r2, err := http.NewRequestWithContext(req.Context(), req.Method, u, nil)
	if err != nil {
		return nil, err
	}
	r2.Header = req.Header.Clone()
	return http.DefaultTransport.RoundTrip(r2)
}

func TestParseResult(t *testing.T) {
	cases := []struct {
		in   string
		want swiss.Result
		ok   bool
	}{
		{"1-0", swiss.ResultWhiteWin, true},
		{"0-1", swiss.ResultBlackWin, true},
		{"Draw", swiss.ResultDraw, true},
		{"½-½", swiss.ResultDraw, true},
		{"1/2-1/2", swiss.ResultDraw, true},
		{"2-0", swiss.ResultUnset, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parseResult(c.in)
			if (err == nil) != c.ok || got != c.want {
				t.Errorf("parseResult(%q) = %v, %v; want %v", c.in, got, err, c.want)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.run(context.Background(), []string{"bogus"}); !errors.Is(err, errUsage) {
		t.Errorf("got %v; want errUsage", err)
	}
	if err := a.run(context.Background(), []string{"pair"}); !errors.Is(err, errUsage) {
		t.Errorf("missing --id: got %v; want errUsage", err)
	}
}
