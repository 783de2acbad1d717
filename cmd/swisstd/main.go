/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/bcc"
	"github.com/mikeb26/bcc-swiss/internal/config"
	"github.com/mikeb26/bcc-swiss/internal/httpcache"
	"github.com/mikeb26/bcc-swiss/internal/logger"
	"github.com/mikeb26/bcc-swiss/store"
	"github.com/mikeb26/bcc-swiss/swiss"
	"github.com/mikeb26/bcc-swiss/uschess"
)

//go:embed help.txt
var helpText string

var errUsage = errors.New("invalid usage")

// app carries the dependencies shared by every command.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store store.Store
	out   io.Writer
	errw  io.Writer

	httpClient *http.Client
}

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, a *app, args []string) error

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"new":       handleNew,
	"add":       handleAdd,
	"list":      handleList,
	"delete":    handleDelete,
	"reset":     handleReset,
	"event":     handleEvent,
	"pair":      handlePair,
	"start":     handleStart,
	"result":    handleResult,
	"advance":   handleAdvance,
	"pairings":  handlePairings,
	"standings": handleStandings,
	"wallchart": handleWallChart,
	"stats":     handleStats,
	"export":    handleExport,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(1)
	}

	log := logger.NewConsole(os.Getenv("SWISS_LOG_LEVEL"))
	cfg, err := config.Load(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		os.Exit(1)
	}
	log = logger.NewConsole(cfg.LogLevel)

	st, err := store.Open(ctx, cfg.StoreDir, cfg.S3Bucket, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		os.Exit(1)
	}
	a := &app{
		cfg:   cfg,
		log:   log,
		store: st,
		out:   os.Stdout,
		errw:  os.Stderr,
		httpClient: httpcache.NewCachedHttpClient(ctx, cfg.S3Bucket,
			cfg.HttpCacheTTL, log),
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage(a.out)
		return errUsage
	}
	handler, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.errw, "Unknown command: %s\n", args[0])
		usage(a.out)
		return errUsage
	}
	return handler(ctx, a, args[1:])
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%v", helpText)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errw)
	return fs
}

func (a *app) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// parseID parses a flag set that carries only --id.
func (a *app) parseID(name string, args []string) (string, error) {
	fs := a.flagSet(name)
	id := fs.String("id", "", "Tournament id")
	if err := a.parse(fs, args); err != nil {
		return "", err
	}
	if *id == "" {
		fmt.Fprintln(a.errw, "Please provide a valid --id.")
		fs.Usage()
		return "", errUsage
	}
	return *id, nil
}

func (a *app) options() swiss.Options {
	return swiss.Options{Logger: &a.log}
}

func (a *app) load(ctx context.Context, id string) (*swiss.Tournament, error) {
	s, err := a.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return swiss.Restore(*s, a.options()), nil
}

func (a *app) save(ctx context.Context, id string, t *swiss.Tournament) error {
	s := t.Snapshot()
	return a.store.Save(ctx, id, &s)
}

// update loads a tournament, applies fn and saves the result when fn
// succeeds.
func (a *app) update(ctx context.Context, id string,
	fn func(t *swiss.Tournament) error) (*swiss.Tournament, error) {

	t, err := a.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := a.save(ctx, id, t); err != nil {
		return nil, err
	}
	return t, nil
}

func handleHelp(ctx context.Context, a *app, args []string) error {
	usage(a.out)
	return nil
}

func handleNew(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("new")
	id := fs.String("id", "", "Tournament id")
	players := fs.String("players", "", "JSON file of registrants")
	eventID := fs.Int("eventid", 0, "Club event id to read entries from")
	section := fs.String("section", "", "Event section")
	rounds := fs.Int("rounds", a.cfg.TotalRounds, "Number of rounds")
	useUSCF := fs.Bool("uscf", false, "Refresh ratings from the USCF ratings API")
	system := fs.String("system", "R", "USCF rating system (R, Q or B)")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *id == "" || (*players == "") == (*eventID <= 0) {
		fmt.Fprintln(a.errw, "Please provide --id and exactly one of --players or --eventid.")
		fs.Usage()
		return errUsage
	}
	if err := store.ValidateID(*id); err != nil {
		return err
	}
	if _, err := a.store.Load(ctx, *id); err == nil {
		return fmt.Errorf("tournament %v already exists", *id)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	var regs []swiss.Registrant
	var err error
	if *players != "" {
		regs, err = readRegistrants(*players)
	} else {
		client := bcc.NewClient(a.httpClient, a.log)
		regs, err = client.GetRegistrants(ctx, int64(*eventID), *section)
	}
	if err != nil {
		return err
	}
	if *useUSCF {
		client := uschess.NewClient(a.httpClient, a.log)
		regs, _, err = client.EnrichRatings(ctx, regs, *system, 0)
		if err != nil {
			return err
		}
	}

	t, err := swiss.NewTournament(regs, *rounds, a.options())
	if err != nil {
		return err
	}
	if err := a.save(ctx, *id, t); err != nil {
		return err
	}
	s := t.Snapshot()
	fmt.Fprintf(a.out, "Created tournament %v with %d competitors over %d rounds\n",
		*id, len(s.Competitors), s.TotalRounds)

	return nil
}

func readRegistrants(path string) ([]swiss.Registrant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read registrants: %w", err)
	}
	var regs []swiss.Registrant
	if err := json.Unmarshal(data, &regs); err != nil {
		return nil, fmt.Errorf("unable to parse registrants %v: %w", path, err)
	}
	return regs, nil
}

func handleAdd(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("add")
	id := fs.String("id", "", "Tournament id")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	rating := fs.Int("rating", 0, "Rating (0 for unrated)")
	uscfID := fs.Int("uscfid", 0, "USCF member id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *id == "" || (*first == "" && *last == "") {
		fmt.Fprintln(a.errw, "Please provide --id and a name.")
		fs.Usage()
		return errUsage
	}

	r := swiss.Registrant{
		FirstName: *first,
		LastName:  *last,
		Rating:    swiss.FlexRating(*rating),
		UscfID:    *uscfID,
	}
	if *uscfID > 0 {
		r.ID = fmt.Sprintf("%d", *uscfID)
	}
	if _, err := a.update(ctx, *id, func(t *swiss.Tournament) error {
		return t.AddCompetitor(r)
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %v\n", r.DisplayName())

	return nil
}

func handleList(ctx context.Context, a *app, args []string) error {
	ids, err := a.store.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No tournaments found.")
		return nil
	}
	for _, id := range ids {
		s, err := a.store.Load(ctx, id)
		if err != nil {
			a.log.Warn().Err(err).Str("id", id).Msg("swisstd.list: unreadable snapshot")
			continue
		}
		round := fmt.Sprintf("round %d/%d", s.Round, s.TotalRounds)
		if s.Phase() == swiss.PhaseCompleted {
			round = "completed"
		}
		fmt.Fprintf(a.out, "%v  %d competitors  %v (%v)\n", id,
			len(s.Competitors), round, s.Phase())
	}
	return nil
}

func handleDelete(ctx context.Context, a *app, args []string) error {
	id, err := a.parseID("delete", args)
	if err != nil {
		return err
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %v\n", id)
	return nil
}

func handleReset(ctx context.Context, a *app, args []string) error {
	id, err := a.parseID("reset", args)
	if err != nil {
		return err
	}
	if _, err := a.update(ctx, id, func(t *swiss.Tournament) error {
		t.Reset()
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reset %v to round 1\n", id)
	return nil
}

func handleEvent(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("event")
	eventID := fs.Int("eventid", 0, "Event ID to fetch details for")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if *eventID <= 0 {
		fmt.Fprintln(a.errw, "Please provide a valid --eventid ID.")
		fs.Usage()
		return errUsage
	}
	client := bcc.NewClient(a.httpClient, a.log)
	detail, err := client.GetEventDetail(ctx, int64(*eventID))
	if err != nil {
		return fmt.Errorf("unable to fetch event %d: %w", *eventID, err)
	}
	fmt.Fprint(a.out, bcc.BuildEventOutput(detail, ""))
	var sections []string
	for _, sec := range bcc.Sections(detail.Entries) {
		if sec != "" {
			sections = append(sections, sec)
		}
	}
	if len(sections) > 0 {
		fmt.Fprintf(a.out, "Sections: %v\n", strings.Join(sections, ", "))
	}
	fmt.Fprintln(a.out)
	fmt.Fprint(a.out, bcc.BuildEntriesOutput(detail.Entries))

	return nil
}

func handlePair(ctx context.Context, a *app, args []string) error {
	id, err := a.parseID("pair", args)
	if err != nil {
		return err
	}
	t, err := a.update(ctx, id, func(t *swiss.Tournament) error {
		_, err := t.Generate()
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, swiss.BuildPairingsOutput(t.Snapshot()))
	return nil
}

func (a *app) parseBoard(name string, args []string,
	withResult bool) (string, int, string, error) {

	fs := a.flagSet(name)
	id := fs.String("id", "", "Tournament id")
	board := fs.Int("board", 0, "Board (table) number")
	var result *string
	if withResult {
		result = fs.String("result", "", "Result: 1-0, 0-1 or draw")
	}
	if err := a.parse(fs, args); err != nil {
		return "", 0, "", err
	}
	if *id == "" || *board <= 0 || (withResult && *result == "") {
		fmt.Fprintln(a.errw, "Please provide --id and a valid --board.")
		fs.Usage()
		return "", 0, "", errUsage
	}
	res := ""
	if withResult {
		res = *result
	}
	return *id, *board, res, nil
}

func handleStart(ctx context.Context, a *app, args []string) error {
	id, board, _, err := a.parseBoard("start", args, false)
	if err != nil {
		return err
	}
	if _, err := a.update(ctx, id, func(t *swiss.Tournament) error {
		return t.StartGame(board)
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Board %d started\n", board)
	return nil
}

func handleResult(ctx context.Context, a *app, args []string) error {
	id, board, resStr, err := a.parseBoard("result", args, true)
	if err != nil {
		return err
	}
	res, err := parseResult(resStr)
	if err != nil {
		return err
	}
	t, err := a.update(ctx, id, func(t *swiss.Tournament) error {
		return t.SubmitResult(board, res)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Board %d: %v\n", board, res)
	if t.Phase() == swiss.PhaseReadyToAdvance {
		fmt.Fprintln(a.out, "All boards finished; run advance to close the round.")
	}
	return nil
}

// parseResult accepts the common ways a director types a result.
func parseResult(s string) (swiss.Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1-0", "w", "white":
		return swiss.ResultWhiteWin, nil
	case "0-1", "b", "black":
		return swiss.ResultBlackWin, nil
	case "0.5-0.5", "1/2-1/2", "½-½", "draw", "d", "=":
		return swiss.ResultDraw, nil
	}
	return swiss.ResultUnset, fmt.Errorf("%q: %w", s, swiss.ErrInvalidResult)
}

func handleAdvance(ctx context.Context, a *app, args []string) error {
	id, err := a.parseID("advance", args)
	if err != nil {
		return err
	}
	t, err := a.update(ctx, id, func(t *swiss.Tournament) error {
		_, err := t.Advance()
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, swiss.BuildStandingsOutput(t.Snapshot()))
	return nil
}

// report prints one of the read-only views of a saved tournament.
func (a *app) report(ctx context.Context, name string, args []string,
	build func(s swiss.State) string) error {

	id, err := a.parseID(name, args)
	if err != nil {
		return err
	}
	s, err := a.store.Load(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, build(*s))
	return nil
}

func handlePairings(ctx context.Context, a *app, args []string) error {
	return a.report(ctx, "pairings", args, swiss.BuildPairingsOutput)
}

func handleStandings(ctx context.Context, a *app, args []string) error {
	return a.report(ctx, "standings", args, swiss.BuildStandingsOutput)
}

func handleWallChart(ctx context.Context, a *app, args []string) error {
	return a.report(ctx, "wallchart", args, swiss.BuildWallChartOutput)
}

func handleStats(ctx context.Context, a *app, args []string) error {
	return a.report(ctx, "stats", args, buildStatsOutput)
}

func buildStatsOutput(s swiss.State) string {
	st := swiss.GetStats(s)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Round: %d of %d (%v)\n", min(s.Round,
		s.TotalRounds), s.TotalRounds, s.Phase()))
	sb.WriteString(fmt.Sprintf("Competitors: %d\n", st.Competitors))
	sb.WriteString(fmt.Sprintf("Average rating: %.0f\n", st.AverageRating))
	sb.WriteString(fmt.Sprintf("Games played: %d (%d decisive, %d drawn, %.0f%% draws)\n",
		st.GamesPlayed, st.DecisiveGames, st.Draws, st.DrawRate))
	sb.WriteString(fmt.Sprintf("Byes awarded: %d\n", st.ByesAwarded))
	if len(s.Pairings) > 0 {
		sb.WriteString(fmt.Sprintf("Current round: %d finished, %d playing, %d not started\n",
			st.CompletedGames, st.OngoingGames, st.NotStartedGames))
	}
	return sb.String()
}

func handleExport(ctx context.Context, a *app, args []string) error {
	return a.report(ctx, "export", args, func(s swiss.State) string {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Sprintf("unable to encode snapshot: %v\n", err)
		}
		return string(data) + "\n"
	})
}
