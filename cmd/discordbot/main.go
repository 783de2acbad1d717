/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/mikeb26/bcc-swiss/internal/config"
	"github.com/mikeb26/bcc-swiss/internal/logger"
	"github.com/mikeb26/bcc-swiss/store"
)

type TopLevelCommand string

const (
	SwissCmd TopLevelCommand = "swiss"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

// bot serves discord interactions from the tournament snapshot store.
type bot struct {
	store  store.Store
	log    zerolog.Logger
	pubKey ed25519.PublicKey

	topLevelCmdHdlrs map[TopLevelCommand]CmdHandler
	swissSubCmdHdlrs map[SwissSubCommand]CmdHandler
}

func newBot(st store.Store, pubKey ed25519.PublicKey, log zerolog.Logger) *bot {
	b := &bot{
		store:  st,
		log:    log,
		pubKey: pubKey,
	}
	b.topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
		SwissCmd: b.swissCmdHandler,
	}
	b.swissSubCmdHdlrs = map[SwissSubCommand]CmdHandler{
		SwissHelpCmd:      b.swissHelpCmdHandler,
		SwissListCmd:      b.swissListCmdHandler,
		SwissPairingsCmd:  b.swissPairingsCmdHandler,
		SwissStandingsCmd: b.swissStandingsCmdHandler,
		SwissWallChartCmd: b.swissWallChartCmdHandler,
		SwissStatsCmd:     b.swissStatsCmdHandler,
	}

	return b
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		b.log.Warn().Msg("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.log.Warn().Err(err).Msg("discordbot.int: failed to read request body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		b.log.Warn().Err(err).Msg("discordbot.int: failed to unmarshal interaction")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			b.topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		b.log.Warn().Int("type", int(inter.Type)).
			Msg("discordbot.int: unimplemented interaction type")
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		b.log.Error().Err(err).Msg("discordbot.int: failed to marshal resp")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		b.log.Warn().Err(err).Msg("discordbot.int: failed to write resp")
	}
}

func idOption(desc string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: desc,
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "broadcast",
			Description: "Share with the rest of the channel instead of only to you (default is false)",
			Required:    false,
		},
	}
}

func swissCommand() *discordgo.ApplicationCommand {
	const idDesc = "Tournament id (as shown by /swiss list)"

	return &discordgo.ApplicationCommand{
		Name:        string(SwissCmd),
		Description: "Swiss tournament pairings and standings; try /swiss help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissHelpCmd),
				Description: "Show usage for swiss",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissListCmd),
				Description: "List saved tournaments",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissPairingsCmd),
				Description: "Get current pairings for a tournament",
				Options:     idOption(idDesc),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissStandingsCmd),
				Description: "Get current standings for a tournament",
				Options:     idOption(idDesc),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissWallChartCmd),
				Description: "Get the wall chart for a tournament",
				Options:     idOption(idDesc),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(SwissStatsCmd),
				Description: "Get statistics for a tournament",
				Options:     idOption(idDesc),
			},
		},
	}
}

func registerSlashCommands(session *discordgo.Session, appID string,
	log zerolog.Logger) {

	cmd, err := session.ApplicationCommandCreate(appID, "", swissCommand())
	if err != nil {
		log.Error().Err(err).Msg("discordbot.reg: failed to register swiss")
		return
	}
	log.Info().Str("cmd", cmd.Name).Str("cmdID", cmd.ID).
		Msg("discordbot.reg: registered")
}

func main() {
	ctx := context.Background()

	log := logger.New(os.Getenv("SWISS_LOG_LEVEL"))
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: bad configuration")
	}
	log = logger.New(cfg.LogLevel)
	if err := cfg.RequireDiscord(); err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: bad configuration")
	}

	pubKeyBytes, err := hex.DecodeString(cfg.DiscordPublicKey)
	if err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: failed to parse public key")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: failed to initialize discord client")
	}
	st, err := store.Open(ctx, cfg.StoreDir, cfg.S3Bucket, log)
	if err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: failed to open store")
	}

	b := newBot(st, ed25519.PublicKey(pubKeyBytes), log)
	go registerSlashCommands(session, cfg.DiscordAppID, log)

	log.Info().Str("addr", cfg.ListenAddr).Msg("discordbot.main: starting server")
	mux := http.NewServeMux()
	mux.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: serve failed")
	}
}
