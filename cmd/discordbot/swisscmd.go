/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/bcc-swiss/store"
	"github.com/mikeb26/bcc-swiss/swiss"
)

type SwissSubCommand string

const (
	SwissHelpCmd      SwissSubCommand = "help"
	SwissListCmd      SwissSubCommand = "list"
	SwissPairingsCmd  SwissSubCommand = "pairings"
	SwissStandingsCmd SwissSubCommand = "standings"
	SwissWallChartCmd SwissSubCommand = "wallchart"
	SwissStatsCmd     SwissSubCommand = "stats"
)

func (b *bot) swissCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.swissHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := b.swissSubCmdHdlrs[SwissSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed help.md
var helpText string

func (b *bot) swissHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func (b *bot) swissListCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	ids, err := b.store.List(ctx)
	if err != nil {
		resp.Data.Content = "Error listing tournaments."
		b.log.Error().Err(err).Msg("discordbot.list: failed")
		return resp
	}
	if len(ids) == 0 {
		resp.Data.Content = "No tournaments found."
		return resp
	}

	var sb strings.Builder
	for _, id := range ids {
		s, err := b.store.Load(ctx, id)
		if err != nil {
			b.log.Warn().Err(err).Str("id", id).Msg("discordbot.list: unreadable snapshot")
			continue
		}
		status := fmt.Sprintf("round %d of %d", s.Round, s.TotalRounds)
		if s.Phase() == swiss.PhaseCompleted {
			status = "completed"
		}
		sb.WriteString(fmt.Sprintf("- **%v**: %d players, %v\n", id,
			len(s.Competitors), status))
	}
	resp.Data.Content = truncateContent(sb.String())

	return resp
}

// subOptions returns the tournament id and broadcast options of a
// subcommand.
func subOptions(inter *discordgo.Interaction) (string, bool) {
	data := inter.ApplicationCommandData()
	id := ""
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "id" {
				id = opt.StringValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	return id, broadcast
}

// reportHandler loads the tournament named in the interaction and replies
// with build's output in a code block.
func (b *bot) reportHandler(ctx context.Context, inter *discordgo.Interaction,
	name string, build func(s swiss.State) string) *discordgo.InteractionResponse {

	resp := newResponse()
	id, broadcast := subOptions(inter)
	if id == "" {
		resp.Data.Content = "Please provide a tournament id."
		return resp
	}

	s, err := b.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			resp.Data.Content = fmt.Sprintf("No tournament named '%v'. Try /swiss list.", id)
		} else {
			resp.Data.Content = fmt.Sprintf("Error loading tournament '%v'.", id)
			b.log.Error().Err(err).Str("id", id).Msgf("discordbot.%v: load failed", name)
		}
		return resp
	}

	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", id,
		truncateContent(build(*s)))
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func (b *bot) swissPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.reportHandler(ctx, inter, "pairings", swiss.BuildPairingsOutput)
}

func (b *bot) swissStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.reportHandler(ctx, inter, "standings", swiss.BuildStandingsOutput)
}

func (b *bot) swissWallChartCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.reportHandler(ctx, inter, "wallchart", swiss.BuildWallChartOutput)
}

func (b *bot) swissStatsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return b.reportHandler(ctx, inter, "stats", func(s swiss.State) string {
		st := swiss.GetStats(s)
		return fmt.Sprintf("Players: %d\nAverage rating: %.0f\nGames played: %d\n"+
			"Draws: %d (%.0f%%)\nByes: %d\nPhase: %v\n",
			st.Competitors, st.AverageRating, st.GamesPlayed, st.Draws,
			st.DrawRate, st.ByesAwarded, s.Phase())
	})
}

func truncateContent(s string) string {
	const MsgLimit = 1900 // keep space for the title and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
