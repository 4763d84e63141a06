/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/aubridge/aub-tdbot/aub"
	"github.com/aubridge/aub-tdbot/balance"
)

type TdSubCommand string

const (
	TdAboutCmd   TdSubCommand = "about"
	TdHelpCmd    TdSubCommand = "help"
	TdCalCmd     TdSubCommand = "cal"
	TdEventCmd   TdSubCommand = "event"
	TdEntriesCmd TdSubCommand = "entries"
	TdBalanceCmd TdSubCommand = "balance"
)

var tdSubCmdHdlrs = map[TdSubCommand]CmdHandler{
	TdAboutCmd:   tdAboutCmdHandler,
	TdHelpCmd:    tdHelpCmdHandler,
	TdCalCmd:     tdCalCmdHandler,
	TdEventCmd:   tdEventCmdHandler,
	TdEntriesCmd: tdEntriesCmdHandler,
	TdBalanceCmd: tdBalanceCmdHandler,
}

func tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tdHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tdSubCmdHdlrs[TdSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

//go:embed about.txt
var aboutText string

func tdAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(helpText)
	return resp
}

func tdCalCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	days := int64(14)  // default
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "days" {
				days = opt.IntValue()
			} else if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}
	// enforce bounds
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}

	now := time.Now()
	end := now.AddDate(0, 0, int(days))

	// Fetch events from the AUB API
	events, err := aub.GetEvents()
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("discordbot.cal: %v", resp.Data.Content)
		return resp
	}

	// Filter and group events by date
	eventsByDate := make(map[string][]aub.Event)
	for _, ev := range events {
		if ev.Date.Before(now) || ev.Date.After(end) {
			continue
		}
		key := ev.Date.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}

	if len(eventsByDate) == 0 {
		resp.Data.Content = fmt.Sprintf("No events found in the next %d days.", days)
		log.Printf("discordbot.cal: %v", resp.Data.Content)
		return resp
	}

	// Build sorted output
	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Strings(datesList)
	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v (EventID:%v)\n", ev.Title, ev.EventID))
		}
	}
	sb.WriteString("\nRun /td event <EventID> to get details on a specific event\n")
	resp.Data.Content = truncateContent(sb.String())

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func tdEventCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	eventID, broadcast, ok := eventIdOption(inter)
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.event: %v", resp.Data.Content)
		return resp
	}

	detail, err := aub.GetEventDetail(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching event %d: %v", eventID, err)
		log.Printf("discordbot.event: %v", resp.Data.Content)
		return resp
	}

	embed := &discordgo.MessageEmbed{
		Title:       detail.Title,
		URL:         fmt.Sprintf("https://aubridge.uy/events/%d", detail.EventID),
		Type:        discordgo.EmbedTypeLink,
		Description: aub.BuildEventOutput(&detail, "**", false, false),
	}
	resp.Data.Embeds = []*discordgo.MessageEmbed{embed}
	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tdEntriesCmdHandler handles the /td entries command to display the
// registered pairs for an event
func tdEntriesCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	eventID, broadcast, ok := eventIdOption(inter)
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.entries: %v", resp.Data.Content)
		return resp
	}

	tourney, err := aub.GetTournament(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching pairs for event %d: %v",
			eventID, err)
		log.Printf("discordbot.entries: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(aub.BuildEntriesOutput(tourney)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tdBalanceCmdHandler handles the /td balance command: fetch the
// registered pairs, run the direction balancer, and render the split.
// Re-running without a seed yields a different, equally balanced layout.
func tdBalanceCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	eventID, broadcast, ok := eventIdOption(inter)
	if !ok {
		resp.Data.Content = "Please provide an event ID."
		log.Printf("discordbot.balance: %v", resp.Data.Content)
		return resp
	}

	// 0 is a legitimate reproducible seed; only an absent option gets
	// a fresh one
	seed, seedGiven := seedOption(inter)
	if !seedGiven {
		seed = time.Now().UnixNano()
	}

	tourney, err := aub.GetTournament(eventID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching pairs for event %d: %v",
			eventID, err)
		log.Printf("discordbot.balance: %v", resp.Data.Content)
		return resp
	}
	if len(tourney.Entries) < 2 {
		resp.Data.Content = fmt.Sprintf(
			"Event %d has %d registered pairs; at least 2 are required to balance.",
			eventID, len(tourney.Entries))
		log.Printf("discordbot.balance: %v", resp.Data.Content)
		return resp
	}

	pairs, err := aub.ToBalancePairs(tourney.Entries)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error preparing pairs for event %d: %v",
			eventID, err)
		log.Printf("discordbot.balance: %v", resp.Data.Content)
		return resp
	}

	asn, err := balance.Balance(pairs, seed)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error balancing event %d: %v",
			eventID, err)
		log.Printf("discordbot.balance: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```\nSeed: %v (rerun with seed %v to reproduce)",
		truncateContent(aub.BuildDirectionsOutput(tourney.Entries, &asn)),
		seed, seed)

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// seedOption extracts the optional seed option from a /td subcommand
// interaction, reporting whether it was supplied at all.
func seedOption(inter *discordgo.Interaction) (int64, bool) {
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return 0, false
	}
	for _, opt := range data.Options[0].Options {
		if opt.Name == "seed" {
			return opt.IntValue(), true
		}
	}
	return 0, false
}

// eventIdOption extracts the required eventid option and the optional
// broadcast flag from a /td subcommand interaction.
func eventIdOption(inter *discordgo.Interaction) (int64, bool, bool) {
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return 0, false, false
	}

	var eventID int64
	broadcast := false
	found := false
	for _, opt := range data.Options[0].Options {
		if opt.Name == "eventid" {
			eventID = opt.IntValue()
			found = true
		} else if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		}
	}

	return eventID, broadcast, found
}

// discord limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
