/* Copyright © 2025 Mike Brown. All Rights Reserved.
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
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
)

// credentials come from the environment so that no secret material
// lives in the repository
const (
	EnvBotToken  = "AUB_TDBOT_DISCORD_TOKEN"
	EnvPublicKey = "AUB_TDBOT_DISCORD_PUBKEY"
	EnvAppId     = "AUB_TDBOT_DISCORD_APPID"
	EnvCmdId     = "AUB_TDBOT_DISCORD_CMDID"
)

var botPubKey ed25519.PublicKey
var botAppId string
var tdCmdId string

var client *discordgo.Session

type TopLevelCommand string

const (
	TdCmd TopLevelCommand = "td"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TdCmd: tdCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(ctx, &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interaction type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func loadCredentials() {
	pubKeyText := os.Getenv(EnvPublicKey)
	if pubKeyText == "" {
		log.Fatalf("discordbot.creds: %v must be set", EnvPublicKey)
	}
	pubKeyBytes, err := hex.DecodeString(pubKeyText)
	if err != nil {
		log.Fatalf("discordbot.creds: Failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)

	botAppId = os.Getenv(EnvAppId)
	if botAppId == "" {
		log.Fatalf("discordbot.creds: %v must be set", EnvAppId)
	}
	tdCmdId = os.Getenv(EnvCmdId)

	token := os.Getenv(EnvBotToken)
	if token == "" {
		log.Fatalf("discordbot.creds: %v must be set", EnvBotToken)
	}
	client, err = discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("discordbot.creds: Failed to initialize discord client: %v", err)
	}
}

func registerSlashCommands() {
	tdCmd := &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Tournament director commands; try /td help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show usage for td",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdAboutCmd),
				Description: "Show information about aub-tdbot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdCalCmd),
				Description: "Show upcoming events on the calendar",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to retrieve (default is 14)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdEventCmd),
				Description: "Get information regarding an event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdEntriesCmd),
				Description: "List the registered pairs for an event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdBalanceCmd),
				Description: "Assign pairs to North-South / East-West balancing average handicaps",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "eventid",
						Description: "Event id of the tournament (as returned by cal)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seed",
						Description: "Random seed for a reproducible assignment (omit to re-balance)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
		},
	}

	if tdCmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); set %v to skip re-registration",
			cmd.Name, cmd.ID, EnvCmdId)
	} else {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", tdCmdId, tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	loadCredentials()
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
