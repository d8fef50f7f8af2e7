// Command fodinha-client is an interactive terminal client for the Fodinha
// server. It connects over WebSocket, renders the table after every state
// frame, and turns typed commands into protocol messages.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/PuraFome/fodinha/game/engine"
)

var (
	serverURL  = flag.String("server", "ws://localhost:8080/ws", "WebSocket URL of the game server")
	playerName = flag.String("name", "", "Player name (prompted when empty)")
)

// frame is the envelope of every server message; the payload fields are
// filled depending on Type.
type frame struct {
	Type        string           `json:"type"`
	Message     string           `json:"message"`
	PlayerID    string           `json:"playerId"`
	Game        *engine.GameView `json:"game"`
	PrivateHand []engine.Card    `json:"privateHand"`
	Data        json.RawMessage  `json:"data"`
}

// tableState is the client's view of the world, updated by the reader
// goroutine and rendered from the prompt loop.
type tableState struct {
	mu          sync.Mutex
	playerID    string
	game        *engine.GameView
	privateHand []engine.Card
}

func (t *tableState) update(f *frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.game = f.Game
	t.privateHand = f.PrivateHand
	if f.PlayerID != "" {
		t.playerID = f.PlayerID
	}
}

func (t *tableState) snapshot() (string, *engine.GameView, []engine.Card) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playerID, t.game, t.privateHand
}

func main() {
	flag.Parse()

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("F", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("odinha", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name := *playerName
	if name == "" {
		name, _ = pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").Show()
	}
	if strings.TrimSpace(name) == "" {
		name = "anonymous"
	}
	pterm.Info.Printfln("Playing as %s", name)

	spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + *serverURL + " ...")
	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		spinner.Fail()
		pterm.Error.Printfln("Could not connect: %v", err)
		os.Exit(1)
	}
	spinner.Success()
	defer conn.Close()

	state := &tableState{}
	done := make(chan struct{})
	go readLoop(conn, state, done)

	printHelp()

	for {
		select {
		case <-done:
			pterm.Warning.Println("Connection closed by server")
			return
		default:
		}

		input, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("command").Show()
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()

		case "create":
			seats := 0
			if len(fields) > 1 {
				seats, _ = strconv.Atoi(fields[1])
			}
			send(conn, map[string]interface{}{"type": "create_game", "playerName": name, "maxPlayers": seats})

		case "join":
			if len(fields) < 2 {
				pterm.Error.Println("usage: join <code>")
				continue
			}
			send(conn, map[string]interface{}{"type": "join_game", "gameId": strings.ToUpper(fields[1]), "playerName": name})

		case "ready":
			send(conn, map[string]interface{}{"type": "set_ready", "ready": true})

		case "unready":
			send(conn, map[string]interface{}{"type": "set_ready", "ready": false})

		case "start":
			send(conn, map[string]interface{}{"type": "start_game"})

		case "bid":
			if len(fields) < 2 {
				pterm.Error.Println("usage: bid <tricks>")
				continue
			}
			amount, err := strconv.Atoi(fields[1])
			if err != nil {
				pterm.Error.Println("bid must be a number")
				continue
			}
			send(conn, map[string]interface{}{"type": "place_bid", "bid": amount})

		case "confirm":
			send(conn, map[string]interface{}{"type": "confirm_bid"})

		case "play":
			card, err := parseCardArg(fields[1:], state)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			send(conn, map[string]interface{}{"type": "play_card", "card": card})

		case "show":
			renderTable(state)

		case "leave":
			send(conn, map[string]interface{}{"type": "leave_game"})

		case "quit", "exit":
			pterm.Println("Thank you for playing...")
			return

		default:
			pterm.Error.Printfln("Unknown command: %s (try 'help')", fields[0])
		}
	}
}

// readLoop consumes server frames and renders them as they arrive.
func readLoop(conn *websocket.Conn, state *tableState, done chan struct{}) {
	defer close(done)
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}

		switch f.Type {
		case "welcome":
			state.mu.Lock()
			state.playerID = f.PlayerID
			state.mu.Unlock()

		case "game_state":
			state.update(&f)
			renderTable(state)

		case "reveal":
			var reveal struct {
				Cards []engine.RevealEntry `json:"cards"`
				// Empty when the whole trick cancelled out.
				WinnerID     string `json:"winnerId"`
				RoundNumber  int    `json:"roundNumber"`
				DelaySeconds int    `json:"delaySeconds"`
			}
			if err := json.Unmarshal(f.Data, &reveal); err == nil {
				renderReveal(reveal.Cards, reveal.WinnerID, reveal.RoundNumber, reveal.DelaySeconds)
			}

		case "game_over":
			var over struct {
				Standings []struct {
					PlayerID string `json:"playerId"`
					Name     string `json:"name"`
					Score    int    `json:"score"`
				} `json:"standings"`
			}
			if err := json.Unmarshal(f.Data, &over); err == nil {
				pterm.Println()
				pterm.DefaultSection.Println("Final standings (fewest points wins)")
				for _, s := range over.Standings {
					pterm.Printfln("  %s: %d points", s.Name, s.Score)
				}
			}

		case "error":
			pterm.Error.Println(f.Message)
		}
	}
}

// parseCardArg resolves a play command. With no argument and exactly one
// private card, that card is played; otherwise expects "<rank> <suit>".
func parseCardArg(args []string, state *tableState) (*engine.Card, error) {
	_, _, hand := state.snapshot()

	if len(args) == 0 {
		if len(hand) == 1 {
			return &hand[0], nil
		}
		return nil, fmt.Errorf("usage: play <rank> <suit> (e.g. play ace hearts)")
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("usage: play <rank> <suit>")
	}
	return &engine.Card{
		Rank: engine.Rank(strings.ToLower(args[0])),
		Suit: engine.Suit(strings.ToLower(args[1])),
	}, nil
}

func send(conn *websocket.Conn, msg map[string]interface{}) {
	if err := conn.WriteJSON(msg); err != nil {
		pterm.Error.Printfln("Send failed: %v", err)
	}
}

func printHelp() {
	pterm.DefaultSection.Println("Commands")
	pterm.Println("  create [seats]      create a new table")
	pterm.Println("  join <code>         join a table by its code")
	pterm.Println("  ready / unready     toggle your ready flag")
	pterm.Println("  start               start the game")
	pterm.Println("  bid <tricks>        state your bid for the round")
	pterm.Println("  confirm             lock your bid in")
	pterm.Println("  play <rank> <suit>  play a card (bare 'play' with one card)")
	pterm.Println("  show                re-render the table")
	pterm.Println("  leave               leave the table")
	pterm.Println("  quit                exit the client")
}
