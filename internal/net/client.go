package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client talks to a campaign server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	dec  *json.Decoder
	enc  *json.Encoder
	in   *bufio.Reader
	out  io.Writer

	state *StateView // last state received
}

// NewClient wraps an open connection. in and out default to the terminal.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{
		conn: conn,
		dec:  json.NewDecoder(conn),
		enc:  json.NewEncoder(conn),
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Connect dials a server, joins as the hero, and runs the REPL.
func Connect(ctx context.Context, addr, hero string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, nil, nil)
	if err := c.Join(hero); err != nil {
		return err
	}
	return c.RunREPL(ctx)
}

// Send issues one command and waits for its response.
func (c *Client) Send(msg ClientMessage) (ServerMessage, error) {
	if err := c.enc.Encode(msg); err != nil {
		return ServerMessage{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}
	var resp ServerMessage
	if err := c.dec.Decode(&resp); err != nil {
		return ServerMessage{}, fmt.Errorf("read message: %w", err)
	}
	if resp.State != nil {
		c.state = resp.State
	}
	return resp, nil
}

// Join starts the hero's campaign and prints the opening state.
func (c *Client) Join(hero string) error {
	resp, err := c.Send(ClientMessage{Type: CmdJoin, Hero: hero})
	if err != nil {
		return err
	}
	if resp.Type == MsgError {
		return fmt.Errorf("join: %s", resp.Error)
	}
	c.render(resp)
	return nil
}

// RunREPL reads text commands until quit or end of input.
func (c *Client) RunREPL(ctx context.Context) error {
	fmt.Fprintln(c.out, "Type 'help' for commands.")
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args := strings.ToLower(fields[0]), fields[1:]
		switch cmd {
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			c.printHelp()
			continue
		case "map":
			c.renderMap()
			continue
		}

		msg, err := c.parse(cmd, args)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		resp, err := c.Send(msg)
		if err != nil {
			return err
		}
		c.render(resp)
	}
}

func (c *Client) parse(cmd string, args []string) (ClientMessage, error) {
	switch cmd {
	case "s", "state":
		return ClientMessage{Type: CmdState}, nil
	case "go", "node":
		if len(args) != 1 {
			return ClientMessage{}, fmt.Errorf("usage: go <node>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return ClientMessage{}, fmt.Errorf("node must be a number")
		}
		return ClientMessage{Type: CmdSelectNode, Node: id}, nil
	case "sel", "select":
		if len(args) != 1 {
			return ClientMessage{}, fmt.Errorf("usage: sel <card>")
		}
		return ClientMessage{Type: CmdSelectForCombo, Card: c.cardRef(args[0])}, nil
	case "play":
		if len(args) != 1 {
			return ClientMessage{}, fmt.Errorf("usage: play <card>")
		}
		return ClientMessage{Type: CmdPlayCard, Card: c.cardRef(args[0])}, nil
	case "combo":
		if len(args) != 2 {
			return ClientMessage{}, fmt.Errorf("usage: combo <card> <card>")
		}
		return ClientMessage{Type: CmdPlayCombo, Cards: c.cardRefs(args)}, nil
	case "mull", "mulligan":
		return ClientMessage{Type: CmdMulligan, Cards: c.cardRefs(args)}, nil
	case "e", "end":
		return ClientMessage{Type: CmdEndTurn}, nil
	case "close", "flee":
		return ClientMessage{Type: CmdCloseBattle}, nil
	default:
		return ClientMessage{}, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

// cardRef maps a 1-based hand position to its card id. Anything else is
// passed through as a card id.
func (c *Client) cardRef(arg string) string {
	n, err := strconv.Atoi(arg)
	if err != nil || c.state == nil || c.state.Battle == nil {
		return arg
	}
	hand := c.state.Battle.Hand
	if n < 1 || n > len(hand) {
		return arg
	}
	return hand[n-1].ID
}

func (c *Client) cardRefs(args []string) []string {
	ids := make([]string, 0, len(args))
	for _, a := range args {
		ids = append(ids, c.cardRef(a))
	}
	return ids
}

func (c *Client) printHelp() {
	fmt.Fprintln(c.out, "Commands:")
	fmt.Fprintln(c.out, "  map               show the campaign map")
	fmt.Fprintln(c.out, "  go N              travel to node N")
	fmt.Fprintln(c.out, "  sel C             select card C for a combo (plays it if it has no partner)")
	fmt.Fprintln(c.out, "  play C            play card C on its own")
	fmt.Fprintln(c.out, "  combo C1 C2       play two cards together")
	fmt.Fprintln(c.out, "  mull [C1 [C2]]    redraw up to two cards (once per turn)")
	fmt.Fprintln(c.out, "  end               end the turn")
	fmt.Fprintln(c.out, "  close             abandon the battle")
	fmt.Fprintln(c.out, "  state             show the current state")
	fmt.Fprintln(c.out, "  quit              leave")
	fmt.Fprintln(c.out, "Cards may be given by id or by hand position (1-6).")
}

func (c *Client) render(resp ServerMessage) {
	for _, ev := range resp.Events {
		c.renderEvent(ev)
	}
	if resp.Type == MsgError {
		fmt.Fprintf(c.out, "! %s\n", resp.Error)
		return
	}
	switch resp.Result {
	case "Victory":
		fmt.Fprintln(c.out, "*** VICTORY ***")
	case "Defeat":
		fmt.Fprintln(c.out, "*** DEFEAT ***")
	}
	c.renderState(resp.State)
}

func (c *Client) renderEvent(ev EventView) {
	where := fmt.Sprintf("N%d", ev.Node)
	if ev.Turn > 0 {
		where += fmt.Sprintf(" T%d", ev.Turn)
	}
	fmt.Fprintf(c.out, "%-8s| %s\n", where, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	if b := sv.Battle; b != nil {
		fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
		fmt.Fprintf(c.out, "║  %s  (node %d)\n", b.Label, b.Node)
		fmt.Fprintf(c.out, "║  Enemy HP: %d/%d  Strike: %d\n", b.EnemyHP, b.EnemyMaxHP, b.EnemyDamage)
		fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
		fmt.Fprintf(c.out, "║  %s HP: %d/%d  Shield: %d  PA: %d\n", sv.Hero.Name, b.PlayerHP, b.PlayerMaxHP, b.Shield, b.PA)
		fmt.Fprintf(c.out, "║  Turn %d  Roll %d  x%.2g  Deck: %d  Discard: %d\n", b.Turn, b.Roll, b.Multiplier, b.DrawPile, b.DiscardPile)
		fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")
		fmt.Fprintln(c.out, "Hand:")
		for i, cv := range b.Hand {
			mark := " "
			if cv.ID == b.Pending {
				mark = "*"
			}
			sym := ""
			if cv.Symbol != "" {
				sym = " " + cv.Symbol
			}
			fmt.Fprintf(c.out, " %s[%d] %s (%s, %d PA, %s %d%s)\n", mark, i+1, cv.Name, cv.ID, cv.Cost, cv.Type, cv.Value, sym)
		}
		return
	}

	fmt.Fprintf(c.out, "%s the %s  HP %d/%d  Resources %d/%d  at node %d\n",
		sv.Hero.Name, sv.Hero.Class, sv.HeroHP, sv.Hero.HP, sv.Resources, sv.Hero.ResourceMax, sv.CurrentNode)
	if sv.BossDefeated {
		fmt.Fprintln(c.out, "The boss has fallen.")
	}
	if len(sv.Reachable) > 0 {
		fmt.Fprintf(c.out, "Reachable: %s\n", joinInts(sv.Reachable))
	}
}

func (c *Client) renderMap() {
	resp, err := c.Send(ClientMessage{Type: CmdState})
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if resp.State == nil {
		fmt.Fprintln(c.out, "no campaign yet")
		return
	}
	sv := resp.State
	for _, line := range sv.Log {
		fmt.Fprintf(c.out, "  ~ %s\n", line)
	}
	for _, n := range sv.Map {
		mark := " "
		switch {
		case n.Current:
			mark = "@"
		case n.Visited:
			mark = "x"
		case n.Reachable:
			mark = ">"
		}
		fmt.Fprintf(c.out, " %s %2d %-8s %-24s -> %s\n", mark, n.ID, n.Type, n.Label, joinInts(n.Connections))
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
