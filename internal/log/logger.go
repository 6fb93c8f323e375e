package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// Since returns the events logged after the first n events.
func (l *MemoryLogger) Since(n int) []GameEvent {
	if n >= len(l.events) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return l.events[n:]
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	where := fmt.Sprintf("N%d", e.Node)
	if e.Turn > 0 {
		where += fmt.Sprintf(" T%d", e.Turn)
	}
	// Pad location to 8 chars for alignment
	for len(where) < 8 {
		where += " "
	}
	return fmt.Sprintf("%s| %s", where, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewNodeVisitEvent(node int, label string, kind string) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventNodeVisit,
		Details: fmt.Sprintf("Reached %s (%s)", label, kind),
	}
}

func NewResourceEvent(node int, label string, resources, max int) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventResource,
		Value:   resources,
		Details: fmt.Sprintf("%s: resources collected (%d/%d)", label, resources, max),
	}
}

func NewEventRollEvent(node int, label string, roll int) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventEventRoll,
		Value:   roll,
		Details: fmt.Sprintf("%s: event d6=%d", label, roll),
	}
}

func NewRestEvent(node int, label string, oldHP, newHP int) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventRest,
		Value:   newHP - oldHP,
		Details: fmt.Sprintf("%s: you rest, HP %d → %d", label, oldHP, newHP),
	}
}

func NewRejectedEvent(turn, node int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventRejected,
		Details: fmt.Sprintf("Rejected: %s", reason),
	}
}

func NewBattleStartEvent(node int, label string, enemyHP, baseDamage int) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventBattleStart,
		Value:   enemyHP,
		Details: fmt.Sprintf("Battle started against %s (enemy HP %d, damage %d)", label, enemyHP, baseDamage),
	}
}

func NewTurnStartEvent(turn, node, roll, pa int, message string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventTurnStart,
		Value:   roll,
		Details: fmt.Sprintf("=== Turn %d === d6=%d, %d PA. %s", turn, roll, pa, message),
	}
}

func NewDrawEvent(turn, node int, cardID, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventDraw,
		Card:    cardID,
		Details: fmt.Sprintf("You draw %s", cardName),
	}
}

func NewShuffleEvent(turn, node, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventShuffle,
		Value:   count,
		Details: fmt.Sprintf("Discard pile (%d cards) reshuffled into the deck", count),
	}
}

func NewOverflowDiscardEvent(turn, node int, cardID, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventOverflowDiscard,
		Card:    cardID,
		Details: fmt.Sprintf("Hand is full: %s goes to the discard pile", cardName),
	}
}

func NewMulliganEvent(turn, node int, cardNames []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventMulligan,
		Value:   len(cardNames),
		Details: fmt.Sprintf("Mulligan: %s discarded", strings.Join(cardNames, ", ")),
	}
}

func NewComboArmedEvent(turn, node int, cardID, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventComboArmed,
		Card:    cardID,
		Details: fmt.Sprintf("%s armed for a combo", cardName),
	}
}

func NewComboClearedEvent(turn, node int, cardID, cardName, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventComboCleared,
		Card:    cardID,
		Details: fmt.Sprintf("%s no longer armed (%s)", cardName, reason),
	}
}

func NewPlayCardEvent(turn, node int, cardID, cardName string, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventPlayCard,
		Card:    cardID,
		Value:   cost,
		Details: fmt.Sprintf("You play %s (%d PA)", cardName, cost),
	}
}

func NewComboEvent(turn, node int, first, second string, signature bool, cost, value int) GameEvent {
	kind := "Combo"
	if signature {
		kind = "Signature combo"
	}
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventCombo,
		Value:   value,
		Details: fmt.Sprintf("%s: %s + %s (%d PA, value %d)", kind, first, second, cost, value),
	}
}

func NewDamageEvent(turn, node, damage, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventDamage,
		Value:   damage,
		Details: fmt.Sprintf("Enemy takes %d damage, HP %d → %d", damage, oldHP, newHP),
	}
}

func NewShieldEvent(turn, node, amount, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventShield,
		Value:   amount,
		Details: fmt.Sprintf("Shield +%d (total %d)", amount, total),
	}
}

func NewHealEvent(turn, node, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventHeal,
		Value:   newHP - oldHP,
		Details: fmt.Sprintf("HP %d → %d (%s)", oldHP, newHP, reason),
	}
}

func NewNoEffectEvent(turn, node int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventNoEffect,
		Details: fmt.Sprintf("%s has no combat effect", cardName),
	}
}

func NewEnemyStrikeEvent(turn, node, incoming, shield, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventEnemyStrike,
		Value:   oldHP - newHP,
		Details: fmt.Sprintf("The enemy strikes for %d (shield %d): HP %d → %d", incoming, shield, oldHP, newHP),
	}
}

func NewVictoryEvent(turn, node int, label string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventVictory,
		Details: fmt.Sprintf("Victory over %s", label),
	}
}

func NewDefeatEvent(turn, node int, label string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventDefeat,
		Details: fmt.Sprintf("Defeated by %s. Retry from the current node", label),
	}
}

func NewBattleClosedEvent(turn, node int, label string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Node:    node,
		Type:    EventBattleClosed,
		Details: fmt.Sprintf("Retreated from %s", label),
	}
}

func NewBossUnlockEvent(node int, label string) GameEvent {
	return GameEvent{
		Node:    node,
		Type:    EventBossUnlock,
		Details: fmt.Sprintf("%s defeated: phygital unlock sent", label),
	}
}
