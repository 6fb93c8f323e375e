package log

// EventType enumerates all observable campaign and battle events.
type EventType int

const (
	EventNodeVisit EventType = iota
	EventResource
	EventEventRoll
	EventRest
	EventRejected
	EventBattleStart
	EventTurnStart
	EventDraw
	EventShuffle
	EventOverflowDiscard
	EventMulligan
	EventComboArmed
	EventComboCleared
	EventPlayCard
	EventCombo
	EventDamage
	EventShield
	EventHeal
	EventNoEffect
	EventEnemyStrike
	EventVictory
	EventDefeat
	EventBattleClosed
	EventBossUnlock
)

func (e EventType) String() string {
	switch e {
	case EventNodeVisit:
		return "NodeVisit"
	case EventResource:
		return "Resource"
	case EventEventRoll:
		return "EventRoll"
	case EventRest:
		return "Rest"
	case EventRejected:
		return "Rejected"
	case EventBattleStart:
		return "BattleStart"
	case EventTurnStart:
		return "TurnStart"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventOverflowDiscard:
		return "OverflowDiscard"
	case EventMulligan:
		return "Mulligan"
	case EventComboArmed:
		return "ComboArmed"
	case EventComboCleared:
		return "ComboCleared"
	case EventPlayCard:
		return "PlayCard"
	case EventCombo:
		return "Combo"
	case EventDamage:
		return "Damage"
	case EventShield:
		return "Shield"
	case EventHeal:
		return "Heal"
	case EventNoEffect:
		return "NoEffect"
	case EventEnemyStrike:
		return "EnemyStrike"
	case EventVictory:
		return "Victory"
	case EventDefeat:
		return "Defeat"
	case EventBattleClosed:
		return "BattleClosed"
	case EventBossUnlock:
		return "BossUnlock"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a campaign.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // battle turn (0 outside battles)
	Node    int       // map node the event happened on
	Type    EventType // event type
	Card    string    // card id (if applicable)
	Value   int       // amount (damage, heal, roll...) when meaningful
	Details string    // human-readable detail string
}
