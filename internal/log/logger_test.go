package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequencesEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewDrawEvent(1, 2, "card_atk_base", "Attacco Base"))
	l.Log(NewShuffleEvent(1, 2, 5))
	l.Log(NewDrawEvent(1, 2, "card_def_base", "Difesa Base"))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
	}
	if draws := l.EventsOfType(EventDraw); len(draws) != 2 {
		t.Errorf("expected 2 draw events, got %d", len(draws))
	}
	if last := l.LastEvent(); last.Card != "card_def_base" {
		t.Errorf("expected last event for card_def_base, got %q", last.Card)
	}
}

func TestMemoryLoggerSince(t *testing.T) {
	l := NewMemoryLogger()
	for i := 0; i < 4; i++ {
		l.Log(NewShieldEvent(1, 1, 3, 3*(i+1)))
	}
	if got := l.Since(1); len(got) != 3 {
		t.Fatalf("expected 3 events after cursor 1, got %d", len(got))
	}
	if got := l.Since(4); got != nil {
		t.Fatalf("expected no events past the end, got %d", len(got))
	}
	if got := l.Since(-3); len(got) != 4 {
		t.Fatalf("expected negative cursor to return everything, got %d", len(got))
	}
}

func TestTextLoggerWritesFormattedLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewEnemyStrikeEvent(2, 5, 4, 3, 10, 9))
	l.Log(NewBossUnlockEvent(22, "Re dei Goblin"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "N5 T2") {
		t.Errorf("expected node/turn prefix, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "HP 10 → 9") {
		t.Errorf("expected HP change in %q", lines[0])
	}
	if strings.Contains(lines[1], " T") {
		t.Errorf("expected no turn marker outside battle, got %q", lines[1])
	}
	if len(l.Events()) != 2 {
		t.Errorf("text logger should also keep events in memory")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventBossUnlock.String() != "BossUnlock" {
		t.Errorf("unexpected name %q", EventBossUnlock.String())
	}
	if EventType(999).String() != "Unknown" {
		t.Errorf("expected Unknown for out of range type")
	}
}
