package clock

import (
	"testing"
	"time"
)

func TestManualAdvance(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	c := NewManual(start)
	if c.Now().Location() != time.UTC {
		t.Fatalf("expected UTC, got %s", c.Now().Location())
	}
	got := c.Advance(5 * time.Minute)
	if !got.Equal(start.Add(5 * time.Minute)) {
		t.Fatalf("unexpected time %s", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Fatalf("set did not take effect")
	}
}

func TestSystemIsUTC(t *testing.T) {
	if NewSystem().Now().Location() != time.UTC {
		t.Fatal("system clock must report UTC")
	}
}
