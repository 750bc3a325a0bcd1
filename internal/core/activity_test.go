package core

import (
	"fmt"
	"testing"
	"time"
)

func TestActivityLog_RecordNewestFirst(t *testing.T) {
	log := NewActivityLog()

	log.Record("t1", "first", ActionCreated, "")
	log.Record("t2", "second", ActionCreated, "")

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len = %d, want 2", len(entries))
	}
	if entries[0].TaskTitle != "second" {
		t.Fatalf("head = %q, want newest entry first", entries[0].TaskTitle)
	}
	if entries[0].ID == entries[1].ID {
		t.Fatalf("entries share an id")
	}
}

func TestActivityLog_CapEvictsOldest(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	log := NewActivityLog(WithActivityClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	for i := 0; i < MaxActivityEntries+5; i++ {
		log.Record(fmt.Sprintf("t%d", i), fmt.Sprintf("task %d", i), ActionUpdated, "")
	}

	entries := log.Entries()
	if len(entries) != MaxActivityEntries {
		t.Fatalf("Len = %d, want %d", len(entries), MaxActivityEntries)
	}
	// The 5 oldest entries (task 0..4) aged out.
	if entries[len(entries)-1].TaskTitle != "task 5" {
		t.Fatalf("oldest retained = %q, want %q", entries[len(entries)-1].TaskTitle, "task 5")
	}
	if entries[0].TaskTitle != fmt.Sprintf("task %d", MaxActivityEntries+4) {
		t.Fatalf("newest = %q", entries[0].TaskTitle)
	}
	// Reverse-chronological order throughout.
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Fatalf("entries out of order at index %d", i)
		}
	}
}

func TestActivityLog_Clear(t *testing.T) {
	log := NewActivityLog()
	log.Record("t1", "task", ActionCreated, "")
	log.Clear()
	if log.Len() != 0 {
		t.Fatalf("Len = %d after clear, want 0", log.Len())
	}
}

func TestActivityLog_ReplaceAppliesCap(t *testing.T) {
	log := NewActivityLog(WithActivityCap(3))
	entries := make([]ActivityEntry, 5)
	for i := range entries {
		entries[i] = ActivityEntry{ID: fmt.Sprintf("e%d", i)}
	}
	log.Replace(entries)
	if log.Len() != 3 {
		t.Fatalf("Len = %d, want 3", log.Len())
	}
	if log.Entries()[0].ID != "e0" {
		t.Fatalf("Replace should keep head entries")
	}
}
