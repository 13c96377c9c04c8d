package ui

import (
	"strings"
	"testing"

	"zara/internal/driver"
)

func TestProgressModelTracksFinalStatuses(t *testing.T) {
	files := []string{"a.zr", "b.zr", "c.zr"}
	m := NewProgressModel("tokenize", files, nil).(*progressModel)

	for _, ev := range []driver.ProgressEvent{
		{File: "a.zr", Stage: driver.StageLex, Status: driver.StatusWorking},
		{File: "a.zr", Stage: driver.StageLex, Status: driver.StatusDone},
		{File: "b.zr", Stage: driver.StageLex, Status: driver.StatusCached},
		{File: "b.zr", Stage: driver.StageLex, Status: driver.StatusCached},
		{File: "zzz.zr", Stage: driver.StageLex, Status: driver.StatusDone},
	} {
		m.applyEvent(ev)
	}

	if m.finished != 2 {
		t.Fatalf("finished = %d, want 2", m.finished)
	}
	if m.items[0].status != "done" || m.items[1].status != "cached" || m.items[2].status != "queued" {
		t.Fatalf("statuses = %+v", m.items)
	}
	if view := m.View(); !strings.Contains(view, "tokenize (2/3)") || !strings.Contains(view, "c.zr") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m.Update(doneMsg{})
	if !strings.Contains(m.View(), "done: tokenize") {
		t.Fatal("view must show completion")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.zr", 10); got != "src/ver..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short.zr", 20); got != "short.zr" {
		t.Fatalf("truncate = %q", got)
	}
}
