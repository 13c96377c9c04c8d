package observ

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	time.Sleep(time.Millisecond)
	tm.End(lex, "12 tokens")
	tm.End(99, "ignored")

	boom := errors.New("boom")
	if err := tm.Measure("collect", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Measure must pass error through, got %v", err)
	}

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	if rep.Phases[0].DurationMS <= 0 || rep.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected lex phase %+v", rep.Phases[0])
	}
	if rep.Phases[1].Note != "failed" {
		t.Fatalf("unexpected collect phase %+v", rep.Phases[1])
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Fatalf("total %v < lex %v", rep.TotalMS, rep.Phases[0].DurationMS)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// 12 tokens", "collect", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	rep := NewTimer().Report()
	if rep.TotalMS != 0 || len(rep.Phases) != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
}
