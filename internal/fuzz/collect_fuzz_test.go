package fuzztests

import (
	"context"
	"testing"
	"time"

	"zara/internal/driver"
	"zara/internal/testkit"
)

// collectTimeout bounds a single lex+collect run; exceeding it means a hang.
const collectTimeout = 5 * time.Second

func FuzzCollectSymbols(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan error, 1)
		go func() {
			res := driver.TokenizeSource(context.Background(), "fuzz.zr", input, 128)
			table := driver.Collect(context.Background(), res.Tokens, res.Bag, driver.CollectOptions{
				Scoped:     true,
				Strict:     true,
				WarnShadow: true,
			})
			done <- testkit.CheckReportInvariants(table.Dump())
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("report invariants: %v", err)
			}
		case <-time.After(collectTimeout):
			t.Fatalf("collect did not finish within %s (input length %d)", collectTimeout, len(input))
		}
	})
}
