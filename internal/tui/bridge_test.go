package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agbru/nttmul/internal/digits"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/orchestration"
	"github.com/agbru/nttmul/internal/progress"
)

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}, generation: 1}

	ch := make(chan progress.ProgressUpdate, 10)
	for _, v := range []float64{0.25, 0.5, 0.75, 1} {
		ch <- progress.ProgressUpdate{EngineIndex: 0, Value: v}
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()
}

func TestTUIProgressReporter_ZeroEngines(t *testing.T) {
	reporter := &TUIProgressReporter{ref: &programRef{}}

	ch := make(chan progress.ProgressUpdate, 5)
	ch <- progress.ProgressUpdate{EngineIndex: 0, Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressMsg{})
}

func TestResultCollector(t *testing.T) {
	var c resultCollector
	res := orchestration.MultiplicationResult{Engine: "ntt", Product: digits.MustParse("56088")}
	c.PresentResult(res, orchestration.PresentationOptions{}, nil)
	if c.final == nil || c.final.Engine != "ntt" {
		t.Fatalf("final = %+v, want the ntt result", c.final)
	}

	code := c.HandleError(fmt.Errorf("multiply: %w", context.DeadlineExceeded), time.Second, nil)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if c.err == nil {
		t.Error("error should be recorded")
	}

	code = c.HandleError(errors.New("boom"), 0, nil)
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
}
