package protocol

import (
	"strings"
	"testing"

	"github.com/hailam/uttt/internal/uttt"
)

func TestNewGameRoundTrip(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("newgame 4x4/9/9/9/9/9/9/9/9 c\ngamepos\nq\n"))

	got := out.String()
	if !strings.Contains(got, "4x4/9/9/9/9/9/9/9/9 c") {
		t.Fatalf("expected loaded board in gamepos output, got %q", got)
	}
}

func TestPlayThenUndo(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("play c/c\nundo\ngamepos\nq\n"))

	got := out.String()
	if !strings.Contains(got, "move pos") {
		t.Fatalf("expected a move response, got %q", got)
	}
	if !strings.Contains(got, "undo ok") {
		t.Fatalf("expected undo ok, got %q", got)
	}
	if !strings.Contains(got, "9/9/9/9/9/9/9/9/9 any") {
		t.Fatalf("expected board restored to empty after undo, got %q", got)
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("undo\nq\n"))

	if !strings.Contains(out.String(), "undo stackempty") {
		t.Fatalf("expected undo stackempty, got %q", out.String())
	}
}

func TestPlayIllegalMove(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	// After "c/c" the next zone is constrained to C; "nw/nw" is outside it.
	d.Run(strings.NewReader("play c/c\nplay nw/nw\nq\n"))

	if !strings.Contains(out.String(), "move illegal") {
		t.Fatalf("expected move illegal, got %q", out.String())
	}
}

func TestPlayMalformedMove(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("play bogus\nq\n"))

	if !strings.Contains(out.String(), "move invalid") {
		t.Fatalf("expected move invalid, got %q", out.String())
	}
}

func TestGoReportsPVAndEval(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("go 2\nq\n"))

	got := out.String()
	if !strings.Contains(got, "info depth 2 pv") {
		t.Fatalf("expected info line with pv, got %q", got)
	}
	if !strings.Contains(got, "eval") {
		t.Fatalf("expected eval field, got %q", got)
	}
}

func TestGoInvalidDepth(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("go notanumber\nq\n"))

	if !strings.Contains(out.String(), "info error invalid depth") {
		t.Fatalf("expected invalid depth error, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("frobnicate\nq\n"))

	if !strings.Contains(out.String(), "badkeyword") {
		t.Fatalf("expected badkeyword, got %q", out.String())
	}
}

func TestNewGameInvalidPos(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	d.Run(strings.NewReader("newgame garbage zz\nq\n"))

	if !strings.Contains(out.String(), "newgame invalid pos") {
		t.Fatalf("expected newgame invalid pos, got %q", out.String())
	}
}

func TestOnGameOverCallback(t *testing.T) {
	var out strings.Builder
	d := New(&out)

	called := false
	d.OnGameOver = func(moves []string, final uttt.Board, result string) {
		called = true
	}

	d.Run(strings.NewReader("d\nq\n"))
	// A fresh game never ends; the callback simply must not fire.
	if called {
		t.Fatalf("OnGameOver fired on a non-terminal position")
	}
}
