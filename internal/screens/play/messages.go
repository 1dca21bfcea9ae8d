package play

import (
	"time"

	"github.com/abhisek/codearena/internal/challenge"
	"github.com/abhisek/codearena/internal/coach"
	"github.com/abhisek/codearena/internal/engine"
)

// checkDoneMsg carries the verdict on a submission.
type checkDoneMsg struct {
	Result     challenge.Result
	Completion *engine.Completion // set when this pass scored
	SaveErr    error              // progress could not be saved
}

// reviewDoneMsg carries the AI coach's review.
type reviewDoneMsg struct {
	Feedback coach.Feedback
	Err      error
}

// timerTickMsg is sent every second to update the elapsed clock.
type timerTickMsg time.Time

// spinnerTickMsg animates the "running" indicator.
type spinnerTickMsg time.Time
