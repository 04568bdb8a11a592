package model

import "math"

// AnswerTimeLimit is the number of seconds a player has to answer
const AnswerTimeLimit = 20.0

// TimerState is the lifecycle state of an AnswerTimer
type TimerState string

const (
	TimerRunning TimerState = "running"
	TimerExpired TimerState = "expired"
	TimerStopped TimerState = "stopped"
)

// Urgency drives how the remaining time is presented
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"
)

// Urgency thresholds in seconds remaining
const (
	warningThreshold  = 10.0
	criticalThreshold = 5.0
)

// AnswerTimer counts down the time left to answer a question.
// It is not safe for concurrent use.
type AnswerTimer struct {
	total     float64
	remaining float64
	state     TimerState
}

// NewAnswerTimer creates a running timer with the standard time limit
func NewAnswerTimer() *AnswerTimer {
	return NewAnswerTimerWithLimit(AnswerTimeLimit)
}

// NewAnswerTimerWithLimit creates a running timer with a custom limit
func NewAnswerTimerWithLimit(total float64) *AnswerTimer {
	return &AnswerTimer{total: total, remaining: total, state: TimerRunning}
}

// Tick advances the timer by delta seconds.
// Returns true exactly once, on the tick that expires the timer.
func (t *AnswerTimer) Tick(delta float64) bool {
	if t.state != TimerRunning || delta <= 0 || math.IsNaN(delta) {
		return false
	}
	t.remaining -= delta
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerExpired
		return true
	}
	return false
}

// Stop halts a running timer. It has no effect once expired or stopped.
func (t *AnswerTimer) Stop() {
	if t.state == TimerRunning {
		t.state = TimerStopped
	}
}

// State returns the current lifecycle state
func (t *AnswerTimer) State() TimerState {
	return t.state
}

// Remaining returns the seconds left, never negative
func (t *AnswerTimer) Remaining() float64 {
	return t.remaining
}

// Total returns the configured time limit
func (t *AnswerTimer) Total() float64 {
	return t.total
}

// WholeSeconds returns the remaining time truncated to whole seconds
func (t *AnswerTimer) WholeSeconds() int {
	return int(t.remaining)
}

// Progress returns the fraction of time remaining in [0, 1]
func (t *AnswerTimer) Progress() float64 {
	if t.total <= 0 {
		return 0
	}
	return t.remaining / t.total
}

// Urgency classifies the remaining time
func (t *AnswerTimer) Urgency() Urgency {
	return UrgencyFor(t.remaining)
}

// UrgencyFor classifies a number of seconds remaining
func UrgencyFor(remaining float64) Urgency {
	switch {
	case remaining <= criticalThreshold:
		return UrgencyCritical
	case remaining <= warningThreshold:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
