package parse

import (
	"time"

	"tableflip.dev/remind/pkg/task"
)

// Record is the transient result of parsing one task phrase. It is consumed
// by the store's classifier and never persisted directly.
type Record struct {
	Content     string
	Date        time.Time
	EndDate     *time.Time
	Duration    int // minutes
	IsRepeat    bool
	RepeatType  task.RepeatType
	IsCountdown bool
	Tags        []string
}

// Failure reports a phrase the parser could not handle, with the original
// text preserved so the user can correct it.
type Failure struct {
	Text string
	Err  error
}

// Results aggregates one batch of parsed phrases.
type Results struct {
	Success []Record
	Failed  []Failure
}
