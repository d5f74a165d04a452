package scoring

import (
	"fmt"
	"strconv"
)

const (
	// BallsPerOver is the number of legal deliveries in an over.
	BallsPerOver = 6
	// MaxWickets ends the innings: the side is all out.
	MaxWickets = 10
)

// Ledger is the score line of an innings plus the deliveries of the over in progress.
//
// LegalBallsInOver stays in [0, 5]: the sixth legal ball rolls the over,
// resets the counter and clears CurrentOver. Wides and no-balls are appended
// to CurrentOver but never move the counter, so they stay visible until the
// over ends.
type Ledger struct {
	LegalBallsInOver int      `json:"legal_balls_in_over"`
	OversCompleted   int      `json:"overs_completed"`
	CurrentOver      []string `json:"current_over"`
	TotalRuns        int      `json:"total_runs"`
	TotalWickets     int      `json:"total_wickets"`
}

// RecordBall appends a delivery label and advances the over on a legal ball.
// It reports whether this ball completed the over. Runs and wickets are not
// touched here; the caller credits them with AddRuns and AddWicket.
func (l Ledger) RecordBall(label string, legal bool) (Ledger, bool) {
	next := l
	next.CurrentOver = append(append(make([]string, 0, len(l.CurrentOver)+1), l.CurrentOver...), label)

	if !legal {
		return next, false
	}

	next.LegalBallsInOver++
	if next.LegalBallsInOver == BallsPerOver {
		next.OversCompleted++
		next.LegalBallsInOver = 0
		next.CurrentOver = []string{}
		return next, true
	}
	return next, false
}

// AddRuns credits runs to the innings total.
func (l Ledger) AddRuns(runs int) Ledger {
	l.TotalRuns += runs
	return l
}

// AddWicket records a dismissal. The count never goes past MaxWickets.
func (l Ledger) AddWicket() Ledger {
	if l.TotalWickets < MaxWickets {
		l.TotalWickets++
	}
	return l
}

// AllOut reports whether the innings has lost all ten wickets.
func (l Ledger) AllOut() bool {
	return l.TotalWickets >= MaxWickets
}

// Overs is the "<completed>.<legal balls>" display, e.g. "4.2".
func (l Ledger) Overs() string {
	return strconv.Itoa(l.OversCompleted) + "." + strconv.Itoa(l.LegalBallsInOver)
}

// ScoreLine is the "<runs>/<wickets>" display, e.g. "158/4".
func (l Ledger) ScoreLine() string {
	return fmt.Sprintf("%d/%d", l.TotalRuns, l.TotalWickets)
}

// TotalLegalBalls is the number of legal deliveries bowled in the innings.
func (l Ledger) TotalLegalBalls() int {
	return l.OversCompleted*BallsPerOver + l.LegalBallsInOver
}

func (l Ledger) clone() Ledger {
	l.CurrentOver = append([]string{}, l.CurrentOver...)
	return l
}
