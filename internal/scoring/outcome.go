// Package scoring holds the ball-by-ball scoring model of an innings: the
// delivery outcomes, the over ledger and the prompt-driven state machine that
// turns a scorer's button presses into ledger updates.
//
// Everything here is pure. Apply takes a State and an Action and returns the
// next State plus the deliveries that must be persisted; it never touches
// storage or the clock.
package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// BallOutcome is one delivery as it appears in the current-over display and
// in the ball log. It is exactly one of Run, Wide, NoBall, Bye, LegBye or Wicket.
type BallOutcome interface {
	// Label is the display form: "4", "WD+2", "NB+0", "B1", "LB3", "W".
	Label() string
	// IsLegal reports whether the delivery counts towards the six-ball over.
	IsLegal() bool
	// TeamRuns is everything added to the innings total.
	TeamRuns() int
	// BatterRuns is the part credited to the striker.
	BatterRuns() int
	// IsWicket reports whether a batter was dismissed on this delivery.
	IsWicket() bool

	outcome()
}

// Run is runs off the bat.
type Run struct {
	Runs int
}

// Wide is a wide plus any runs taken. A run-out can happen on it.
type Wide struct {
	Runs   int
	Wicket bool
}

// NoBall is a no-ball plus any runs taken. A run-out can happen on it.
type NoBall struct {
	Runs   int
	Wicket bool
}

// Bye is runs taken without the bat touching the ball.
type Bye struct {
	Runs int
}

// LegBye is runs taken off the batter's body.
type LegBye struct {
	Runs int
}

// Wicket is a dismissal on a legal delivery.
type Wicket struct{}

// ExtraPenalty is the one-run penalty of a wide or a no-ball.
const ExtraPenalty = 1

func (r Run) Label() string { return strconv.Itoa(r.Runs) }
func (Run) IsLegal() bool { return true }
func (r Run) TeamRuns() int { return r.Runs }
func (r Run) BatterRuns() int { return r.Runs }
func (Run) IsWicket() bool { return false }
func (Run) outcome() {}

func (w Wide) Label() string { return "WD+" + strconv.Itoa(w.Runs) }
func (Wide) IsLegal() bool { return false }
func (w Wide) TeamRuns() int { return ExtraPenalty + w.Runs }
func (Wide) BatterRuns() int { return 0 }
func (w Wide) IsWicket() bool { return w.Wicket }
func (Wide) outcome() {}

func (n NoBall) Label() string { return "NB+" + strconv.Itoa(n.Runs) }
func (NoBall) IsLegal() bool { return false }
func (n NoBall) TeamRuns() int { return ExtraPenalty + n.Runs }
func (NoBall) BatterRuns() int { return 0 }
func (n NoBall) IsWicket() bool { return n.Wicket }
func (NoBall) outcome() {}

func (b Bye) Label() string { return "B" + strconv.Itoa(b.Runs) }
func (Bye) IsLegal() bool { return true }
func (b Bye) TeamRuns() int { return b.Runs }
func (Bye) BatterRuns() int { return 0 }
func (Bye) IsWicket() bool { return false }
func (Bye) outcome() {}

func (l LegBye) Label() string { return "LB" + strconv.Itoa(l.Runs) }
func (LegBye) IsLegal() bool { return true }
func (l LegBye) TeamRuns() int { return l.Runs }
func (LegBye) BatterRuns() int { return 0 }
func (LegBye) IsWicket() bool { return false }
func (LegBye) outcome() {}

func (Wicket) Label() string { return "W" }
func (Wicket) IsLegal() bool { return true }
func (Wicket) TeamRuns() int { return 0 }
func (Wicket) BatterRuns() int { return 0 }
func (Wicket) IsWicket() bool { return true }
func (Wicket) outcome() {}

// offTheBat are the run counts a scorer can enter for a hit or for runs
// taken on a wide/no-ball. Five is not on the pad.
var offTheBat = map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 6: true}

// ValidBatRuns reports whether n can be scored off the bat or taken on a wide/no-ball.
func ValidBatRuns(n int) bool {
	return offTheBat[n]
}

// ValidByeRuns reports whether n can be run as byes or leg-byes.
func ValidByeRuns(n int) bool {
	return n >= 0 && n <= 4
}

// ParseLabel turns a display label back into an outcome. Wicket-on-extra is
// not part of the label, so wides and no-balls parse with Wicket false.
func ParseLabel(label string) (BallOutcome, error) {
	switch {
	case label == "W":
		return Wicket{}, nil
	case strings.HasPrefix(label, "WD+"):
		n, err := parseRuns(label, "WD+", ValidBatRuns)
		if err != nil {
			return nil, err
		}
		return Wide{Runs: n}, nil
	case strings.HasPrefix(label, "NB+"):
		n, err := parseRuns(label, "NB+", ValidBatRuns)
		if err != nil {
			return nil, err
		}
		return NoBall{Runs: n}, nil
	case strings.HasPrefix(label, "LB"):
		n, err := parseRuns(label, "LB", ValidByeRuns)
		if err != nil {
			return nil, err
		}
		return LegBye{Runs: n}, nil
	case strings.HasPrefix(label, "B"):
		n, err := parseRuns(label, "B", ValidByeRuns)
		if err != nil {
			return nil, err
		}
		return Bye{Runs: n}, nil
	default:
		n, err := parseRuns(label, "", ValidBatRuns)
		if err != nil {
			return nil, err
		}
		return Run{Runs: n}, nil
	}
}

func parseRuns(label, prefix string, valid func(int) bool) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(label, prefix))
	if err != nil || !valid(n) {
		return 0, fmt.Errorf("invalid ball label %q", label)
	}
	return n, nil
}
