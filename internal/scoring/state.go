package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction   = errors.New("invalid scoring action")
	ErrPromptPending   = errors.New("a prompt is waiting for an answer")
	ErrNoPrompt        = errors.New("no prompt is waiting for an answer")
	ErrInningsComplete = errors.New("innings is complete")
)

// Batter is a batter at the crease with their personal tally.
type Batter struct {
	PlayerID uint   `json:"player_id"`
	Name     string `json:"name,omitempty"`
	Runs     int    `json:"runs"`
	Balls    int    `json:"balls"`
}

// Bowler is the player bowling the current over.
type Bowler struct {
	PlayerID uint   `json:"player_id"`
	Name     string `json:"name,omitempty"`
}

// PromptKind names the question the scorer must answer before the next ball.
type PromptKind string

const (
	PromptWideRuns   PromptKind = "wide_runs"
	PromptNoBallRuns PromptKind = "no_ball_runs"
	PromptByeRuns    PromptKind = "bye_runs"
	PromptLegByeRuns PromptKind = "leg_bye_runs"
	PromptNewBatter  PromptKind = "new_batter"
)

// Prompt is a pending question. OutPlayerID is set for PromptNewBatter.
type Prompt struct {
	Kind        PromptKind `json:"kind"`
	OutPlayerID uint       `json:"out_player_id,omitempty"`
}

// ActionKind is a scoring pad button or an answer to the active prompt.
type ActionKind string

const (
	ActionRun          ActionKind = "RUN"
	ActionWide         ActionKind = "WD"
	ActionNoBall       ActionKind = "NB"
	ActionBye          ActionKind = "BYE"
	ActionLegBye       ActionKind = "LB"
	ActionOut          ActionKind = "OUT"
	ActionExtraRuns    ActionKind = "EXTRA_RUNS"
	ActionNewBatter    ActionKind = "NEW_BATTER"
	ActionChangeBowler ActionKind = "CHANGE_BOWLER"
)

// Action is one scorer input.
//
//   - RUN with Runs in {0,1,2,3,4,6}
//   - WD, NB, BYE, LB open the matching runs prompt
//   - EXTRA_RUNS answers it: Runs, plus Wicket/OutPlayerID for a run-out on a wide or no-ball
//   - OUT dismisses the striker and opens the new batter prompt
//   - NEW_BATTER answers it with PlayerID/Name
//   - CHANGE_BOWLER sets PlayerID/Name as the bowler
type Action struct {
	Kind        ActionKind `json:"kind"`
	Runs        int        `json:"runs"`
	Wicket      bool       `json:"wicket"`
	OutPlayerID uint       `json:"out_player_id"`
	PlayerID    uint       `json:"player_id"`
	Name        string     `json:"name"`
}

// Delivery is a ball that must be appended to the ball log. The crease and
// bowler fields are as they stood when the ball was bowled.
type Delivery struct {
	Outcome        BallOutcome
	StrikerID      uint
	StrikerName    string
	NonStrikerID   uint
	NonStrikerName string
	BowlerID       uint
	BowlerName     string
	OutPlayerID    uint
	OverNumber     int // overs completed before this ball
	OverCompleted  bool
	AllOut         bool
}

// State is the full scoring state of an innings in progress.
type State struct {
	Ledger     Ledger   `json:"ledger"`
	Striker    Batter   `json:"striker"`
	NonStriker Batter   `json:"non_striker"`
	Bowler     Bowler   `json:"bowler"`
	Pending    []Prompt `json:"pending"`
}

// NewState starts an innings with the two openers and the opening bowler.
func NewState(striker, nonStriker Batter, bowler Bowler) State {
	return State{
		Ledger:     Ledger{CurrentOver: []string{}},
		Striker:    striker,
		NonStriker: nonStriker,
		Bowler:     bowler,
		Pending:    []Prompt{},
	}
}

// ActivePrompt returns the prompt the next action must answer, if any.
// Only the head of the queue is active.
func (s State) ActivePrompt() (Prompt, bool) {
	if len(s.Pending) == 0 {
		return Prompt{}, false
	}
	return s.Pending[0], true
}

// Complete reports whether no further deliveries can be recorded.
func (s State) Complete() bool {
	return s.Ledger.AllOut()
}

// Apply runs one action against s and returns the next state together with
// the deliveries it produced. s is not modified. On error the returned state
// is s unchanged.
func Apply(s State, a Action) (State, []Delivery, error) {
	if s.Complete() {
		return s, nil, ErrInningsComplete
	}

	next := s.clone()
	var (
		out []Delivery
		err error
	)
	if p, ok := next.ActivePrompt(); ok {
		out, err = next.answer(p, a)
	} else {
		out, err = next.press(a)
	}
	if err != nil {
		return s, nil, err
	}
	return next, out, nil
}

func (s *State) press(a Action) ([]Delivery, error) {
	switch a.Kind {
	case ActionRun:
		if !ValidBatRuns(a.Runs) {
			return nil, fmt.Errorf("%w: %d runs off the bat", ErrInvalidAction, a.Runs)
		}
		return []Delivery{s.deliver(Run{Runs: a.Runs}, 0)}, nil
	case ActionWide:
		s.enqueue(Prompt{Kind: PromptWideRuns})
	case ActionNoBall:
		s.enqueue(Prompt{Kind: PromptNoBallRuns})
	case ActionBye:
		s.enqueue(Prompt{Kind: PromptByeRuns})
	case ActionLegBye:
		s.enqueue(Prompt{Kind: PromptLegByeRuns})
	case ActionOut:
		outID := s.Striker.PlayerID
		d := s.deliver(Wicket{}, outID)
		if !s.Complete() {
			s.enqueue(Prompt{Kind: PromptNewBatter, OutPlayerID: outID})
		}
		return []Delivery{d}, nil
	case ActionChangeBowler:
		if a.PlayerID == 0 {
			return nil, fmt.Errorf("%w: bowler player_id is required", ErrInvalidAction)
		}
		s.Bowler = Bowler{PlayerID: a.PlayerID, Name: a.Name}
	case ActionExtraRuns, ActionNewBatter:
		return nil, ErrNoPrompt
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, a.Kind)
	}
	return nil, nil
}

func (s *State) answer(p Prompt, a Action) ([]Delivery, error) {
	switch p.Kind {
	case PromptWideRuns, PromptNoBallRuns:
		if a.Kind != ActionExtraRuns {
			return nil, fmt.Errorf("%w: %s must be answered first", ErrPromptPending, p.Kind)
		}
		if !ValidBatRuns(a.Runs) {
			return nil, fmt.Errorf("%w: %d runs taken on %s", ErrInvalidAction, a.Runs, p.Kind)
		}
		var outID uint
		if a.Wicket {
			outID = a.OutPlayerID
			if outID == 0 {
				outID = s.Striker.PlayerID
			}
			if outID != s.Striker.PlayerID && outID != s.NonStriker.PlayerID {
				return nil, fmt.Errorf("%w: player %d is not at the crease", ErrInvalidAction, outID)
			}
		}

		// The extras prompt closes before the wicket prompt opens.
		s.dequeue()
		var o BallOutcome = Wide{Runs: a.Runs, Wicket: a.Wicket}
		if p.Kind == PromptNoBallRuns {
			o = NoBall{Runs: a.Runs, Wicket: a.Wicket}
		}
		d := s.deliver(o, outID)
		if a.Wicket && !s.Complete() {
			s.enqueue(Prompt{Kind: PromptNewBatter, OutPlayerID: outID})
		}
		return []Delivery{d}, nil

	case PromptByeRuns, PromptLegByeRuns:
		if a.Kind != ActionExtraRuns {
			return nil, fmt.Errorf("%w: %s must be answered first", ErrPromptPending, p.Kind)
		}
		if !ValidByeRuns(a.Runs) {
			return nil, fmt.Errorf("%w: %d runs on %s", ErrInvalidAction, a.Runs, p.Kind)
		}
		if a.Wicket {
			return nil, fmt.Errorf("%w: wicket is not recorded with byes", ErrInvalidAction)
		}
		s.dequeue()
		var o BallOutcome = Bye{Runs: a.Runs}
		if p.Kind == PromptLegByeRuns {
			o = LegBye{Runs: a.Runs}
		}
		return []Delivery{s.deliver(o, 0)}, nil

	case PromptNewBatter:
		if a.Kind != ActionNewBatter {
			return nil, fmt.Errorf("%w: %s must be answered first", ErrPromptPending, p.Kind)
		}
		if a.PlayerID == 0 {
			return nil, fmt.Errorf("%w: incoming batter player_id is required", ErrInvalidAction)
		}
		if a.PlayerID == s.Striker.PlayerID || a.PlayerID == s.NonStriker.PlayerID {
			return nil, fmt.Errorf("%w: player %d is already at the crease", ErrInvalidAction, a.PlayerID)
		}
		s.dequeue()
		incoming := Batter{PlayerID: a.PlayerID, Name: a.Name}
		// The incoming batter takes the dismissed batter's place, whichever end that is.
		if s.NonStriker.PlayerID == p.OutPlayerID {
			s.NonStriker = incoming
		} else {
			s.Striker = incoming
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown prompt %q", ErrInvalidAction, p.Kind)
}

// deliver books one ball: striker tally, team total, wickets, the over
// ledger and strike rotation.
func (s *State) deliver(o BallOutcome, outID uint) Delivery {
	d := Delivery{
		Outcome:        o,
		StrikerID:      s.Striker.PlayerID,
		StrikerName:    s.Striker.Name,
		NonStrikerID:   s.NonStriker.PlayerID,
		NonStrikerName: s.NonStriker.Name,
		BowlerID:       s.Bowler.PlayerID,
		BowlerName:     s.Bowler.Name,
		OutPlayerID:    outID,
		OverNumber:     s.Ledger.OversCompleted,
	}

	s.Striker.Runs += o.BatterRuns()
	if facesBall(o) {
		s.Striker.Balls++
	}
	s.Ledger = s.Ledger.AddRuns(o.TeamRuns())
	if o.IsWicket() {
		s.Ledger = s.Ledger.AddWicket()
	}

	var overDone bool
	s.Ledger, overDone = s.Ledger.RecordBall(o.Label(), o.IsLegal())

	if r, ok := o.(Run); ok && r.Runs%2 == 1 {
		s.swapStrike()
	}
	if overDone {
		s.swapStrike()
	}

	d.OverCompleted = overDone
	d.AllOut = s.Complete()
	return d
}

// facesBall reports whether the striker is charged a ball faced. Every
// delivery except a wide is.
func facesBall(o BallOutcome) bool {
	_, wide := o.(Wide)
	return !wide
}

func (s *State) swapStrike() {
	s.Striker, s.NonStriker = s.NonStriker, s.Striker
}

func (s *State) enqueue(p Prompt) {
	s.Pending = append(s.Pending, p)
}

func (s *State) dequeue() {
	s.Pending = append([]Prompt{}, s.Pending[1:]...)
}

func (s State) clone() State {
	s.Ledger = s.Ledger.clone()
	s.Pending = append([]Prompt{}, s.Pending...)
	return s
}

// Replay books a delivery that was recorded earlier on top of s. The crease
// and bowler are taken from the record, which restores batter and bowler
// changes made between recorded balls. Prompts still open in s are dropped;
// a recorded wicket leaves the new batter prompt open until the next record
// shows who came in.
func Replay(s State, d Delivery) State {
	next := s.clone()
	next.Pending = []Prompt{}

	striker, nonStriker := next.batter(d.StrikerID, d.StrikerName), next.batter(d.NonStrikerID, d.NonStrikerName)
	next.Striker, next.NonStriker = striker, nonStriker
	if next.Bowler.PlayerID != d.BowlerID || d.BowlerName != "" {
		next.Bowler = Bowler{PlayerID: d.BowlerID, Name: d.BowlerName}
	}

	next.deliver(d.Outcome, d.OutPlayerID)
	if d.Outcome.IsWicket() && !next.Complete() {
		next.enqueue(Prompt{Kind: PromptNewBatter, OutPlayerID: d.OutPlayerID})
	}
	return next
}

// batter returns the crease entry for id with its tally, or a fresh batter.
// A recorded name fills in one that is missing.
func (s State) batter(id uint, name string) Batter {
	b := Batter{PlayerID: id}
	switch id {
	case s.Striker.PlayerID:
		b = s.Striker
	case s.NonStriker.PlayerID:
		b = s.NonStriker
	}
	if b.Name == "" {
		b.Name = name
	}
	return b
}
