package innings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DhavalSuthar-24/cricketclub/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Innings status values.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// MaxInnings is the number of innings in a limited-overs match.
const MaxInnings = 2

// Innings is the durable aggregate of one innings. The score columns are
// written on over completion and when the innings ends; LastSeq is the ball
// record sequence the aggregate includes.
type Innings struct {
	ID             uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	MatchID        uint           `json:"match_id" gorm:"not null;uniqueIndex:idx_match_innings_number"`
	InningsNumber  int            `json:"innings_number" gorm:"not null;uniqueIndex:idx_match_innings_number"`
	BattingTeamID  uint           `json:"batting_team_id" gorm:"not null"`
	BowlingTeamID  uint           `json:"bowling_team_id" gorm:"not null"`
	Runs           int            `json:"runs" gorm:"not null;default:0"`
	Wickets        int            `json:"wickets" gorm:"not null;default:0"`
	OversCompleted int            `json:"overs_completed" gorm:"not null;default:0"`
	LegalBalls     int            `json:"legal_balls" gorm:"not null;default:0"` // legal balls of the over in progress
	Score          string         `json:"score" gorm:"type:varchar(16)"`
	Overs          string         `json:"overs" gorm:"type:varchar(16)"`
	Snapshot       Snapshot       `json:"snapshot" gorm:"type:jsonb"`
	LastSeq        int64          `json:"last_seq" gorm:"not null;default:0"`
	IsCurrent      bool           `json:"is_current" gorm:"not null;default:false;index"`
	Status         string         `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Innings) TableName() string {
	return "match_innings"
}

// Snapshot is the crease and display state stored next to the aggregate so
// a restarted server can resume scoring.
type Snapshot struct {
	Striker     scoring.Batter   `json:"striker"`
	NonStriker  scoring.Batter   `json:"non_striker"`
	Bowler      scoring.Bowler   `json:"bowler"`
	CurrentOver []string         `json:"current_over"`
	Pending     []scoring.Prompt `json:"pending"`
}

func (s Snapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Snapshot) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*s = Snapshot{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("Snapshot: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// Aggregate is the column set written by PersistAggregateScore.
type Aggregate struct {
	Runs           int
	Wickets        int
	OversCompleted int
	LegalBalls     int
	Score          string
	Overs          string
	Snapshot       Snapshot
	LastSeq        int64
	Status         string
}

// aggregateOf captures a scoring state as of ball record seq.
func aggregateOf(st scoring.State, seq int64, status string) Aggregate {
	return Aggregate{
		Runs:           st.Ledger.TotalRuns,
		Wickets:        st.Ledger.TotalWickets,
		OversCompleted: st.Ledger.OversCompleted,
		LegalBalls:     st.Ledger.LegalBallsInOver,
		Score:          st.Ledger.ScoreLine(),
		Overs:          st.Ledger.Overs(),
		Snapshot: Snapshot{
			Striker:     st.Striker,
			NonStriker:  st.NonStriker,
			Bowler:      st.Bowler,
			CurrentOver: append([]string{}, st.Ledger.CurrentOver...),
			Pending:     append([]scoring.Prompt{}, st.Pending...),
		},
		LastSeq: seq,
		Status:  status,
	}
}

// State rebuilds the scoring state stored in the aggregate columns.
func (i *Innings) State() scoring.State {
	st := scoring.NewState(i.Snapshot.Striker, i.Snapshot.NonStriker, i.Snapshot.Bowler)
	st.Ledger.TotalRuns = i.Runs
	st.Ledger.TotalWickets = i.Wickets
	st.Ledger.OversCompleted = i.OversCompleted
	st.Ledger.LegalBallsInOver = i.LegalBalls
	if i.Snapshot.CurrentOver != nil {
		st.Ledger.CurrentOver = append([]string{}, i.Snapshot.CurrentOver...)
	}
	if i.Snapshot.Pending != nil {
		st.Pending = append([]scoring.Prompt{}, i.Snapshot.Pending...)
	}
	return st
}

// BallRecord is one row of the append-only ball log.
type BallRecord struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	InningsID      uint      `json:"innings_id" gorm:"not null;uniqueIndex:idx_ball_innings_seq"`
	Seq            int64     `json:"seq" gorm:"not null;uniqueIndex:idx_ball_innings_seq"`
	ClientRef      uuid.UUID `json:"client_ref" gorm:"type:uuid;not null;uniqueIndex"`
	OverNumber     int       `json:"over_number" gorm:"not null"`
	Outcome        string    `json:"outcome" gorm:"type:varchar(8);not null"`
	IsLegal        bool      `json:"is_legal"`
	IsWicket       bool      `json:"is_wicket"`
	TeamRuns       int       `json:"team_runs"`
	BatterRuns     int       `json:"batter_runs"`
	StrikerID      uint      `json:"striker_id"`
	StrikerName    string    `json:"striker_name"`
	NonStrikerID   uint      `json:"non_striker_id"`
	NonStrikerName string    `json:"non_striker_name"`
	BowlerID       uint      `json:"bowler_id"`
	BowlerName     string    `json:"bowler_name"`
	OutPlayerID    *uint     `json:"out_player_id"`
	RecordedAt     time.Time `json:"recorded_at" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

func (BallRecord) TableName() string {
	return "ball_records"
}

func newBallRecord(inningsID uint, seq int64, d scoring.Delivery, at time.Time) BallRecord {
	rec := BallRecord{
		InningsID:      inningsID,
		Seq:            seq,
		ClientRef:      uuid.New(),
		OverNumber:     d.OverNumber,
		Outcome:        d.Outcome.Label(),
		IsLegal:        d.Outcome.IsLegal(),
		IsWicket:       d.Outcome.IsWicket(),
		TeamRuns:       d.Outcome.TeamRuns(),
		BatterRuns:     d.Outcome.BatterRuns(),
		StrikerID:      d.StrikerID,
		StrikerName:    d.StrikerName,
		NonStrikerID:   d.NonStrikerID,
		NonStrikerName: d.NonStrikerName,
		BowlerID:       d.BowlerID,
		BowlerName:     d.BowlerName,
		RecordedAt:     at,
	}
	if d.OutPlayerID != 0 {
		out := d.OutPlayerID
		rec.OutPlayerID = &out
	}
	return rec
}

// Delivery turns the record back into the delivery it was written from.
func (r *BallRecord) Delivery() (scoring.Delivery, error) {
	o, err := scoring.ParseLabel(r.Outcome)
	if err != nil {
		return scoring.Delivery{}, err
	}
	// The wicket on a wide or no-ball is not part of the label.
	switch v := o.(type) {
	case scoring.Wide:
		v.Wicket = r.IsWicket
		o = v
	case scoring.NoBall:
		v.Wicket = r.IsWicket
		o = v
	}

	d := scoring.Delivery{
		Outcome:        o,
		StrikerID:      r.StrikerID,
		StrikerName:    r.StrikerName,
		NonStrikerID:   r.NonStrikerID,
		NonStrikerName: r.NonStrikerName,
		BowlerID:       r.BowlerID,
		BowlerName:     r.BowlerName,
		OverNumber:     r.OverNumber,
	}
	if r.OutPlayerID != nil {
		d.OutPlayerID = *r.OutPlayerID
	}
	return d, nil
}
