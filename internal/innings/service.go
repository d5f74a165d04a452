package innings

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/DhavalSuthar-24/cricketclub/internal/match"
	"github.com/DhavalSuthar-24/cricketclub/internal/models"
	"github.com/DhavalSuthar-24/cricketclub/internal/scoring"
)

// MatchLookup is what the innings service needs from the match service.
type MatchLookup interface {
	SetupFor(ctx context.Context, matchID uint) (*match.MatchRow, *match.InningsSetup, match.SetupStatus, error)
	StartMatch(ctx context.Context, id uint) (*match.MatchRow, error)
}

// Service runs the scoring sessions. One session per innings holds the live
// scoring state in memory; writes go through the Recorder.
type Service struct {
	repo     InningsRepository
	matches  MatchLookup
	recorder *Recorder
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uint]*session
}

type session struct {
	mu        sync.Mutex
	innings   Innings
	state     scoring.State
	seq       int64
	battingXI models.PlayerIDList
	bowlingXI models.PlayerIDList
	completed bool
}

// NewService creates an innings service.
func NewService(repo InningsRepository, matches MatchLookup, recorder *Recorder) *Service {
	return &Service{
		repo:     repo,
		matches:  matches,
		recorder: recorder,
		now:      time.Now,
		sessions: make(map[uint]*session),
	}
}

// StartInningsInput opens an innings with its openers and opening bowler.
type StartInningsInput struct {
	MatchID        uint   `json:"match_id" binding:"required"`
	StrikerID      uint   `json:"striker_id" binding:"required"`
	StrikerName    string `json:"striker_name"`
	NonStrikerID   uint   `json:"non_striker_id" binding:"required"`
	NonStrikerName string `json:"non_striker_name"`
	BowlerID       uint   `json:"bowler_id" binding:"required"`
	BowlerName     string `json:"bowler_name"`
}

// ScoringState is the scoring screen view of an innings.
type ScoringState struct {
	InningsID        uint            `json:"innings_id"`
	MatchID          uint            `json:"match_id"`
	InningsNumber    int             `json:"innings_number"`
	BattingTeamID    uint            `json:"batting_team_id"`
	BowlingTeamID    uint            `json:"bowling_team_id"`
	Status           string          `json:"status"`
	Score            string          `json:"score"`
	Overs            string          `json:"overs"`
	Runs             int             `json:"runs"`
	Wickets          int             `json:"wickets"`
	OversCompleted   int             `json:"overs_completed"`
	LegalBallsInOver int             `json:"legal_balls_in_over"`
	CurrentOver      []string        `json:"current_over"`
	Striker          scoring.Batter  `json:"striker"`
	NonStriker       scoring.Batter  `json:"non_striker"`
	Bowler           scoring.Bowler  `json:"bowler"`
	Prompt           *scoring.Prompt `json:"prompt"`
	PendingWrites    int             `json:"pending_writes"`
}

// StartInnings opens the next innings of a match. The first innings is
// batted by the setup's batting team, the second by the other side.
func (s *Service) StartInnings(ctx context.Context, in StartInningsInput) (*ScoringState, error) {
	m, setup, status, err := s.matches.SetupFor(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if !status.IsSetupComplete {
		return nil, common.Conflict("match %d setup is not complete", in.MatchID)
	}
	if m.IsCompleted {
		return nil, common.Conflict("match %d is already completed", in.MatchID)
	}

	existing, err := s.repo.ListMatchInnings(ctx, in.MatchID)
	if err != nil {
		return nil, common.Storage("list innings", err)
	}
	if len(existing) >= MaxInnings {
		return nil, common.Conflict("match %d already has %d innings", in.MatchID, MaxInnings)
	}
	for _, prev := range existing {
		if !s.isCompleted(prev) {
			return nil, common.Conflict("innings %d is still in progress", prev.InningsNumber)
		}
	}

	batting := *setup.BattingTeamID
	if len(existing) == 1 {
		batting = m.Opponent(batting)
	}
	bowling := m.Opponent(batting)
	battingXI, bowlingXI := setup.XIFor(&m.Match, batting), setup.XIFor(&m.Match, bowling)

	if in.StrikerID == in.NonStrikerID {
		return nil, common.Invalid("non_striker_id", "openers must be two different players")
	}
	if err := requireInXI(battingXI, "striker_id", in.StrikerID); err != nil {
		return nil, err
	}
	if err := requireInXI(battingXI, "non_striker_id", in.NonStrikerID); err != nil {
		return nil, err
	}
	if err := requireInXI(bowlingXI, "bowler_id", in.BowlerID); err != nil {
		return nil, err
	}

	if _, err := s.matches.StartMatch(ctx, in.MatchID); err != nil {
		return nil, err
	}

	state := scoring.NewState(
		scoring.Batter{PlayerID: in.StrikerID, Name: in.StrikerName},
		scoring.Batter{PlayerID: in.NonStrikerID, Name: in.NonStrikerName},
		scoring.Bowler{PlayerID: in.BowlerID, Name: in.BowlerName},
	)
	agg := aggregateOf(state, 0, StatusInProgress)
	inn := &Innings{
		MatchID:       in.MatchID,
		InningsNumber: len(existing) + 1,
		BattingTeamID: batting,
		BowlingTeamID: bowling,
		Score:         agg.Score,
		Overs:         agg.Overs,
		Snapshot:      agg.Snapshot,
		Status:        StatusInProgress,
	}
	if err := s.repo.CreateInnings(ctx, inn); err != nil {
		return nil, common.Storage("create innings", err)
	}

	sess := &session{innings: *inn, state: state, battingXI: battingXI, bowlingXI: bowlingXI}
	s.mu.Lock()
	s.sessions[inn.ID] = sess
	s.mu.Unlock()

	log.Printf("innings %d started: match %d, innings %d, team %d batting", inn.ID, inn.MatchID, inn.InningsNumber, batting)
	return s.view(sess), nil
}

// isCompleted reports whether inn is over, preferring the open session to
// the stored status, which lags until the recorder writes the final aggregate.
func (s *Service) isCompleted(inn Innings) bool {
	s.mu.Lock()
	sess, ok := s.sessions[inn.ID]
	s.mu.Unlock()
	if !ok {
		return inn.Status == StatusCompleted
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.completed
}

func requireInXI(xi models.PlayerIDList, field string, playerID uint) error {
	if playerID == 0 {
		return common.Invalid(field, "player id is required")
	}
	if !xi.Contains(playerID) {
		return common.Invalid(field, "player %d is not in the playing XI", playerID)
	}
	return nil
}

// ApplyAction runs one scorer action and queues the resulting writes.
func (s *Service) ApplyAction(ctx context.Context, inningsID uint, a scoring.Action) (*ScoringState, error) {
	sess, err := s.session(ctx, inningsID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completed {
		return nil, common.Conflict("innings %d is complete", inningsID)
	}
	switch a.Kind {
	case scoring.ActionNewBatter:
		if err := requireInXI(sess.battingXI, "player_id", a.PlayerID); err != nil {
			return nil, err
		}
	case scoring.ActionChangeBowler:
		if err := requireInXI(sess.bowlingXI, "player_id", a.PlayerID); err != nil {
			return nil, err
		}
	}

	next, deliveries, err := scoring.Apply(sess.state, a)
	if err != nil {
		return nil, actionError(err)
	}

	persistAggregate := false
	now := s.now()
	for _, d := range deliveries {
		sess.seq++
		s.recorder.EnqueueBall(newBallRecord(inningsID, sess.seq, d, now))
		if d.OverCompleted || d.AllOut {
			persistAggregate = true
		}
	}
	sess.state = next

	if next.Complete() {
		sess.completed = true
		sess.innings.Status = StatusCompleted
		log.Printf("innings %d all out at %s", inningsID, next.Ledger.ScoreLine())
	}
	if persistAggregate {
		s.recorder.EnqueueAggregate(inningsID, aggregateOf(next, sess.seq, sess.innings.Status))
	}
	return s.view(sess), nil
}

func actionError(err error) error {
	switch {
	case errors.Is(err, scoring.ErrInvalidAction):
		return common.Invalid("action", "%v", err)
	case errors.Is(err, scoring.ErrPromptPending), errors.Is(err, scoring.ErrNoPrompt), errors.Is(err, scoring.ErrInningsComplete):
		return common.Conflict("%v", err)
	}
	return err
}

// GetState returns the scoring view of an innings, loading it from storage
// when no session is open.
func (s *Service) GetState(ctx context.Context, inningsID uint) (*ScoringState, error) {
	sess, err := s.session(ctx, inningsID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// EndInnings closes an innings and queues its final aggregate.
func (s *Service) EndInnings(ctx context.Context, inningsID uint) (*ScoringState, error) {
	sess, err := s.session(ctx, inningsID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.completed {
		return nil, common.Conflict("innings %d is already complete", inningsID)
	}
	sess.completed = true
	sess.innings.Status = StatusCompleted
	s.recorder.EnqueueAggregate(inningsID, aggregateOf(sess.state, sess.seq, StatusCompleted))

	log.Printf("innings %d ended at %s (%s)", inningsID, sess.state.Ledger.ScoreLine(), sess.state.Ledger.Overs())
	return s.view(sess), nil
}

// Reconcile drains the innings' write queue and reloads its state from
// storage: the stored aggregate plus every ball recorded after it. It fails
// with ErrStateConflict while writes are still queued. A new batter or bowler
// chosen after the last recorded ball is not stored yet and must be chosen again.
func (s *Service) Reconcile(ctx context.Context, inningsID uint) (*ScoringState, error) {
	if err := s.recorder.FlushInnings(ctx, inningsID); err != nil {
		return nil, common.Conflict("%d writes still queued for innings %d: %v", s.recorder.Pending(inningsID), inningsID, err)
	}

	sess, err := s.load(ctx, inningsID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[inningsID] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

func (s *Service) session(ctx context.Context, inningsID uint) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[inningsID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	sess, err := s.load(ctx, inningsID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have loaded it meanwhile.
	if existing, ok := s.sessions[inningsID]; ok {
		return existing, nil
	}
	s.sessions[inningsID] = sess
	return sess, nil
}

// load rebuilds a session from the stored aggregate and the ball log.
func (s *Service) load(ctx context.Context, inningsID uint) (*session, error) {
	inn, err := s.repo.FetchInnings(ctx, inningsID)
	if err != nil {
		return nil, common.Storage("fetch innings", err)
	}
	if inn == nil {
		return nil, common.NotFound("innings", inningsID)
	}

	recs, err := s.repo.FetchBallRecordsAfter(ctx, inningsID, inn.LastSeq)
	if err != nil {
		return nil, common.Storage("fetch ball records", err)
	}

	state := inn.State()
	seq := inn.LastSeq
	for _, rec := range recs {
		d, err := rec.Delivery()
		if err != nil {
			return nil, common.Storage("decode ball record", err)
		}
		state = scoring.Replay(state, d)
		seq = rec.Seq
	}

	m, setup, _, err := s.matches.SetupFor(ctx, inn.MatchID)
	if err != nil {
		return nil, err
	}
	sess := &session{
		innings:   *inn,
		state:     state,
		seq:       seq,
		completed: inn.Status == StatusCompleted || state.Complete(),
	}
	if setup != nil {
		sess.battingXI = setup.XIFor(&m.Match, inn.BattingTeamID)
		sess.bowlingXI = setup.XIFor(&m.Match, inn.BowlingTeamID)
	}
	if sess.completed {
		sess.innings.Status = StatusCompleted
	}
	return sess, nil
}

func (s *Service) view(sess *session) *ScoringState {
	st := sess.state
	v := &ScoringState{
		InningsID:        sess.innings.ID,
		MatchID:          sess.innings.MatchID,
		InningsNumber:    sess.innings.InningsNumber,
		BattingTeamID:    sess.innings.BattingTeamID,
		BowlingTeamID:    sess.innings.BowlingTeamID,
		Status:           sess.innings.Status,
		Score:            st.Ledger.ScoreLine(),
		Overs:            st.Ledger.Overs(),
		Runs:             st.Ledger.TotalRuns,
		Wickets:          st.Ledger.TotalWickets,
		OversCompleted:   st.Ledger.OversCompleted,
		LegalBallsInOver: st.Ledger.LegalBallsInOver,
		CurrentOver:      append([]string{}, st.Ledger.CurrentOver...),
		Striker:          st.Striker,
		NonStriker:       st.NonStriker,
		Bowler:           st.Bowler,
		PendingWrites:    s.recorder.Pending(sess.innings.ID),
	}
	if p, ok := st.ActivePrompt(); ok {
		v.Prompt = &p
	}
	return v
}
