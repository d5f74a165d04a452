package innings

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/DhavalSuthar-24/cricketclub/internal/match"
	"github.com/DhavalSuthar-24/cricketclub/internal/models"
)

var errDown = errors.New("database is down")

// fakeRepo is an in-memory InningsRepository. While down is set every write fails.
type fakeRepo struct {
	mu      sync.Mutex
	innings map[uint]*Innings
	balls   map[uint][]BallRecord
	nextID  uint
	down    bool
	writes  []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{innings: map[uint]*Innings{}, balls: map[uint][]BallRecord{}, nextID: 1}
}

func (f *fakeRepo) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeRepo) CreateInnings(_ context.Context, inn *Innings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errDown
	}
	for _, other := range f.innings {
		if other.MatchID == inn.MatchID {
			other.IsCurrent = false
		}
	}
	inn.ID = f.nextID
	inn.IsCurrent = true
	f.nextID++
	cp := *inn
	f.innings[inn.ID] = &cp
	return nil
}

func (f *fakeRepo) FetchInnings(_ context.Context, id uint) (*Innings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errDown
	}
	inn, ok := f.innings[id]
	if !ok {
		return nil, nil
	}
	cp := *inn
	return &cp, nil
}

func (f *fakeRepo) ListMatchInnings(_ context.Context, matchID uint) ([]Innings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errDown
	}
	var out []Innings
	for _, inn := range f.innings {
		if inn.MatchID == matchID {
			out = append(out, *inn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InningsNumber < out[j].InningsNumber })
	return out, nil
}

func (f *fakeRepo) AppendBallRecord(_ context.Context, rec *BallRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errDown
	}
	f.balls[rec.InningsID] = append(f.balls[rec.InningsID], *rec)
	f.writes = append(f.writes, "ball")
	return nil
}

func (f *fakeRepo) PersistAggregateScore(_ context.Context, inningsID uint, a Aggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return errDown
	}
	inn, ok := f.innings[inningsID]
	if !ok || inn.LastSeq > a.LastSeq {
		return nil
	}
	inn.Runs, inn.Wickets = a.Runs, a.Wickets
	inn.OversCompleted, inn.LegalBalls = a.OversCompleted, a.LegalBalls
	inn.Score, inn.Overs = a.Score, a.Overs
	inn.Snapshot, inn.LastSeq = a.Snapshot, a.LastSeq
	if a.Status != "" {
		inn.Status = a.Status
	}
	f.writes = append(f.writes, "aggregate "+a.Score)
	return nil
}

func (f *fakeRepo) FetchBallRecordsAfter(_ context.Context, inningsID uint, seq int64) ([]BallRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errDown
	}
	var out []BallRecord
	for _, rec := range f.balls[inningsID] {
		if rec.Seq > seq {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) ballCount(inningsID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.balls[inningsID])
}

func (f *fakeRepo) stored(inningsID uint) Innings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.innings[inningsID]
}

// fakeMatches serves match 1: team 10 (XI 100-110) bats first against
// team 20 (XI 200-210).
type fakeMatches struct {
	mu        sync.Mutex
	row       match.MatchRow
	setup     *match.InningsSetup
	complete  bool
	startHits int
}

func xi(start uint) models.PlayerIDList {
	out := make(models.PlayerIDList, 0, match.MaxPlayingXI)
	for i := 0; i < match.MaxPlayingXI; i++ {
		out = append(out, start+uint(i))
	}
	return out
}

func newFakeMatches() *fakeMatches {
	batting, bowling := uint(10), uint(20)
	return &fakeMatches{
		row: match.MatchRow{
			Match:     match.Match{ID: 1, Team1ID: 10, Team2ID: 20, Status: match.StatusScheduled},
			Team1Name: "Falcons",
			Team2Name: "Hawks",
		},
		setup: &match.InningsSetup{
			MatchID:        1,
			BattingTeamID:  &batting,
			BowlingTeamID:  &bowling,
			Team1PlayingXI: xi(100),
			Team2PlayingXI: xi(200),
		},
		complete: true,
	}
}

func (f *fakeMatches) SetupFor(_ context.Context, matchID uint) (*match.MatchRow, *match.InningsSetup, match.SetupStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if matchID != f.row.ID {
		return nil, nil, match.SetupStatus{}, common.NotFound("match", matchID)
	}
	row, setup := f.row, *f.setup
	return &row, &setup, match.SetupStatus{IsTossDone: true, IsPlayingXISet: f.complete, IsSetupComplete: f.complete}, nil
}

func (f *fakeMatches) StartMatch(_ context.Context, id uint) (*match.MatchRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startHits++
	f.row.IsLive = true
	f.row.Status = match.StatusLive
	row := f.row
	return &row, nil
}

// newFixture returns a service whose recorder is flushed by hand.
func newFixture() (*Service, *fakeRepo, *fakeMatches) {
	repo := newFakeRepo()
	matches := newFakeMatches()
	return NewService(repo, matches, NewRecorder(repo)), repo, matches
}

func openers() StartInningsInput {
	return StartInningsInput{
		MatchID:        1,
		StrikerID:      100,
		StrikerName:    "Opener A",
		NonStrikerID:   101,
		NonStrikerName: "Opener B",
		BowlerID:       200,
		BowlerName:     "Quick",
	}
}
