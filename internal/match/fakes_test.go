package match

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[uint]*MatchRow
	setups  map[uint]*InningsSetup
	live    []LiveMatchRow
	nextID  uint
	err     error
	filter  string
	upserts int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches: map[uint]*MatchRow{},
		setups:  map[uint]*InningsSetup{},
		nextID:  1,
	}
}

func (f *fakeMatchRepo) add(m Match, team1, team2 string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[m.ID] = &MatchRow{Match: m, Team1Name: team1, Team2Name: team2}
	if m.ID >= f.nextID {
		f.nextID = m.ID + 1
	}
}

func (f *fakeMatchRepo) CreateMatch(_ context.Context, m *Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	m.ID = f.nextID
	f.nextID++
	f.matches[m.ID] = &MatchRow{Match: *m}
	return nil
}

func (f *fakeMatchRepo) FetchMatch(_ context.Context, id uint) (*MatchRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.matches[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatchRepo) UpdateMatchFields(_ context.Context, id uint, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	m, ok := f.matches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "is_live":
			m.IsLive = v.(bool)
		case "is_completed":
			m.IsCompleted = v.(bool)
		case "status":
			m.Status = v.(string)
		case "result_text":
			m.ResultText = v.(string)
		}
	}
	return nil
}

func (f *fakeMatchRepo) FetchInningsSetup(_ context.Context, matchID uint) (*InningsSetup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.setups[matchID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeMatchRepo) UpsertInningsSetup(_ context.Context, s *InningsSetup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserts++
	cp := *s
	if existing, ok := f.setups[s.MatchID]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = uint(len(f.setups) + 1)
	}
	f.setups[s.MatchID] = &cp
	return nil
}

func (f *fakeMatchRepo) FetchLiveMatchRows(_ context.Context, filter string) ([]LiveMatchRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.filter = filter
	return append([]LiveMatchRow(nil), f.live...), nil
}

// fakeTeams knows squads by team ID.
type fakeTeams struct {
	squads map[uint][]uint
	err    error
}

func (f *fakeTeams) CountTeamPlayers(_ context.Context, teamID uint, playerIDs []uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, id := range playerIDs {
		for _, p := range f.squads[teamID] {
			if p == id {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeTeams) CountTeams(_ context.Context, teamIDs []uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, id := range teamIDs {
		if _, ok := f.squads[id]; ok {
			n++
		}
	}
	return n, nil
}

func squad(start uint, n int) []uint {
	out := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start+uint(i))
	}
	return out
}

// newFixture returns a service over match 1 (team 10 vs team 20), each team
// with a fifteen-player squad: 100-114 and 200-214.
func newFixture() (*Service, *fakeMatchRepo) {
	repo := newFakeMatchRepo()
	repo.add(Match{ID: 1, Team1ID: 10, Team2ID: 20, Status: StatusScheduled}, "Falcons", "Hawks")
	teams := &fakeTeams{squads: map[uint][]uint{10: squad(100, 15), 20: squad(200, 15)}}
	return NewService(repo, teams, false, "live"), repo
}
