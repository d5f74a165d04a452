package match

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/DhavalSuthar-24/cricketclub/internal/models"
	"github.com/DhavalSuthar-24/cricketclub/internal/team"
	"gorm.io/gorm"
)

// Service holds the match operations: lifecycle, innings setup, status
// projection and the live feed.
type Service struct {
	repo       MatchRepository
	teams      team.TeamRepository
	strictXI   bool
	liveFilter string
}

// NewService creates a match service.
func NewService(repo MatchRepository, teams team.TeamRepository, strictXI bool, liveFilter string) *Service {
	return &Service{repo: repo, teams: teams, strictXI: strictXI, liveFilter: liveFilter}
}

// CreateMatchInput is the request payload for scheduling a match
type CreateMatchInput struct {
	Team1ID   uint      `json:"team1_id" binding:"required"`
	Team2ID   uint      `json:"team2_id" binding:"required"`
	MatchDate time.Time `json:"match_date" binding:"required"`
	Venue     string    `json:"venue" binding:"max=200"`
}

// Toss is the toss result in a setup payload.
type Toss struct {
	TeamID   uint   `json:"teamId"`
	Decision string `json:"decision"`
}

// SetupInput is the request payload for saving an innings setup. Each part
// may be omitted so the setup can be filled in over several calls; a call
// always overwrites the whole row.
type SetupInput struct {
	MatchID       uint    `json:"matchId" binding:"required"`
	Toss          *Toss   `json:"toss"`
	BattingTeamID *uint   `json:"battingTeamId"`
	BowlingTeamID *uint   `json:"bowlingTeamId"`
	Team1XI       []uint  `json:"team1XI"`
	Team2XI       []uint  `json:"team2XI"`
	Status        *string `json:"status"`
}

// CreateMatch schedules a match between two existing teams.
func (s *Service) CreateMatch(ctx context.Context, in CreateMatchInput) (*Match, error) {
	if in.Team1ID == in.Team2ID {
		return nil, common.Invalid("team2_id", "a team cannot play itself")
	}
	count, err := s.teams.CountTeams(ctx, []uint{in.Team1ID, in.Team2ID})
	if err != nil {
		return nil, common.Storage("count teams", err)
	}
	if count != 2 {
		return nil, common.Invalid("team_id", "both teams must exist")
	}

	m := &Match{
		Team1ID:   in.Team1ID,
		Team2ID:   in.Team2ID,
		MatchDate: in.MatchDate,
		Venue:     strings.TrimSpace(in.Venue),
		Status:    StatusScheduled,
	}
	if err := s.repo.CreateMatch(ctx, m); err != nil {
		return nil, common.Storage("create match", err)
	}
	return m, nil
}

// GetMatch returns a match with team names, or ErrNotFound.
func (s *Service) GetMatch(ctx context.Context, id uint) (*MatchRow, error) {
	m, err := s.repo.FetchMatch(ctx, id)
	if err != nil {
		return nil, common.Storage("fetch match", err)
	}
	if m == nil {
		return nil, common.NotFound("match", id)
	}
	return m, nil
}

// GetStatus returns the match merged with its derived setup status.
func (s *Service) GetStatus(ctx context.Context, id uint) (*MatchWithSetupStatus, error) {
	m, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	setup, err := s.repo.FetchInningsSetup(ctx, id)
	if err != nil {
		return nil, common.Storage("fetch innings setup", err)
	}
	status := ProjectStatus(*m, setup, s.strictXI)
	return &status, nil
}

// SetupFor returns the match, its setup row and the derived status. The
// setup is nil when none was saved.
func (s *Service) SetupFor(ctx context.Context, matchID uint) (*MatchRow, *InningsSetup, SetupStatus, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, nil, SetupStatus{}, err
	}
	setup, err := s.repo.FetchInningsSetup(ctx, matchID)
	if err != nil {
		return nil, nil, SetupStatus{}, common.Storage("fetch innings setup", err)
	}
	return m, setup, ProjectStatus(*m, setup, s.strictXI).SetupStatus, nil
}

// UpsertSetup validates a setup payload against the match and its squads and
// writes it. Partial XIs are accepted.
func (s *Service) UpsertSetup(ctx context.Context, in SetupInput) (*InningsSetup, error) {
	m, err := s.GetMatch(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}

	row := &InningsSetup{
		MatchID:        in.MatchID,
		BattingTeamID:  in.BattingTeamID,
		BowlingTeamID:  in.BowlingTeamID,
		Team1PlayingXI: models.PlayerIDList(in.Team1XI),
		Team2PlayingXI: models.PlayerIDList(in.Team2XI),
		Status:         in.Status,
	}
	if row.Team1PlayingXI == nil {
		row.Team1PlayingXI = models.PlayerIDList{}
	}
	if row.Team2PlayingXI == nil {
		row.Team2PlayingXI = models.PlayerIDList{}
	}

	if in.Toss != nil {
		if !m.HasTeam(in.Toss.TeamID) {
			return nil, common.Invalid("toss.teamId", "team %d is not playing this match", in.Toss.TeamID)
		}
		decision := strings.ToLower(strings.TrimSpace(in.Toss.Decision))
		if decision != TossBat && decision != TossBowl {
			return nil, common.Invalid("toss.decision", "must be %q or %q", TossBat, TossBowl)
		}
		winner := in.Toss.TeamID
		row.TossWinnerTeamID = &winner
		row.TossDecision = &decision
	}

	if err := validateBattingOrder(&m.Match, row); err != nil {
		return nil, err
	}
	if err := s.validateXI(ctx, "team1XI", m.Team1ID, row.Team1PlayingXI); err != nil {
		return nil, err
	}
	if err := s.validateXI(ctx, "team2XI", m.Team2ID, row.Team2PlayingXI); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertInningsSetup(ctx, row); err != nil {
		return nil, common.Storage("upsert innings setup", err)
	}
	return row, nil
}

func validateBattingOrder(m *Match, row *InningsSetup) error {
	if row.BattingTeamID != nil && !m.HasTeam(*row.BattingTeamID) {
		return common.Invalid("battingTeamId", "team %d is not playing this match", *row.BattingTeamID)
	}
	if row.BowlingTeamID != nil && !m.HasTeam(*row.BowlingTeamID) {
		return common.Invalid("bowlingTeamId", "team %d is not playing this match", *row.BowlingTeamID)
	}
	if row.BattingTeamID != nil && row.BowlingTeamID != nil && *row.BattingTeamID == *row.BowlingTeamID {
		return common.Invalid("bowlingTeamId", "batting and bowling team must differ")
	}

	if row.TossWinnerTeamID == nil || row.TossDecision == nil {
		return nil
	}
	winner := *row.TossWinnerTeamID
	switch *row.TossDecision {
	case TossBat:
		if row.BattingTeamID != nil && *row.BattingTeamID != winner {
			return common.Invalid("battingTeamId", "toss winner chose to bat")
		}
		if row.BowlingTeamID != nil && *row.BowlingTeamID == winner {
			return common.Invalid("bowlingTeamId", "toss winner chose to bat")
		}
	case TossBowl:
		if row.BowlingTeamID != nil && *row.BowlingTeamID != winner {
			return common.Invalid("bowlingTeamId", "toss winner chose to bowl")
		}
		if row.BattingTeamID != nil && *row.BattingTeamID == winner {
			return common.Invalid("battingTeamId", "toss winner chose to bowl")
		}
	}
	return nil
}

func (s *Service) validateXI(ctx context.Context, field string, teamID uint, xi models.PlayerIDList) error {
	if len(xi) > MaxPlayingXI {
		return common.Invalid(field, "at most %d players, got %d", MaxPlayingXI, len(xi))
	}
	if xi.HasDuplicates() {
		return common.Invalid(field, "a player is listed twice")
	}
	for _, id := range xi {
		if id == 0 {
			return common.Invalid(field, "player id must be positive")
		}
	}
	ok, err := team.PlayersBelongToTeam(ctx, s.teams, teamID, xi)
	if err != nil {
		return common.Storage("check squad", err)
	}
	if !ok {
		return common.Invalid(field, "every player must belong to team %d", teamID)
	}
	return nil
}

// GetLiveMatches returns the live feed, newest match first.
func (s *Service) GetLiveMatches(ctx context.Context) ([]LiveMatchSummary, error) {
	rows, err := s.repo.FetchLiveMatchRows(ctx, s.liveFilter)
	if err != nil {
		return nil, common.Storage("fetch live matches", err)
	}
	out := make([]LiveMatchSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, BuildLiveSummary(row))
	}
	return out, nil
}

// StartMatch moves a match to live. Starting a live match is a no-op.
func (s *Service) StartMatch(ctx context.Context, id uint) (*MatchRow, error) {
	m, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted {
		return nil, common.Conflict("match %d is already completed", id)
	}
	if m.IsLive {
		return m, nil
	}
	if err := s.update(ctx, id, map[string]interface{}{"is_live": true, "status": StatusLive}); err != nil {
		return nil, err
	}
	m.IsLive = true
	m.Status = StatusLive
	return m, nil
}

// CompleteMatch closes a match. resultText replaces the stored result when non-empty.
func (s *Service) CompleteMatch(ctx context.Context, id uint, resultText string) (*MatchRow, error) {
	m, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsCompleted {
		return nil, common.Conflict("match %d is already completed", id)
	}
	fields := map[string]interface{}{"is_live": false, "is_completed": true, "status": StatusCompleted}
	if text := strings.TrimSpace(resultText); text != "" {
		fields["result_text"] = text
		m.ResultText = text
	}
	if err := s.update(ctx, id, fields); err != nil {
		return nil, err
	}
	m.IsLive = false
	m.IsCompleted = true
	m.Status = StatusCompleted
	return m, nil
}

// UpdateResultText sets the running result line shown as "Live - <text>".
func (s *Service) UpdateResultText(ctx context.Context, id uint, text string) (*MatchRow, error) {
	m, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := s.update(ctx, id, map[string]interface{}{"result_text": text}); err != nil {
		return nil, err
	}
	m.ResultText = text
	return m, nil
}

func (s *Service) update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := s.repo.UpdateMatchFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NotFound("match", id)
		}
		return common.Storage("update match", err)
	}
	return nil
}
