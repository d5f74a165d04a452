package match

import (
	"time"

	"github.com/DhavalSuthar-24/cricketclub/internal/models"
	"github.com/DhavalSuthar-24/cricketclub/internal/team"
	"gorm.io/gorm"
)

// Toss decisions.
const (
	TossBat  = "bat"
	TossBowl = "bowl"
)

// MaxPlayingXI is the size of a full playing XI.
const MaxPlayingXI = 11

// Match status values written by the lifecycle operations. Status is free
// text, so rows written by other tools may carry anything.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Match is a fixture between two teams.
type Match struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Team1ID     uint           `json:"team1_id" gorm:"not null;index"`
	Team1       team.Team      `json:"-" gorm:"foreignKey:Team1ID"`
	Team2ID     uint           `json:"team2_id" gorm:"not null;index"`
	Team2       team.Team      `json:"-" gorm:"foreignKey:Team2ID"`
	MatchDate   time.Time      `json:"match_date"`
	Venue       string         `json:"venue"`
	Status      string         `json:"status"`
	ResultText  string         `json:"result_text"`
	IsLive      bool           `json:"is_live" gorm:"not null;default:false;index"`
	IsCompleted bool           `json:"is_completed" gorm:"not null;default:false;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Match) TableName() string {
	return "matches"
}

// HasTeam reports whether teamID is one of the two sides.
func (m *Match) HasTeam(teamID uint) bool {
	return teamID == m.Team1ID || teamID == m.Team2ID
}

// Opponent returns the other side, or 0 if teamID is not playing.
func (m *Match) Opponent(teamID uint) uint {
	switch teamID {
	case m.Team1ID:
		return m.Team2ID
	case m.Team2ID:
		return m.Team1ID
	}
	return 0
}

// MatchRow is a match with both team names resolved.
type MatchRow struct {
	Match
	Team1Name string `json:"team1_name"`
	Team2Name string `json:"team2_name"`
}

// InningsSetup is the pre-match configuration of a match: toss, batting
// order and both playing XIs. There is at most one row per match.
//
// Every toss field is nullable so the setup can be saved incrementally.
type InningsSetup struct {
	ID               uint                `json:"id" gorm:"primaryKey;autoIncrement"`
	MatchID          uint                `json:"match_id" gorm:"not null;uniqueIndex"`
	TossWinnerTeamID *uint               `json:"toss_winner_team_id"`
	TossDecision     *string             `json:"toss_decision" gorm:"type:varchar(8)"`
	BattingTeamID    *uint               `json:"batting_team_id"`
	BowlingTeamID    *uint               `json:"bowling_team_id"`
	Team1PlayingXI   models.PlayerIDList `json:"team1_playing_xi" gorm:"type:jsonb;not null;default:'[]'"`
	Team2PlayingXI   models.PlayerIDList `json:"team2_playing_xi" gorm:"type:jsonb;not null;default:'[]'"`
	Status           *string             `json:"status"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (InningsSetup) TableName() string {
	return "match_inning_state"
}

// XIFor returns the playing XI of teamID in this setup, or nil if teamID is
// not one of the match's sides.
func (s *InningsSetup) XIFor(m *Match, teamID uint) models.PlayerIDList {
	switch teamID {
	case m.Team1ID:
		return s.Team1PlayingXI
	case m.Team2ID:
		return s.Team2PlayingXI
	}
	return nil
}

// SetupStatus is the derived setup state the client uses to choose between
// the setup flow and the scoring flow.
type SetupStatus struct {
	IsTossDone       bool                `json:"isTossDone"`
	IsPlayingXISet   bool                `json:"isPlayingXISet"`
	IsSetupComplete  bool                `json:"isSetupComplete"`
	TossWinnerTeamID *uint               `json:"toss_winner_team_id"`
	TossDecision     *string             `json:"toss_decision"`
	BattingTeamID    *uint               `json:"batting_team_id"`
	BowlingTeamID    *uint               `json:"bowling_team_id"`
	Team1PlayingXI   models.PlayerIDList `json:"team1_playing_xi"`
	Team2PlayingXI   models.PlayerIDList `json:"team2_playing_xi"`
	Status           *string             `json:"status"`
}

// MatchWithSetupStatus is the status response: every match column plus setupStatus.
type MatchWithSetupStatus struct {
	MatchRow
	SetupStatus SetupStatus `json:"setupStatus"`
}

// LiveMatchRow is a match joined to both teams and, when one exists, its
// current innings.
type LiveMatchRow struct {
	MatchID       uint    `gorm:"column:match_id"`
	Team1ID       uint    `gorm:"column:team1_id"`
	Team2ID       uint    `gorm:"column:team2_id"`
	Team1Name     string  `gorm:"column:team1_name"`
	Team2Name     string  `gorm:"column:team2_name"`
	Score         *string `gorm:"column:score"`
	Overs         *string `gorm:"column:overs"`
	BattingTeamID *uint   `gorm:"column:batting_team_id"`
	Status        *string `gorm:"column:status"`
	ResultText    *string `gorm:"column:result_text"`
	IsLive        bool    `gorm:"column:is_live"`
	IsCompleted   bool    `gorm:"column:is_completed"`
}

// TeamName is the team shape in the live feed.
type TeamName struct {
	Name string `json:"name"`
}

// LiveMatchSummary is one card of the live feed.
type LiveMatchSummary struct {
	ID      uint     `json:"id"`
	MatchID uint     `json:"matchId"`
	Team1   TeamName `json:"team1"`
	Team2   TeamName `json:"team2"`
	Score   string   `json:"score"`
	Status  string   `json:"status"`
}
