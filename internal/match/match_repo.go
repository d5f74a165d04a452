package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/DhavalSuthar-24/cricketclub/config"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository is the storage boundary of the match package. Fetch methods
// return (nil, nil) when the row does not exist.
type MatchRepository interface {
	CreateMatch(ctx context.Context, m *Match) error
	FetchMatch(ctx context.Context, id uint) (*MatchRow, error)
	UpdateMatchFields(ctx context.Context, id uint, fields map[string]interface{}) error

	FetchInningsSetup(ctx context.Context, matchID uint) (*InningsSetup, error)
	UpsertInningsSetup(ctx context.Context, s *InningsSetup) error

	FetchLiveMatchRows(ctx context.Context, filter string) ([]LiveMatchRow, error)
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// CreateMatch inserts a new match
func (r *GormMatchRepository) CreateMatch(ctx context.Context, m *Match) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FetchMatch loads a match with both team names
func (r *GormMatchRepository) FetchMatch(ctx context.Context, id uint) (*MatchRow, error) {
	var m Match
	result := r.db.WithContext(ctx).
		Preload("Team1", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Team2", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&m, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &MatchRow{Match: m, Team1Name: m.Team1.Name, Team2Name: m.Team2.Name}, nil
}

// UpdateMatchFields updates the given columns of one match. A map is used so
// false and empty values are written.
func (r *GormMatchRepository) UpdateMatchFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Match{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FetchInningsSetup loads the setup row of a match
func (r *GormMatchRepository) FetchInningsSetup(ctx context.Context, matchID uint) (*InningsSetup, error) {
	var s InningsSetup
	result := r.db.WithContext(ctx).Where("match_id = ?", matchID).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &s, nil
}

// UpsertInningsSetup inserts the setup row or overwrites every field of the
// existing one in a single INSERT ... ON CONFLICT statement.
func (r *GormMatchRepository) UpsertInningsSetup(ctx context.Context, s *InningsSetup) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"toss_winner_team_id",
			"toss_decision",
			"batting_team_id",
			"bowling_team_id",
			"team1_playing_xi",
			"team2_playing_xi",
			"status",
			"updated_at",
		}),
	}).Create(s).Error
}

const liveMatchRowsQuery = `
SELECT
	m.id AS match_id,
	m.team1_id,
	m.team2_id,
	t1.name AS team1_name,
	t2.name AS team2_name,
	mi.score,
	mi.overs,
	mi.batting_team_id,
	m.status,
	m.result_text,
	m.is_live,
	m.is_completed
FROM matches m
	JOIN teams t1 ON m.team1_id = t1.id
	JOIN teams t2 ON m.team2_id = t2.id
	LEFT JOIN match_innings mi ON mi.match_id = m.id AND mi.is_current = true AND mi.deleted_at IS NULL
WHERE m.deleted_at IS NULL AND (%s)
ORDER BY m.id DESC`

// liveFeedPredicates are the WHERE clauses selectable with LIVE_FEED_FILTER.
var liveFeedPredicates = map[string]string{
	config.LiveFeedFilterLive:   "m.is_live = true OR m.is_completed = true",
	config.LiveFeedFilterLegacy: "m.is_live = false OR m.is_completed = true",
}

// FetchLiveMatchRows runs the live feed join with the predicate named by filter.
// Unknown filters fall back to the live predicate.
func (r *GormMatchRepository) FetchLiveMatchRows(ctx context.Context, filter string) ([]LiveMatchRow, error) {
	predicate, ok := liveFeedPredicates[filter]
	if !ok {
		predicate = liveFeedPredicates[config.LiveFeedFilterLive]
	}

	var rows []LiveMatchRow
	if err := r.db.WithContext(ctx).Raw(fmt.Sprintf(liveMatchRowsQuery, predicate)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
