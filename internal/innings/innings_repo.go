package innings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the write side used by the Recorder.
type Store interface {
	AppendBallRecord(ctx context.Context, rec *BallRecord) error
	PersistAggregateScore(ctx context.Context, inningsID uint, a Aggregate) error
}

// InningsRepository defines the persistence operations of innings and their ball log.
type InningsRepository interface {
	Store
	CreateInnings(ctx context.Context, inn *Innings) error
	FetchInnings(ctx context.Context, id uint) (*Innings, error)
	ListMatchInnings(ctx context.Context, matchID uint) ([]Innings, error)
	FetchBallRecordsAfter(ctx context.Context, inningsID uint, seq int64) ([]BallRecord, error)
}

// GormInningsRepository implements InningsRepository using GORM
type GormInningsRepository struct {
	db *gorm.DB
}

// NewGormInningsRepository creates a new GormInningsRepository
func NewGormInningsRepository(db *gorm.DB) *GormInningsRepository {
	return &GormInningsRepository{db: db}
}

// CreateInnings inserts inn as the current innings of its match and clears
// the flag on the match's other innings.
func (r *GormInningsRepository) CreateInnings(ctx context.Context, inn *Innings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Innings{}).
			Where("match_id = ? AND is_current = ?", inn.MatchID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		inn.IsCurrent = true
		return tx.Create(inn).Error
	})
}

// FetchInnings returns (nil, nil) if the innings does not exist.
func (r *GormInningsRepository) FetchInnings(ctx context.Context, id uint) (*Innings, error) {
	var inn Innings
	if err := r.db.WithContext(ctx).First(&inn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inn, nil
}

// ListMatchInnings returns the innings of a match in batting order.
func (r *GormInningsRepository) ListMatchInnings(ctx context.Context, matchID uint) ([]Innings, error) {
	var list []Innings
	if err := r.db.WithContext(ctx).Where("match_id = ?", matchID).Order("innings_number ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AppendBallRecord inserts one ball. A retried insert of a record that was
// already written is a no-op because client_ref is unique.
func (r *GormInningsRepository) AppendBallRecord(ctx context.Context, rec *BallRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "client_ref"}}, DoNothing: true}).
		Create(rec).Error
}

// PersistAggregateScore writes the score columns in one UPDATE. An aggregate
// older than the stored one is ignored.
func (r *GormInningsRepository) PersistAggregateScore(ctx context.Context, inningsID uint, a Aggregate) error {
	fields := map[string]interface{}{
		"runs":            a.Runs,
		"wickets":         a.Wickets,
		"overs_completed": a.OversCompleted,
		"legal_balls":     a.LegalBalls,
		"score":           a.Score,
		"overs":           a.Overs,
		"snapshot":        a.Snapshot,
		"last_seq":        a.LastSeq,
	}
	if a.Status != "" {
		fields["status"] = a.Status
	}
	return r.db.WithContext(ctx).Model(&Innings{}).
		Where("id = ? AND last_seq <= ?", inningsID, a.LastSeq).
		Updates(fields).Error
}

// FetchBallRecordsAfter returns the balls of an innings with a sequence
// greater than seq, oldest first.
func (r *GormInningsRepository) FetchBallRecordsAfter(ctx context.Context, inningsID uint, seq int64) ([]BallRecord, error) {
	var recs []BallRecord
	if err := r.db.WithContext(ctx).
		Where("innings_id = ? AND seq > ?", inningsID, seq).
		Order("seq ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
