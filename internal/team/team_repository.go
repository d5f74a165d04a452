package team

import (
	"context"

	"gorm.io/gorm"
)

// TeamRepository is the roster lookup the scoring core needs. Team and player
// CRUD lives with the admin tooling.
type TeamRepository interface {
	// CountTeamPlayers returns how many of playerIDs are squad members of teamID.
	CountTeamPlayers(ctx context.Context, teamID uint, playerIDs []uint) (int64, error)
	// CountTeams returns how many of teamIDs exist.
	CountTeams(ctx context.Context, teamIDs []uint) (int64, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CountTeamPlayers(ctx context.Context, teamID uint, playerIDs []uint) (int64, error) {
	if len(playerIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&Player{}).
		Where("team_id = ? AND id IN ?", teamID, playerIDs).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *teamRepository) CountTeams(ctx context.Context, teamIDs []uint) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&Team{}).Where("id IN ?", teamIDs).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PlayersBelongToTeam reports whether every ID in playerIDs is a distinct squad member of teamID.
func PlayersBelongToTeam(ctx context.Context, repo TeamRepository, teamID uint, playerIDs []uint) (bool, error) {
	if len(playerIDs) == 0 {
		return true, nil
	}
	count, err := repo.CountTeamPlayers(ctx, teamID, playerIDs)
	if err != nil {
		return false, err
	}
	return count == int64(len(playerIDs)), nil
}
