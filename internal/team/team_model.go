package team

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a club side.
type Team struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"not null"`
	ShortName string         `json:"short_name"`
	Logo      string         `json:"logo"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Team) TableName() string {
	return "teams"
}

// Player is a squad member of a team. Playing XI lists reference these IDs.
type Player struct {
	ID           uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	TeamID       uint           `json:"team_id" gorm:"index;not null"`
	Team         Team           `json:"-" gorm:"foreignKey:TeamID"`
	Name         string         `json:"name" gorm:"not null"`
	Role         string         `json:"role"` // batter, bowler, all_rounder, wicket_keeper
	JerseyNumber int            `json:"jersey_number"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Player) TableName() string {
	return "players"
}
