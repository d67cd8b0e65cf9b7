package storage

import (
	"time"

	"gorm.io/datatypes"
)

// SaveSlot is a named save game holding a full simulation snapshot.
type SaveSlot struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Name      string         `json:"name" gorm:"uniqueIndex;size:64;not null"`
	Level     int            `json:"level"`
	Score     int            `json:"score"`
	Tick      int            `json:"tick"`
	Snapshot  datatypes.JSON `json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"index"`
}

// ScoreEntry is one finished run on the high-score table.
type ScoreEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RunID     string    `json:"runId" gorm:"index;size:36"`
	Name      string    `json:"name" gorm:"size:64"`
	Score     int       `json:"score" gorm:"index"`
	Level     int       `json:"level"`
	Kills     int       `json:"kills"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
}
