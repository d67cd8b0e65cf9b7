// Package storage persists save games and high scores in SQLite through GORM.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Garsondee/vice-streets/internal/game"
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store is a SQLite-backed save and score repository.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the database at path, creating tables as needed. Use
// "file:<name>?mode=memory&cache=shared" for a throwaway in-memory store.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		log.Debug().Err(err).Msg("journal_mode pragma not applied")
	}
	if err := db.AutoMigrate(&SaveSlot{}, &ScoreEntry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("path", path).Msg("storage opened")
	return &Store{db: db, log: log}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveGame writes st under name, replacing any slot with the same name.
func (s *Store) SaveGame(ctx context.Context, name string, st *game.State) (SaveSlot, error) {
	if st == nil {
		return SaveSlot{}, errors.New("save game: nil state")
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return SaveSlot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	slot := SaveSlot{
		ID:       uuid.NewString(),
		Name:     name,
		Level:    st.Level,
		Score:    st.Economy.Score,
		Tick:     st.Tick,
		Snapshot: datatypes.JSON(payload),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "score", "tick", "snapshot", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return SaveSlot{}, fmt.Errorf("save game %q: %w", name, err)
	}
	// On conflict the generated ID was not stored; read back the real row.
	stored, err := s.FindSave(ctx, name)
	if err != nil {
		return SaveSlot{}, err
	}
	s.log.Debug().Str("slot", stored.ID).Str("name", name).Int("tick", st.Tick).Msg("game saved")
	return stored, nil
}

// FindSave returns the slot metadata for name.
func (s *Store) FindSave(ctx context.Context, name string) (SaveSlot, error) {
	var slot SaveSlot
	err := s.db.WithContext(ctx).Omit("snapshot").Where("name = ?", name).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SaveSlot{}, fmt.Errorf("save %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return SaveSlot{}, fmt.Errorf("find save %q: %w", name, err)
	}
	return slot, nil
}

// LoadGame decodes the snapshot stored in slot id.
func (s *Store) LoadGame(ctx context.Context, id string) (*game.State, error) {
	var slot SaveSlot
	err := s.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("save %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load save %s: %w", id, err)
	}
	var st game.State
	if err := json.Unmarshal(slot.Snapshot, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return &st, nil
}

// ListSaves returns slot metadata, most recently written first.
func (s *Store) ListSaves(ctx context.Context) ([]SaveSlot, error) {
	var slots []SaveSlot
	err := s.db.WithContext(ctx).Omit("snapshot").Order("updated_at desc").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return slots, nil
}

// DeleteSave removes slot id.
func (s *Store) DeleteSave(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&SaveSlot{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete save %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save %s: %w", id, ErrNotFound)
	}
	return nil
}

// RecordScore appends a finished run to the high-score table.
func (s *Store) RecordScore(ctx context.Context, e ScoreEntry) (ScoreEntry, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return ScoreEntry{}, fmt.Errorf("record score: %w", err)
	}
	return e, nil
}

// TopScores returns the n best runs, earliest first among ties.
func (s *Store) TopScores(ctx context.Context, n int) ([]ScoreEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []ScoreEntry
	err := s.db.WithContext(ctx).Order("score desc").Order("id asc").Limit(n).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	return out, nil
}

// ScoreFromOutcome builds a table entry from a run summary.
func ScoreFromOutcome(name string, seed uint64, r game.RunOutcomeReason) ScoreEntry {
	return ScoreEntry{
		Name:  name,
		Score: r.Score,
		Level: r.Level,
		Kills: r.Kills,
		Seed:  int64(seed), // #nosec G115 -- stored bit pattern, read back with uint64()
	}
}
