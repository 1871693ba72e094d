// internal/store/postgres.go
package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/tunegrid/licensing-backend/internal/models"
)

// PostgresConfig configures the Postgres backend.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int // seconds
	LogLevel     string
}

// entityRow is the storage shape shared by all four entity tables: the id
// plus the encoded record. The record keeps the entity's field order stable
// independently of the SQL schema.
type entityRow struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement:false"`
	Data []byte `gorm:"type:jsonb;not null"`
}

// sequenceRow holds the single id counter. Exactly one row with ID 1 exists.
type sequenceRow struct {
	ID    uint8  `gorm:"primaryKey"`
	Value uint64 `gorm:"not null"`
}

func (sequenceRow) TableName() string { return "id_sequence" }

// PostgresStore keeps each entity table as an id-keyed relation; the
// primary key index gives Scan its ascending id order.
type PostgresStore struct {
	db *gorm.DB
}

// OpenPostgres connects, migrates the entity tables, and seeds the id
// counter if it does not exist yet.
func OpenPostgres(cfg PostgresConfig) (*PostgresStore, error) {
	gormConfig := &gorm.Config{}
	switch cfg.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	default:
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	for _, name := range []string{tableSongs, tableOwners, tableLicensees, tableLicenses} {
		if err := db.Table(name).AutoMigrate(&entityRow{}); err != nil {
			return nil, fmt.Errorf("migrate table %s: %w", name, err)
		}
	}
	if err := db.AutoMigrate(&sequenceRow{}); err != nil {
		return nil, fmt.Errorf("migrate id sequence: %w", err)
	}
	seed := sequenceRow{ID: 1, Value: 0}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, fmt.Errorf("seed id sequence: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Songs() Table[models.Song] {
	return &gormTable[models.Song]{db: s.db, name: tableSongs}
}

func (s *PostgresStore) Owners() Table[models.Owner] {
	return &gormTable[models.Owner]{db: s.db, name: tableOwners}
}

func (s *PostgresStore) Licensees() Table[models.Licensee] {
	return &gormTable[models.Licensee]{db: s.db, name: tableLicensees}
}

func (s *PostgresStore) Licenses() Table[models.License] {
	return &gormTable[models.License]{db: s.db, name: tableLicenses}
}

// NextID advances the counter atomically and returns its pre-increment
// value.
func (s *PostgresStore) NextID() (uint64, error) {
	var id uint64
	err := s.db.Raw("UPDATE id_sequence SET value = value + 1 WHERE id = 1 RETURNING value - 1").Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("advance id sequence: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormTable[T any] struct {
	db   *gorm.DB
	name string
}

func (t *gormTable[T]) Get(id uint64) (T, bool, error) {
	var record T
	var row entityRow
	err := t.db.Table(t.name).First(&row, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return record, false, nil
	}
	if err != nil {
		return record, false, fmt.Errorf("get %s id %d: %w", t.name, id, err)
	}
	if err := decode(row.Data, &record); err != nil {
		return record, false, fmt.Errorf("get %s id %d: %w", t.name, id, err)
	}
	return record, true, nil
}

func (t *gormTable[T]) Insert(id uint64, record T) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	row := entityRow{ID: id, Data: data}
	err = t.db.Table(t.name).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("insert %s id %d: %w", t.name, id, err)
	}
	return nil
}

func (t *gormTable[T]) Remove(id uint64) (T, bool, error) {
	record, found, err := t.Get(id)
	if err != nil || !found {
		return record, found, err
	}
	if err := t.db.Table(t.name).Delete(&entityRow{}, "id = ?", id).Error; err != nil {
		return record, false, fmt.Errorf("remove %s id %d: %w", t.name, id, err)
	}
	return record, true, nil
}

func (t *gormTable[T]) Scan() ([]Entry[T], error) {
	var rows []entityRow
	if err := t.db.Table(t.name).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.name, err)
	}
	var entries []Entry[T]
	for _, row := range rows {
		var record T
		if err := decode(row.Data, &record); err != nil {
			return nil, fmt.Errorf("scan %s id %d: %w", t.name, row.ID, err)
		}
		entries = append(entries, Entry[T]{ID: row.ID, Record: record})
	}
	return entries, nil
}
