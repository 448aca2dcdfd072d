// Package store persists completed match records as one ordered list per
// store key. Every mutation reads the whole list, changes it, and writes the
// whole list back inside a single transaction.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/hubscout/internal/models"
	"github.com/zulandar/hubscout/internal/scout"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches a key.
var ErrNotFound = errors.New("store: record not found")

// Store is the record list for one store key.
type Store struct {
	db  *gorm.DB
	key string
	now func() time.Time
}

// New returns the Store for key on db.
func New(db *gorm.DB, key string) *Store {
	return &Store{db: db, key: key, now: time.Now}
}

// Key returns the store key.
func (s *Store) Key() string {
	return s.key
}

// Load returns every record in insertion order.
func (s *Store) Load(ctx context.Context) ([]*scout.Record, error) {
	return s.load(s.db.WithContext(ctx))
}

// Get returns the first record whose key matches.
func (s *Store) Get(ctx context.Context, recordKey string) (*scout.Record, error) {
	var row models.StoredRecord
	err := s.db.WithContext(ctx).
		Where("store_key = ? AND record_key = ?", s.key, recordKey).
		Order("position").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, recordKey)
		}
		return nil, fmt.Errorf("store: get %s: %w", recordKey, err)
	}
	return decode(row)
}

// Count returns the number of saved records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.StoredRecord{}).Where("store_key = ?", s.key).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Append saves a snapshot of r at the end of the list.
func (s *Store) Append(ctx context.Context, r *scout.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("store: append: %w", err)
	}
	snap := r.Clone()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := s.load(tx)
		if err != nil {
			return err
		}
		return s.replace(tx, append(records, snap))
	})
}

// Delete removes every record whose key matches and returns how many were
// removed. It returns ErrNotFound if none matched.
func (s *Store) Delete(ctx context.Context, recordKey string) (int, error) {
	removed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := s.load(tx)
		if err != nil {
			return err
		}
		kept := records[:0]
		for _, r := range records {
			if r.Key() == recordKey {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		if removed == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, recordKey)
		}
		return s.replace(tx, kept)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Clear removes every record in the store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("store_key = ?", s.key).Delete(&models.StoredRecord{}).Error; err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}

// Replace overwrites the whole list with records.
func (s *Store) Replace(ctx context.Context, records []*scout.Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("store: replace: records[%d]: %w", i, err)
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.replace(tx, records)
	})
}

// Merge appends every record whose key is not already stored, in one
// transaction. Keys repeated within records keep their first occurrence.
func (s *Store) Merge(ctx context.Context, records []*scout.Record) (added, skipped int, err error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return 0, 0, fmt.Errorf("store: merge: records[%d]: %w", i, err)
		}
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.load(tx)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(existing)+len(records))
		for _, r := range existing {
			seen[r.Key()] = true
		}
		merged := existing
		for _, r := range records {
			if seen[r.Key()] {
				skipped++
				continue
			}
			seen[r.Key()] = true
			merged = append(merged, r.Clone())
			added++
		}
		if added == 0 {
			return nil
		}
		return s.replace(tx, merged)
	})
	if err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

func (s *Store) load(tx *gorm.DB) ([]*scout.Record, error) {
	var rows []models.StoredRecord
	if err := tx.Where("store_key = ?", s.key).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: load %s: %w", s.key, err)
	}
	out := make([]*scout.Record, 0, len(rows))
	for _, row := range rows {
		r, err := decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) replace(tx *gorm.DB, records []*scout.Record) error {
	if err := tx.Where("store_key = ?", s.key).Delete(&models.StoredRecord{}).Error; err != nil {
		return fmt.Errorf("store: replace %s: %w", s.key, err)
	}
	if len(records) == 0 {
		return nil
	}
	now := s.now()
	rows := make([]models.StoredRecord, 0, len(records))
	for i, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", r.Key(), err)
		}
		rows = append(rows, models.StoredRecord{
			ID:        uuid.NewString(),
			StoreKey:  s.key,
			Position:  i,
			RecordKey: r.Key(),
			Event:     r.Event,
			Match:     r.Match,
			Team:      r.Team,
			Alliance:  string(r.Alliance),
			Payload:   string(payload),
			SavedAt:   now,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("store: replace %s: %w", s.key, err)
	}
	return nil
}

func decode(row models.StoredRecord) (*scout.Record, error) {
	var r scout.Record
	if err := json.Unmarshal([]byte(row.Payload), &r); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", row.RecordKey, err)
	}
	return &r, nil
}
