package models

import "time"

// StoreInfo records the configuration a store was initialized with.
type StoreInfo struct {
	Key        string `gorm:"primaryKey;size:64"`
	Layout     string `gorm:"size:16;default:folded"`
	Comparison string `gorm:"size:16;default:mine_opponent"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
