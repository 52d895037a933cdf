package model

import "time"

// KVEntry is one durable slot in the key-value persistence table. The asset
// collection lives under KeyAssets as a serialized JSON array.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     []byte    `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyAssets is the fixed slot holding the asset collection.
const KeyAssets = "assets"
