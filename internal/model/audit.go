package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateAsset   = "CREATE_ASSET"
	ActionUpdateAsset   = "UPDATE_ASSET"
	ActionDeleteAsset   = "DELETE_ASSET"
	ActionExportAssets  = "EXPORT_ASSETS"
	ActionSubmitRequest = "SUBMIT_REQUEST"
)

// AuditLog tracks What and When for inventory changes and request submissions.
// The portal has no user accounts, so entries carry the acting role instead.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role       string    `gorm:"type:varchar(20);not null;index" json:"role"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
