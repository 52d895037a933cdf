package model

// Asset status constants. The strings are part of the persisted layout and
// must round-trip exactly, including the space in "In Use".
const (
	StatusAvailable = "Available"
	StatusInUse     = "In Use"
	StatusRetired   = "Retired"
)

// AssetStatuses lists every valid status in display order.
var AssetStatuses = []string{StatusAvailable, StatusInUse, StatusRetired}

// Asset is a trackable inventory item. The whole collection is persisted as a
// single JSON array under one storage key, so this struct carries no GORM tags.
type Asset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ValidStatus reports whether s is one of the known asset statuses.
func ValidStatus(s string) bool {
	for _, known := range AssetStatuses {
		if s == known {
			return true
		}
	}
	return false
}
