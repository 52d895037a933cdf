package model

import "time"

// Priority levels for an asset request.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// Option lists presented by the portal form. Kept here so the API can serve
// them to clients and the validator can reference the same source of truth.
var (
	Departments = []string{"IT", "HR", "Finance", "Marketing", "Operations", "Sales", "Others"}
	AssetTypes  = []string{"Laptop", "Desktop", "Monitor", "Mobile Phone", "Tablet", "Headset", "Office Furniture", "Others"}
	Priorities  = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

// MaxAttachmentBytes is the per-file upload ceiling (10 MiB).
const MaxAttachmentBytes = 10 * 1024 * 1024

// AcceptedAttachmentTypes whitelists the declared media types the portal form
// accepts: pdf, doc, docx, jpeg, png.
var AcceptedAttachmentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/jpeg",
	"image/png",
}

// Attachment describes a file reference submitted with a request. Only the
// metadata travels through the intake flow; file contents stay client-side.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// AssetRequest is the transient payload collected from one form session.
// JSON keys match the portal form's wire format, which predates this service.
type AssetRequest struct {
	Name          string       `json:"name"`
	Department    string       `json:"department"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	AssetType     string       `json:"assetType"`
	Description   string       `json:"description"`
	Quantity      int          `json:"quantity"`
	Justification string       `json:"justification"`
	Priority      string       `json:"priority"`
	ManagerName   string       `json:"managerName"`
	ManagerEmail  string       `json:"managerEmail"`
	Attachments   []Attachment `json:"attachments"`
	SubmittedAt   time.Time    `json:"submittedAt"`
}

// AcceptedAttachmentType reports whether t is in the upload whitelist.
func AcceptedAttachmentType(t string) bool {
	for _, accepted := range AcceptedAttachmentTypes {
		if t == accepted {
			return true
		}
	}
	return false
}
