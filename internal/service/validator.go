package service

import (
	"fmt"
	"regexp"
	"strings"

	"portal/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^[0-9+()\-\s]{7,}$`)
)

// ValidateRequest checks an asset-request submission against the portal's
// form rules and returns a field-name → message map; an empty map means the
// payload is valid. Attachment violations get per-file keys (file_<i> for
// size, filetype_<i> for media type) so multiple file errors can coexist.
// Deterministic, no I/O.
func ValidateRequest(req model.AssetRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Full name is required."
	}

	if req.Department == "" {
		errs["department"] = "Department is required."
	}

	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required."
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Enter a valid email."
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		errs["phone"] = "Enter a valid phone number."
	}

	if req.AssetType == "" {
		errs["assetType"] = "Asset type is required."
	}

	if strings.TrimSpace(req.Description) == "" {
		errs["description"] = "Provide asset specifications."
	}

	if req.Quantity < 1 {
		errs["quantity"] = "Quantity must be at least 1."
	}

	if strings.TrimSpace(req.Justification) == "" {
		errs["justification"] = "Justification is required."
	}

	if req.Priority == "" {
		errs["priority"] = "Priority is required."
	}

	if strings.TrimSpace(req.ManagerName) == "" {
		errs["managerName"] = "Approving manager name is required."
	}

	if strings.TrimSpace(req.ManagerEmail) == "" {
		errs["managerEmail"] = "Manager email is required."
	} else if !emailPattern.MatchString(req.ManagerEmail) {
		errs["managerEmail"] = "Enter a valid manager email."
	}

	for i, f := range req.Attachments {
		if f.Size > model.MaxAttachmentBytes {
			errs[fmt.Sprintf("file_%d", i)] = "Each file must be ≤ 10 MB."
		}
		if !model.AcceptedAttachmentType(f.Type) {
			errs[fmt.Sprintf("filetype_%d", i)] = "Unsupported file type."
		}
	}

	return errs
}
