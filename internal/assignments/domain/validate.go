package domain

import (
	"fmt"

	"github.com/devforge-portal/portal-backend/internal/rawmap"
)

// ValidateAssignment gates every assignment write. The referenced project and
// user are not checked for existence; dangling references are resolved at
// read time.
func ValidateAssignment(payload map[string]any) error {
	if rawmap.String(payload["project_id"]) == "" {
		return fmt.Errorf("project_id is required")
	}
	if rawmap.String(payload["user_id"]) == "" {
		return fmt.Errorf("user_id is required")
	}

	if v, ok := payload["role"]; ok {
		r, isStr := v.(string)
		if !isStr || !Role(r).Valid() {
			return fmt.Errorf("role must be one of lead, member")
		}
	}
	if v, ok := payload["status"]; ok {
		s, isStr := v.(string)
		if !isStr || !Status(s).Valid() {
			return fmt.Errorf("status must be one of pending, active, completed")
		}
	}

	for _, field := range []string{"start_date", "notes"} {
		if v, ok := payload[field]; ok && v != nil && !rawmap.IsString(v) {
			return fmt.Errorf("%s must be a string", field)
		}
	}
	if v, ok := payload["end_date"]; ok && v != nil && !rawmap.IsString(v) {
		return fmt.Errorf("end_date must be a string or null")
	}

	return nil
}

// ScrubServerFields removes the fields only the server may set.
func ScrubServerFields(payload map[string]any) {
	for _, k := range []string{"id", "created_at", "updated_at", "createdAt", "updatedAt"} {
		delete(payload, k)
	}
}
