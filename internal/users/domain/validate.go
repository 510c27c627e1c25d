package domain

import (
	"fmt"
	"net/mail"

	"github.com/devforge-portal/portal-backend/internal/rawmap"
)

// ValidateUser gates every user write. Email and name are required; role and
// status must be in their enums when present (the reconciler supplies
// defaults when they are absent). The payload is never mutated.
func ValidateUser(payload map[string]any) error {
	email, ok := payload["email"].(string)
	if !ok || email == "" {
		return fmt.Errorf("email must be a non-empty string")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email is not a valid address")
	}

	name, ok := payload["name"].(string)
	if !ok || name == "" {
		return fmt.Errorf("name must be a non-empty string")
	}

	if v, ok := payload["role"]; ok {
		r, isStr := v.(string)
		if !isStr || !Role(r).Valid() {
			return fmt.Errorf("role must be one of user, admin, manager")
		}
	}
	if v, ok := payload["status"]; ok {
		s, isStr := v.(string)
		if !isStr || !Status(s).Valid() {
			return fmt.Errorf("status must be one of active, inactive, pending")
		}
	}

	if v, ok := payload["metadata"]; ok && !rawmap.IsMap(v) {
		return fmt.Errorf("metadata must be an object")
	}

	return nil
}

// ScrubServerFields removes the fields only the server may set, including the
// identity-service link which is derived from the provisioning flow.
func ScrubServerFields(payload map[string]any) {
	for _, k := range []string{"id", "cognito_username", "created_at", "updated_at", "createdAt", "updatedAt", "tempPassword", "temp_password"} {
		delete(payload, k)
	}
}
