package domain

import "github.com/devforge-portal/portal-backend/internal/rawmap"

// ReconcileAssignment normalizes a raw stored record into the canonical
// Assignment. Legacy records stored numeric ids; the coercion keeps them
// readable. Total and idempotent.
func ReconcileAssignment(raw map[string]any) Assignment {
	a := Assignment{
		ID:        rawmap.String(raw["id"]),
		ProjectID: rawmap.String(raw["project_id"]),
		UserID:    rawmap.String(raw["user_id"]),
		Role:      Role(rawmap.String(raw["role"])),
		Status:    Status(rawmap.String(raw["status"])),
		StartDate: rawmap.String(raw["start_date"]),
		Notes:     rawmap.String(raw["notes"]),
	}
	if !a.Role.Valid() {
		a.Role = RoleMember
	}
	if !a.Status.Valid() {
		a.Status = StatusPending
	}

	if s := rawmap.String(raw["end_date"]); s != "" {
		a.EndDate = &s
	}

	a.CreatedAt = rawmap.String(raw["created_at"])
	if a.CreatedAt == "" {
		a.CreatedAt = rawmap.String(raw["createdAt"])
	}
	a.UpdatedAt = rawmap.String(raw["updated_at"])
	if a.UpdatedAt == "" {
		a.UpdatedAt = rawmap.String(raw["updatedAt"])
	}

	return a
}
