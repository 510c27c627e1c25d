package domain

import "github.com/devforge-portal/portal-backend/internal/rawmap"

// ReconcileUser normalizes a raw stored record into the canonical User. It is
// total and idempotent; invalid enum values are repaired to their defaults
// rather than rejected, because rejection is the validator's job on writes.
func ReconcileUser(raw map[string]any) User {
	u := User{
		ID:              rawmap.String(raw["id"]),
		Email:           rawmap.String(raw["email"]),
		Name:            rawmap.String(raw["name"]),
		Role:            Role(rawmap.String(raw["role"])),
		Status:          Status(rawmap.String(raw["status"])),
		CognitoUsername: rawmap.String(raw["cognito_username"]),
	}
	if !u.Role.Valid() {
		u.Role = RoleUser
	}
	if !u.Status.Valid() {
		u.Status = StatusActive
	}

	u.CreatedAt = rawmap.String(raw["created_at"])
	if u.CreatedAt == "" {
		u.CreatedAt = rawmap.String(raw["createdAt"])
	}
	u.UpdatedAt = rawmap.String(raw["updated_at"])
	if u.UpdatedAt == "" {
		u.UpdatedAt = rawmap.String(raw["updatedAt"])
	}

	meta := rawmap.Map(raw["metadata"])
	u.Metadata = Metadata{
		Department: rawmap.String(meta["department"]),
		Position:   rawmap.String(meta["position"]),
		Skills:     rawmap.StringSlice(meta["skills"]),
	}
	if u.Metadata.Position == "" {
		// one revision called this field "title"
		u.Metadata.Position = rawmap.String(meta["title"])
	}

	return u
}
