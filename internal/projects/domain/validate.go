package domain

import (
	"fmt"

	"github.com/devforge-portal/portal-backend/internal/rawmap"
)

// ValidateProject gates every project write. It checks the untrusted payload
// against the required-field and enum rules and returns a field-specific error
// on the first violation. The payload is never mutated; validation never runs
// on read paths.
func ValidateProject(payload map[string]any) error {
	if !nonEmptyString(payload["title"]) {
		return fmt.Errorf("title must be a non-empty string")
	}
	if !nonEmptyString(payload["overview"]) {
		return fmt.Errorf("overview must be a non-empty string")
	}

	if v, ok := payload["status"]; ok {
		s, isStr := v.(string)
		if !isStr || !Status(s).Valid() {
			return fmt.Errorf("status must be one of draft, active, completed, archived")
		}
	}

	for _, field := range []string{"objectives", "deliverables", "considerations"} {
		if v, ok := payload[field]; ok && !rawmap.IsSlice(v) {
			return fmt.Errorf("%s must be an array", field)
		}
	}

	if v, ok := payload["techStack"]; ok && !rawmap.IsMap(v) {
		return fmt.Errorf("techStack must be an object")
	}

	meta, ok := payload["metadata"].(map[string]any)
	if !ok {
		return fmt.Errorf("metadata is required")
	}
	if !rawmap.IsString(meta["type"]) {
		return fmt.Errorf("metadata.type must be a string")
	}
	if !rawmap.IsString(meta["estimatedTime"]) {
		return fmt.Errorf("metadata.estimatedTime must be a string")
	}
	if err := validateTeamSize(meta["teamSize"]); err != nil {
		return err
	}
	d, isStr := meta["difficulty"].(string)
	if !isStr || !Difficulty(d).Valid() {
		return fmt.Errorf("metadata.difficulty must be one of beginner, intermediate, advanced")
	}
	if v, ok := meta["tags"]; ok && !rawmap.IsSlice(v) {
		return fmt.Errorf("metadata.tags must be an array")
	}

	return nil
}

func validateTeamSize(v any) error {
	ts, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("metadata.teamSize must be an object")
	}
	min, okMin := rawmap.Int(ts["min"])
	max, okMax := rawmap.Int(ts["max"])
	if !okMin || !okMax || min < 1 || max < 1 {
		return fmt.Errorf("metadata.teamSize min and max must be positive integers")
	}
	if min > max {
		return fmt.Errorf("metadata.teamSize min must not exceed max")
	}
	return nil
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

// ScrubServerFields removes the fields only the server may set. Older clients
// sent id and timestamps in the body; they are ignored and regenerated.
func ScrubServerFields(payload map[string]any) {
	for _, k := range []string{"id", "created_at", "updated_at", "createdAt", "updatedAt"} {
		delete(payload, k)
	}
}
