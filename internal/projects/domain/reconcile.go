package domain

import (
	"sort"

	"github.com/devforge-portal/portal-backend/internal/rawmap"
)

// ReconcileProject normalizes a raw stored record into the canonical Project.
// Records were written under several incompatible schema revisions (overview
// vs description, snake_case vs camelCase timestamps, sections as a map vs a
// list), so every field is extracted with a fallback default.
// It is total: any input, including an empty map, yields a usable record.
// It is idempotent: reconciling an already-canonical record changes nothing.
func ReconcileProject(raw map[string]any) Project {
	p := Project{
		ID:       rawmap.String(raw["id"]),
		Title:    rawmap.String(raw["title"]),
		Overview: rawmap.String(raw["overview"]),
	}
	if p.Overview == "" {
		// pre-2023 revisions called this field "description"
		p.Overview = rawmap.String(raw["description"])
	}

	p.Status = Status(rawmap.String(raw["status"]))
	if !p.Status.Valid() {
		p.Status = StatusDraft
	}

	p.CreatedAt, p.UpdatedAt = reconcileTimestamps(raw)

	p.Objectives = rawmap.StringSlice(raw["objectives"])
	p.Considerations = rawmap.StringSlice(raw["considerations"])
	p.Deliverables = reconcileDeliverables(raw["deliverables"])
	p.TechStack = reconcileTechStack(raw["techStack"])
	p.Metadata = reconcileMetadata(raw["metadata"])
	p.Sections = reconcileSections(raw["sections"])

	return p
}

// reconcileTimestamps resolves the snake_case/camelCase timestamp split. The
// camelCase alias is only consulted when the canonical field is absent.
func reconcileTimestamps(raw map[string]any) (created, updated string) {
	created = rawmap.String(raw["created_at"])
	if created == "" {
		created = rawmap.String(raw["createdAt"])
	}
	updated = rawmap.String(raw["updated_at"])
	if updated == "" {
		updated = rawmap.String(raw["updatedAt"])
	}
	return created, updated
}

func reconcileDeliverables(v any) []Deliverable {
	items := rawmap.Slice(v)
	out := make([]Deliverable, 0, len(items))
	for _, it := range items {
		switch d := it.(type) {
		case string:
			out = append(out, Deliverable{Title: d})
		case map[string]any:
			out = append(out, Deliverable{
				ID:           rawmap.String(d["id"]),
				Title:        rawmap.String(d["title"]),
				Description:  rawmap.String(d["description"]),
				Type:         rawmap.String(d["type"]),
				Requirements: rawmap.StringSlice(d["requirements"]),
			})
		}
	}
	return out
}

func reconcileTechStack(v any) TechStack {
	m := rawmap.Map(v)
	ts := TechStack{
		Frontend:       rawmap.StringSlice(m["frontend"]),
		Backend:        rawmap.StringSlice(m["backend"]),
		Database:       rawmap.StringSlice(m["database"]),
		Infrastructure: rawmap.StringSlice(m["infrastructure"]),
		Tools:          rawmap.StringSlice(m["tools"]),
		Other:          rawmap.StringSlice(m["other"]),
	}

	// Categories outside the known set are folded into Other rather than
	// dropped. Keys are sorted so the result is deterministic.
	known := map[string]bool{
		"frontend": true, "backend": true, "database": true,
		"infrastructure": true, "tools": true, "other": true,
	}
	extra := make([]string, 0)
	for k := range m {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		ts.Other = append(ts.Other, rawmap.StringSlice(m[k])...)
	}

	return ts
}

func reconcileMetadata(v any) Metadata {
	m := rawmap.Map(v)
	meta := Metadata{
		Type:          rawmap.String(m["type"]),
		EstimatedTime: rawmap.String(m["estimatedTime"]),
		TeamSize:      TeamSize{Min: 1, Max: 1},
		Difficulty:    Difficulty(rawmap.String(m["difficulty"])),
		Tags:          rawmap.StringSlice(m["tags"]),
	}
	if !meta.Difficulty.Valid() {
		meta.Difficulty = DifficultyBeginner
	}
	if ts, ok := m["teamSize"].(map[string]any); ok {
		min, okMin := rawmap.Int(ts["min"])
		max, okMax := rawmap.Int(ts["max"])
		if okMin && okMax && min >= 1 && max >= min {
			meta.TeamSize = TeamSize{Min: min, Max: max}
		}
	}
	return meta
}

// reconcileSections converts both stored section shapes into the canonical
// ordered slice. The map revision carries no order, so its keys are sorted;
// the list revision keeps input order, honoring explicit order fields when
// every element has one.
func reconcileSections(v any) []Section {
	switch s := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Section, 0, len(keys))
		for _, k := range keys {
			sec := rawmap.Map(s[k])
			out = append(out, Section{
				Key:     k,
				Title:   rawmap.String(sec["title"]),
				Content: rawmap.String(sec["content"]),
			})
		}
		return out
	case []any:
		type ordered struct {
			sec   Section
			order int
		}
		out := make([]ordered, 0, len(s))
		allOrdered := len(s) > 0
		for _, it := range s {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			key := rawmap.String(m["key"])
			if key == "" {
				key = rawmap.String(m["id"])
			}
			o, hasOrder := rawmap.Int(m["order"])
			if !hasOrder {
				allOrdered = false
			}
			out = append(out, ordered{
				sec: Section{
					Key:     key,
					Title:   rawmap.String(m["title"]),
					Content: rawmap.String(m["content"]),
				},
				order: o,
			})
		}
		if allOrdered {
			sort.SliceStable(out, func(i, j int) bool { return out[i].order < out[j].order })
		}
		secs := make([]Section, len(out))
		for i, o := range out {
			secs[i] = o.sec
		}
		return secs
	}
	return []Section{}
}
