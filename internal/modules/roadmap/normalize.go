// Package roadmap builds career roadmaps: it shapes untrusted generative output into the
// canonical five-stage form, synthesizes deterministic fallbacks, drives the
// primary/secondary/fallback generation sequence and computes progress.
package roadmap

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
)

// Normalize converts arbitrary decoded input into the canonical roadmap shape. It never
// fails: a non-object input yields the degraded raw_text form, and malformed entries are
// coerced to strings rather than dropped.
func Normalize(raw any) domain.Roadmap {
	var obj map[string]any
	switch v := raw.(type) {
	case map[string]any:
		obj = v
	case domain.Roadmap:
		obj = toRaw(v)
	case *domain.Roadmap:
		if v == nil {
			return degraded(nil)
		}
		obj = toRaw(*v)
	default:
		return degraded(raw)
	}
	if obj == nil {
		return degraded(raw)
	}
	if txt, ok := obj["raw_text"]; ok && !hasAnyStage(obj) {
		return degraded(txt)
	}

	var out domain.Roadmap
	for _, stage := range domain.Stages {
		entries := asEntries(lookupStage(obj, stage))
		items := make([]domain.Item, 0, len(entries))
		for _, entry := range entries {
			items = append(items, normalizeEntry(stage, entry))
		}
		out.SetItems(stage, items)
	}
	return out
}

func normalizeEntry(stage domain.Stage, entry any) domain.Item {
	fields, ok := entry.(map[string]any)
	if !ok {
		return domain.Item{Name: stringify(entry), Status: domain.StatusPending}
	}
	name := stringify(fields[stage.NameField()])
	if name == "" {
		name = stringify(fields["name"])
	}
	return domain.Item{Name: name, Status: coerceStatus(fields["status"])}
}

// coerceStatus maps anything outside the enum to pending so stored roadmaps always hold
// one of the two values.
func coerceStatus(v any) domain.Status {
	s, ok := v.(string)
	if !ok {
		return domain.StatusPending
	}
	if st, err := domain.ParseStatus(s); err == nil {
		return st
	}
	return domain.StatusPending
}

func degraded(raw any) domain.Roadmap {
	txt := stringify(raw)
	return domain.Roadmap{RawText: &txt}
}

func hasAnyStage(obj map[string]any) bool {
	for _, stage := range domain.Stages {
		if lookupStage(obj, stage) != nil {
			return true
		}
	}
	return false
}

// lookupStage prefers the exact stage key and otherwise accepts spelling variants such
// as "beginner" or "mini_projects".
func lookupStage(obj map[string]any, stage domain.Stage) any {
	if v, ok := obj[string(stage)]; ok {
		return v
	}
	want := foldKey(string(stage))
	for k, v := range obj {
		if foldKey(k) == want {
			return v
		}
	}
	return nil
}

func foldKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		if r == ' ' || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// asEntries treats a missing stage as empty and a scalar as a single entry.
func asEntries(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, 0, len(t))
		for _, s := range t {
			out = append(out, s)
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(t))
		for _, m := range t {
			out = append(out, m)
		}
		return out
	default:
		return []any{t}
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	default:
		return fmt.Sprint(t)
	}
}

func toRaw(rm domain.Roadmap) map[string]any {
	if rm.RawText != nil {
		return map[string]any{"raw_text": *rm.RawText}
	}
	out := make(map[string]any, len(domain.Stages))
	for _, stage := range domain.Stages {
		items := rm.Items(stage)
		entries := make([]any, 0, len(items))
		for _, it := range items {
			entries = append(entries, map[string]any{
				stage.NameField(): it.Name,
				"status":          string(it.Status),
			})
		}
		out[string(stage)] = entries
	}
	return out
}
