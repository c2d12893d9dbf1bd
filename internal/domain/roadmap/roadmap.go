// Package roadmap holds the career roadmap data model shared by generation, storage and
// progress tracking.
package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParseStatus accepts the two enum values case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type Stage string

const (
	StageBeginner     Stage = "Beginner"
	StageIntermediate Stage = "Intermediate"
	StageAdvanced     Stage = "Advanced"
	StageMiniProjects Stage = "Mini Projects"
	StageMainProjects Stage = "Main Projects"
)

var (
	// SkillStages and ProjectStages are listed in progress-search priority order.
	SkillStages   = []Stage{StageBeginner, StageIntermediate, StageAdvanced}
	ProjectStages = []Stage{StageMiniProjects, StageMainProjects}
	Stages        = []Stage{StageBeginner, StageIntermediate, StageAdvanced, StageMiniProjects, StageMainProjects}
)

func (s Stage) IsProject() bool {
	return s == StageMiniProjects || s == StageMainProjects
}

// NameField is the wire key holding an item's name in this stage.
func (s Stage) NameField() string {
	if s.IsProject() {
		return "project"
	}
	return "skill"
}

// Item is a skill or project entry. It is serialized as {"skill": ...} or
// {"project": ...} depending on its stage.
type Item struct {
	Name   string
	Status Status
}

// Roadmap is the five-stage learning plan. RawText is non-nil only for the degraded form
// produced from generative output that could not be shaped.
type Roadmap struct {
	Beginner     []Item
	Intermediate []Item
	Advanced     []Item
	MiniProjects []Item
	MainProjects []Item

	RawText *string
}

func (r *Roadmap) stage(s Stage) *[]Item {
	switch s {
	case StageBeginner:
		return &r.Beginner
	case StageIntermediate:
		return &r.Intermediate
	case StageAdvanced:
		return &r.Advanced
	case StageMiniProjects:
		return &r.MiniProjects
	case StageMainProjects:
		return &r.MainProjects
	}
	return nil
}

// Items returns the stage's items. The slice aliases the roadmap.
func (r *Roadmap) Items(s Stage) []Item {
	if p := r.stage(s); p != nil {
		return *p
	}
	return nil
}

func (r *Roadmap) SetItems(s Stage, items []Item) {
	if p := r.stage(s); p != nil {
		*p = items
	}
}

func (r Roadmap) Degraded() bool { return r.RawText != nil }

func (r Roadmap) Clone() Roadmap {
	out := Roadmap{}
	for _, s := range Stages {
		src := r.Items(s)
		dst := make([]Item, len(src))
		copy(dst, src)
		out.SetItems(s, dst)
	}
	if r.RawText != nil {
		txt := *r.RawText
		out.RawText = &txt
	}
	return out
}

func (r Roadmap) MarshalJSON() ([]byte, error) {
	if r.RawText != nil {
		return json.Marshal(map[string]string{"raw_text": *r.RawText})
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range Stages {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(s))
		buf.Write(key)
		buf.WriteByte(':')
		items := r.Items(s)
		entries := make([]map[string]string, 0, len(items))
		for _, it := range items {
			entries = append(entries, map[string]string{
				s.NameField(): it.Name,
				"status":      string(it.Status),
			})
		}
		raw, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type wireItem struct {
	Skill   string `json:"skill"`
	Project string `json:"project"`
	Name    string `json:"name"`
	Status  Status `json:"status"`
}

func (r *Roadmap) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = Roadmap{}
	if raw, ok := fields["raw_text"]; ok {
		var txt string
		if err := json.Unmarshal(raw, &txt); err != nil {
			return fmt.Errorf("raw_text: %w", err)
		}
		r.RawText = &txt
		return nil
	}
	for _, s := range Stages {
		var entries []wireItem
		if raw, ok := fields[string(s)]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := json.Unmarshal(raw, &entries); err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
		}
		items := make([]Item, 0, len(entries))
		for _, e := range entries {
			name := e.Skill
			if s.IsProject() {
				name = e.Project
			}
			if name == "" {
				name = e.Name
			}
			status := Status(strings.ToLower(string(e.Status)))
			if !status.Valid() {
				status = StatusPending
			}
			items = append(items, Item{Name: name, Status: status})
		}
		r.SetItems(s, items)
	}
	return nil
}
