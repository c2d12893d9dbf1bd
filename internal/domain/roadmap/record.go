package roadmap

import (
	"encoding/json"
	"strings"
)

// Source tags name the generation path that produced a roadmap.
const (
	SourcePrimary   = "generative-primary"
	SourceSecondary = "generative-secondary"
	SourceFallback  = "fallback"
)

// Record is the per-user stored roadmap. It is replaced wholesale on every roadmap
// creation and mutated in place by progress updates.
type Record struct {
	Career           string  `json:"career"`
	Roadmap          Roadmap `json:"roadmap"`
	GenerationSource string  `json:"generation_source"`
}

func (r Record) Clone() Record {
	out := r
	out.Roadmap = r.Roadmap.Clone()
	return out
}

type recordWire struct {
	Career           string  `json:"career"`
	Roadmap          Roadmap `json:"roadmap"`
	GenerationSource string  `json:"generation_source,omitempty"`
	LLMUsed          string  `json:"llm_used,omitempty"`
}

// MarshalJSON also emits llm_used, the key older documents and clients read.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordWire{
		Career:           r.Career,
		Roadmap:          r.Roadmap,
		GenerationSource: r.GenerationSource,
		LLMUsed:          r.GenerationSource,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var w recordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Career = w.Career
	r.Roadmap = w.Roadmap
	r.GenerationSource = w.GenerationSource
	if r.GenerationSource == "" {
		r.GenerationSource = sourceFromLLMUsed(w.LLMUsed)
	}
	return nil
}

// sourceFromLLMUsed maps a legacy llm_used value onto a source tag. Older documents hold
// model names there ("gemini-1.5-pro", "gemini-1.5-flash") as well as "fallback".
func sourceFromLLMUsed(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return ""
	case v == SourcePrimary, v == SourceSecondary, v == SourceFallback:
		return v
	case strings.Contains(v, "flash"):
		return SourceSecondary
	case strings.Contains(v, "pro"):
		return SourcePrimary
	default:
		return SourceFallback
	}
}
