package roadmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	ErrEmptyOutput     = errors.New("generative output is empty")
	ErrMalformedOutput = errors.New("generative output is not a roadmap object")
)

// ParseOutput decodes raw backend text into a roadmap-shaped object. Markdown fences and
// surrounding prose are stripped, and syntactically broken JSON is repaired once before
// giving up. The object must carry at least one stage key.
func ParseOutput(text string) (map[string]any, error) {
	body := extractJSON(text)
	if body == "" {
		return nil, ErrEmptyOutput
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		obj = nil
		if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
	}
	if obj == nil {
		return nil, ErrMalformedOutput
	}
	if nested, ok := obj["roadmap"].(map[string]any); ok && !hasAnyStage(obj) {
		obj = nested
	}
	if !hasAnyStage(obj) {
		return nil, fmt.Errorf("%w: no stage keys", ErrMalformedOutput)
	}
	return obj, nil
}

func extractJSON(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	if obj := firstRoadmapObject(s); obj != "" {
		return obj
	}
	// Nothing decodes cleanly; hand the widest brace span to the repair step.
	if start := strings.IndexByte(s, '{'); start >= 0 {
		if end := strings.LastIndexByte(s, '}'); end > start {
			s = s[start : end+1]
		}
	}
	return s
}

// firstRoadmapObject returns the first balanced {...} span in s that decodes to an object
// carrying a stage key, directly or under "roadmap". Braces in surrounding prose are
// skipped.
func firstRoadmapObject(s string) string {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := matchBrace(s, start); end > start {
			candidate := s[start : end+1]
			var obj map[string]any
			if json.Unmarshal([]byte(candidate), &obj) == nil {
				if nested, ok := obj["roadmap"].(map[string]any); hasAnyStage(obj) || (ok && hasAnyStage(nested)) {
					return candidate
				}
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return ""
}

// matchBrace returns the index of the brace closing s[open], ignoring braces inside JSON
// strings, or -1 when it is unbalanced.
func matchBrace(s string, open int) int {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
