package roadmap

import (
	"errors"
	"testing"
)

func TestParseOutputPlainJSON(t *testing.T) {
	obj, err := ParseOutput(`{"Beginner":[{"skill":"Python","status":"pending"}]}`)
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	if _, ok := obj["Beginner"]; !ok {
		t.Fatalf("missing Beginner: %v", obj)
	}
}

func TestParseOutputStripsFencesAndProse(t *testing.T) {
	cases := map[string]string{
		"fenced":          "```json\n{\"Beginner\": [\"Go\"]}\n```",
		"bare fence":      "```{\"Beginner\": [\"Go\"]}```",
		"with prose":      "Here is your roadmap:\n{\"Beginner\": [\"Go\"]}\nGood luck!",
		"fence+prose":     "Sure!\n```json\n{\"Beginner\": [\"Go\"]}\n```",
		"braces in prose": "Sure {here} it is: {\"Beginner\": [\"Go\"]} (see {notes})",
		"trailing prose":  "{\"Beginner\": [\"Go\"]}\nLet me know if you need {more}.",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			obj, err := ParseOutput(text)
			if err != nil {
				t.Fatalf("ParseOutput: %v", err)
			}
			rm := Normalize(obj)
			if len(rm.Beginner) != 1 || rm.Beginner[0].Name != "Go" {
				t.Fatalf("beginner: got=%+v", rm.Beginner)
			}
		})
	}
}

func TestParseOutputIgnoresBracesInsideStrings(t *testing.T) {
	obj, err := ParseOutput(`Plan {v2}: {"Beginner": ["Go {generics}", "Docker \"}\""]}`)
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	rm := Normalize(obj)
	if len(rm.Beginner) != 2 || rm.Beginner[0].Name != "Go {generics}" || rm.Beginner[1].Name != `Docker "}"` {
		t.Fatalf("beginner: got=%+v", rm.Beginner)
	}
}

func TestParseOutputRepairsBrokenJSON(t *testing.T) {
	obj, err := ParseOutput(`{"Beginner": [{"skill": "Python", "status": "pending"},], "Advanced": ['Kubernetes']}`)
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	rm := Normalize(obj)
	if len(rm.Beginner) != 1 || rm.Beginner[0].Name != "Python" {
		t.Fatalf("beginner: got=%+v", rm.Beginner)
	}
	if len(rm.Advanced) != 1 || rm.Advanced[0].Name != "Kubernetes" {
		t.Fatalf("advanced: got=%+v", rm.Advanced)
	}
}

func TestParseOutputUnwrapsRoadmapEnvelope(t *testing.T) {
	obj, err := ParseOutput(`{"career":"SRE","roadmap":{"Intermediate":["Docker"]}}`)
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	if _, ok := obj["Intermediate"]; !ok {
		t.Fatalf("expected unwrapped roadmap, got=%v", obj)
	}
}

func TestParseOutputRejects(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "   ", ErrEmptyOutput},
		{"no stages", `{"answer": "I cannot help with that"}`, ErrMalformedOutput},
		{"array", `["Beginner"]`, ErrMalformedOutput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOutput(tc.text)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err: want=%v got=%v", tc.want, err)
			}
		})
	}
}
