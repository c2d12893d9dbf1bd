package roadmap

import (
	"fmt"
	"strings"
)

// Request carries everything a roadmap is generated from.
type Request struct {
	Career     string
	Skills     []string
	SoftSkills []string
	Interests  []string
	ResumeText string
}

const systemPrompt = "You are a career mentor that outputs structured JSON only."

// maxResumeChars bounds, in runes, how much resume text is embedded in the prompt.
const maxResumeChars = 4000

// BuildPrompt renders the system and user prompts shared by every generative backend.
func BuildPrompt(req Request) (system string, user string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Career: %s\n", strings.TrimSpace(req.Career))
	fmt.Fprintf(&b, "Skills reported by user (from profile/resume/quiz): %s\n", joinList(req.Skills))
	fmt.Fprintf(&b, "Soft skills: %s\n", joinList(req.SoftSkills))
	fmt.Fprintf(&b, "Interests: %s\n", joinList(req.Interests))
	if resume := strings.TrimSpace(req.ResumeText); resume != "" {
		if r := []rune(resume); len(r) > maxResumeChars {
			resume = string(r[:maxResumeChars])
		}
		fmt.Fprintf(&b, "Resume excerpt:\n%s\n", resume)
	}
	b.WriteString(`
Produce a detailed career roadmap JSON object with exactly these keys:
- "Beginner" (5-7 core fundamentals)
- "Intermediate" (5-7 applied tools/frameworks)
- "Advanced" (5-7 specialized/cutting-edge skills)
- "Mini Projects" (3-5 small practice projects)
- "Main Projects" (2-3 portfolio-level projects)

Rules:
1) Do NOT mark anything as "completed". Mark all skills/projects as "pending"; the user updates completion status.
2) Return JSON only (no prose, no markdown fences).
3) Each Beginner/Intermediate/Advanced item is an object with fields: skill, status.
4) Each project item is an object with fields: project, status.
`)
	return systemPrompt, b.String()
}

func joinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ", ")
}
