package roadmap

import (
	"strings"

	domain "github.com/yungbote/careerpath-backend/internal/domain/roadmap"
)

type template struct {
	beginner, intermediate, advanced []string
	miniProjects, mainProjects       []string
}

var baseTemplate = template{
	beginner:     []string{"Python", "SQL", "Excel", "Statistics", "Data Visualization", "Linux"},
	intermediate: []string{"Pandas", "NumPy", "Data Cleaning", "Scikit-Learn", "Visualization Tools"},
	advanced:     []string{"Deep Learning", "NLP", "MLOps", "Big Data (Spark)", "Cloud ML"},
	miniProjects: []string{"Data Cleaning with Pandas", "Exploratory Data Analysis"},
	mainProjects: []string{"End-to-end ML Project", "Production-ready Data Pipeline"},
}

var webTemplate = template{
	beginner:     []string{"HTML", "CSS", "JavaScript", "Git", "Basic UI"},
	intermediate: []string{"React", "State Management", "REST APIs", "CSS Frameworks"},
	advanced:     []string{"Next.js", "Performance Optimization", "Testing", "SSR"},
	miniProjects: []string{"Personal Portfolio", "Simple To-Do App"},
	mainProjects: []string{"E-commerce SPA", "Real-time Chat App"},
}

var devopsTemplate = template{
	beginner:     []string{"Linux", "Networking Basics", "Shell Scripting", "Git", "Python Basics"},
	intermediate: []string{"Docker", "CI/CD", "AWS/GCP Basics", "Monitoring"},
	advanced:     []string{"Kubernetes", "Infrastructure as Code", "SRE Practices"},
	miniProjects: []string{"Dockerize a Flask App"},
	mainProjects: []string{"K8s Production Deployment", "CI/CD Pipeline"},
}

var mlTemplate = template{
	beginner:     []string{"Python", "Linear Algebra Basics", "Statistics", "Probability"},
	intermediate: []string{"Pandas", "Scikit-Learn", "Model Evaluation", "Feature Engineering"},
	advanced:     []string{"Deep Learning", "NLP", "Computer Vision", "MLOps"},
	miniProjects: []string{"Regression Project", "Classifier on small dataset"},
	mainProjects: []string{"NLP Pipeline", "Image Classifier (transfer learning)"},
}

// trackOverride maps career-name markers to a template. Order is priority: the first
// track with a matching marker wins. A nil template keeps the base.
type trackOverride struct {
	markers []string
	tmpl    *template
}

var trackOverrides = []trackOverride{
	{markers: []string{"web", "frontend", "react"}, tmpl: &webTemplate},
	{markers: []string{"cloud", "devops", "site reliability", "site-reliability"}, tmpl: &devopsTemplate},
	{markers: []string{"data", "data scientist", "data analyst"}, tmpl: nil},
	{markers: []string{"ml", "machine"}, tmpl: &mlTemplate},
}

func selectTemplate(career string) template {
	c := strings.ToLower(career)
	for _, o := range trackOverrides {
		for _, m := range o.markers {
			if strings.Contains(c, m) {
				if o.tmpl == nil {
					return baseTemplate
				}
				return *o.tmpl
			}
		}
	}
	return baseTemplate
}

func (t template) raw() map[string]any {
	list := func(names []string) []any {
		out := make([]any, 0, len(names))
		for _, n := range names {
			out = append(out, n)
		}
		return out
	}
	return map[string]any{
		string(domain.StageBeginner):     list(t.beginner),
		string(domain.StageIntermediate): list(t.intermediate),
		string(domain.StageAdvanced):     list(t.advanced),
		string(domain.StageMiniProjects): list(t.miniProjects),
		string(domain.StageMainProjects): list(t.mainProjects),
	}
}

// Fallback builds a deterministic roadmap from the career-name keyword templates and
// seeds every reported skill that the skill stages do not already cover at the front of
// Beginner. It always starts from a fresh template, so repeated calls do not accumulate.
func Fallback(career string, skills []string) domain.Roadmap {
	rm := Normalize(selectTemplate(career).raw())

	known := make(map[string]struct{})
	for _, stage := range domain.SkillStages {
		for _, it := range rm.Items(stage) {
			known[strings.ToLower(it.Name)] = struct{}{}
		}
	}
	for _, s := range skills {
		ks := strings.ToLower(strings.TrimSpace(s))
		if ks == "" {
			continue
		}
		if _, ok := known[ks]; ok {
			continue
		}
		known[ks] = struct{}{}
		rm.Beginner = append([]domain.Item{{Name: ks, Status: domain.StatusPending}}, rm.Beginner...)
	}
	return rm
}
