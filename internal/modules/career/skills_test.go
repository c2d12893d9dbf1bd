package career

import (
	"reflect"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"none", "I like gardening", []string{}},
		{"sorted unique", "SQL, python and more Python; also sql", []string{"python", "sql"}},
		{"multi word", "Strong communication and Problem Solving skills", []string{"communication", "problem solving"}},
		{"punctuated", "Built APIs with Node.js and C++", []string{"c++", "node", "node.js"}},
		{"r on its own", "Statistics in R, dashboards in react", []string{"r", "react", "statistics"}},
		{"no partial", "reactive programming in javascripting", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractSkills(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ExtractSkills(%q): want=%v got=%v", tc.text, tc.want, got)
			}
		})
	}
}
