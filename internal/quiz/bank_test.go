package quiz

import (
	"strings"
	"testing"

	"github.com/oriently/oriently-backend/internal/domain"
)

func loadBank(t *testing.T) *Bank {
	t.Helper()
	b, err := Load()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return b
}

func TestLoadValidatesEmbeddedData(t *testing.T) {
	t.Parallel()

	b := loadBank(t)
	if len(b.Questions) != 5 {
		t.Fatalf("unexpected question count: got=%d want=5", len(b.Questions))
	}
	for _, q := range b.Questions {
		if len(q.Options) != 4 {
			t.Fatalf("question %q has %d options, want 4", q.ID, len(q.Options))
		}
	}
	if len(b.Catalog) == 0 {
		t.Fatal("catalog is empty")
	}
	if len(b.DefaultCourses) < SuggestedCourseCount {
		t.Fatalf("default course list too short: %d", len(b.DefaultCourses))
	}
}

func TestResolveProfileIsTotal(t *testing.T) {
	t.Parallel()

	b := loadBank(t)
	for _, c := range domain.Categories {
		p := b.ResolveProfile(c)
		if p.ID != string(c) {
			t.Fatalf("profile for %q resolved to %q", c, p.ID)
		}
		if p.Title == "" || p.Description == "" {
			t.Fatalf("profile %q has empty copy", c)
		}
		if len(p.Courses) != SuggestedCourseCount {
			t.Fatalf("profile %q has %d courses, want %d", c, len(p.Courses), SuggestedCourseCount)
		}
	}
}

func TestResolveProfileUnknownCategory(t *testing.T) {
	t.Parallel()

	b := loadBank(t)
	p := b.ResolveProfile(domain.Category("astronaut"))
	if p.ID != string(domain.Categories[0]) {
		t.Fatalf("unknown category resolved to %q", p.ID)
	}
}

func TestPadCourses(t *testing.T) {
	t.Parallel()

	b := loadBank(t)

	cases := []struct {
		name string
		in   []string
		want int
	}{
		{"empty", nil, SuggestedCourseCount},
		{"short", []string{"Solo"}, SuggestedCourseCount},
		{"exact", []string{"A", "B", "C"}, SuggestedCourseCount},
		{"long", []string{"A", "B", "C", "D", "E"}, SuggestedCourseCount},
		{"duplicates", []string{"A", "A", "A"}, SuggestedCourseCount},
		{"blanks", []string{"", "A", ""}, SuggestedCourseCount},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := b.PadCourses(tc.in)
			if len(got) != tc.want {
				t.Fatalf("got %d courses, want %d: %v", len(got), tc.want, got)
			}
			seen := map[string]struct{}{}
			for _, c := range got {
				if c == "" {
					t.Fatalf("padded list contains empty title: %v", got)
				}
				if _, dup := seen[c]; dup {
					t.Fatalf("padded list contains duplicate %q: %v", c, got)
				}
				seen[c] = struct{}{}
			}
		})
	}
}

func TestPadCoursesKeepsProvidedOrder(t *testing.T) {
	t.Parallel()

	b := loadBank(t)
	got := b.PadCourses([]string{"X", "Y", "Z", "W"})
	want := []string{"X", "Y", "Z"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected course at %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}

// A full run with analytically leaning answers must land on the analytical
// profile.
func TestAnalyticalRunEndToEnd(t *testing.T) {
	t.Parallel()

	b := loadBank(t)
	answers := []domain.Answer{
		{QuestionID: "interests", Value: "technology"},
		{QuestionID: "work_style", Value: "independent"},
		{QuestionID: "problem_solving", Value: "logical"},
		{QuestionID: "learning_style", Value: "theory"},
		{QuestionID: "career_goal", Value: "expertise"},
	}

	winner, scores := ComputeProfile(answers, b.Questions)
	if winner != domain.CategoryAnalytical {
		t.Fatalf("unexpected winner: got=%q want=%q scores=%v", winner, domain.CategoryAnalytical, scores)
	}
	if scores[domain.CategoryAnalytical] <= scores[domain.CategoryDigital] {
		t.Fatalf("analytical should outscore digital: %v", scores)
	}

	p := b.ResolveProfile(winner)
	if p.ID != "analytical" {
		t.Fatalf("resolved wrong profile: %q", p.ID)
	}
	if !strings.Contains(strings.ToLower(p.Title), "analista") {
		t.Fatalf("unexpected analytical title: %q", p.Title)
	}
}
