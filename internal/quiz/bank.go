package quiz

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/oriently/oriently-backend/internal/domain"
)

//go:embed data/quizdata.yaml
var dataFS embed.FS

// SuggestedCourseCount is the number of course titles every generated
// profile carries, remote or local.
const SuggestedCourseCount = 3

// Bank holds the static quiz content: questions with per-option score
// vectors, the five static profiles, the keyword-fallback copy and the
// course catalog. Loaded once at startup, never mutated afterwards.
type Bank struct {
	Questions      []domain.Question
	Catalog        []domain.Course
	DefaultCourses []string

	profiles        map[domain.Category]domain.Profile
	fallbackTexts   map[domain.Category]string
	fallbackCourses map[domain.Category][]string
}

type bankFile struct {
	Questions       []domain.Question            `yaml:"questions"`
	Profiles        []domain.Profile             `yaml:"profiles"`
	FallbackTexts   map[domain.Category]string   `yaml:"fallback_profiles"`
	FallbackCourses map[domain.Category][]string `yaml:"fallback_courses"`
	DefaultCourses  []string                     `yaml:"default_courses"`
	Catalog         []domain.Course              `yaml:"catalog"`
}

// Load parses and validates the embedded quiz data.
func Load() (*Bank, error) {
	raw, err := dataFS.ReadFile("data/quizdata.yaml")
	if err != nil {
		return nil, fmt.Errorf("read quiz data: %w", err)
	}

	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse quiz data: %w", err)
	}

	b := &Bank{
		Questions:       f.Questions,
		Catalog:         f.Catalog,
		DefaultCourses:  f.DefaultCourses,
		profiles:        make(map[domain.Category]domain.Profile, len(f.Profiles)),
		fallbackTexts:   f.FallbackTexts,
		fallbackCourses: f.FallbackCourses,
	}
	for _, p := range f.Profiles {
		b.profiles[domain.Category(p.ID)] = p
	}

	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz data: %w", err)
	}
	return b, nil
}

func (b *Bank) validate() error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("no questions")
	}
	seen := make(map[string]struct{}, len(b.Questions))
	for _, q := range b.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.ID)
		}
		for _, o := range q.Options {
			for c := range o.Scores {
				if !validCategory(c) {
					return fmt.Errorf("question %q option %q scores unknown category %q", q.ID, o.Value, c)
				}
			}
		}
	}

	// The profile table must be total over the category set: one profile,
	// one fallback text and one fallback course triple per category.
	for _, c := range domain.Categories {
		p, ok := b.profiles[c]
		if !ok {
			return fmt.Errorf("missing profile for category %q", c)
		}
		if len(p.Courses) != SuggestedCourseCount {
			return fmt.Errorf("profile %q has %d courses, want %d", c, len(p.Courses), SuggestedCourseCount)
		}
		if b.fallbackTexts[c] == "" {
			return fmt.Errorf("missing fallback text for category %q", c)
		}
		if len(b.fallbackCourses[c]) != SuggestedCourseCount {
			return fmt.Errorf("fallback courses for %q: got %d, want %d", c, len(b.fallbackCourses[c]), SuggestedCourseCount)
		}
	}
	if len(b.profiles) != len(domain.Categories) {
		return fmt.Errorf("profile table has %d entries, want %d", len(b.profiles), len(domain.Categories))
	}
	if len(b.DefaultCourses) < SuggestedCourseCount {
		return fmt.Errorf("default course list too short: %d", len(b.DefaultCourses))
	}
	return nil
}

func validCategory(c domain.Category) bool {
	for _, known := range domain.Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PadCourses normalizes a suggested-course list to exactly three entries:
// longer lists are truncated, shorter ones padded from the default list,
// skipping titles already present.
func (b *Bank) PadCourses(courses []string) []string {
	out := make([]string, 0, SuggestedCourseCount)
	seen := make(map[string]struct{}, SuggestedCourseCount)
	for _, c := range courses {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		out = append(out, c)
		seen[c] = struct{}{}
		if len(out) == SuggestedCourseCount {
			return out
		}
	}
	for _, c := range b.DefaultCourses {
		if len(out) == SuggestedCourseCount {
			break
		}
		if _, dup := seen[c]; dup {
			continue
		}
		out = append(out, c)
		seen[c] = struct{}{}
	}
	return out
}
