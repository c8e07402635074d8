package domain

// Category is one of the five professional-inclination axes a quiz taker
// can be classified into.
type Category string

const (
	CategoryDigital    Category = "digital"
	CategoryCreative   Category = "creative"
	CategoryAnalytical Category = "analytical"
	CategoryBusiness   Category = "business"
	CategorySocial     Category = "social"
)

// Categories is the fixed enumeration order. Winner selection and tie-breaks
// always iterate this slice, never a map, so results are deterministic: on a
// tie the category with the lowest index here wins.
var Categories = []Category{
	CategoryDigital,
	CategoryCreative,
	CategoryAnalytical,
	CategoryBusiness,
	CategorySocial,
}

// ScoreVector maps each category to its accumulated score.
type ScoreVector map[Category]int

// NewScoreVector returns a vector with every category initialized to zero.
func NewScoreVector() ScoreVector {
	sv := make(ScoreVector, len(Categories))
	for _, c := range Categories {
		sv[c] = 0
	}
	return sv
}

type Option struct {
	Value  string      `json:"value" yaml:"value"`
	Label  string      `json:"label" yaml:"label"`
	Scores ScoreVector `json:"scores,omitempty" yaml:"scores,omitempty"`
}

type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"question" yaml:"prompt"`
	Options []Option `json:"options" yaml:"options"`
}

// Answer is one user answer, keyed by question id. A later answer for the
// same question replaces the earlier one.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"answer"`
	Score      int    `json:"score,omitempty"`
}

// Profile is the final descriptive result shown to the user.
type Profile struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Courses     []string `json:"courses" yaml:"courses"`
	Color       string   `json:"color" yaml:"color"`
}

type Course struct {
	Title    string `json:"title" yaml:"title"`
	Provider string `json:"provider" yaml:"provider"`
	Link     string `json:"link" yaml:"link"`
}

// GeneratedProfile is the AI (or fallback) output: free-form profile text
// plus exactly three suggested course titles.
type GeneratedProfile struct {
	Profile          string   `json:"profile"`
	SuggestedCourses []string `json:"suggestedCourses"`
}
