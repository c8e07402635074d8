package quiz

import (
	"fmt"
	"strings"

	"github.com/oriently/oriently-backend/internal/domain"
)

// keywordRules mirrors the heuristic the original used when no AI response
// was available: two points per answer containing a category keyword.
// Slice, not map: rule order is the tie-break order.
var keywordRules = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryDigital, []string{"technology", "digital"}},
	{domain.CategoryCreative, []string{"creative", "creativity", "design"}},
	{domain.CategoryAnalytical, []string{"data", "analysis", "logical"}},
	{domain.CategoryBusiness, []string{"business", "leadership"}},
	{domain.CategorySocial, []string{"people", "team"}},
}

// FallbackProfile produces a locally generated profile of the same shape as
// the AI result: a personalized greeting for the dominant category plus its
// three suggested courses. Always succeeds.
func (b *Bank) FallbackProfile(answers []domain.Answer, firstName string) domain.GeneratedProfile {
	scores := domain.NewScoreVector()
	for _, a := range answers {
		value := strings.ToLower(a.Value)
		for _, rule := range keywordRules {
			for _, kw := range rule.keywords {
				if strings.Contains(value, kw) {
					scores[rule.category] += 2
					break
				}
			}
		}
	}

	dominant := domain.Categories[0]
	best := scores[dominant]
	for _, c := range domain.Categories[1:] {
		if scores[c] > best {
			dominant = c
			best = scores[c]
		}
	}

	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "futuro professionista"
	}

	return domain.GeneratedProfile{
		Profile:          fmt.Sprintf(b.fallbackTexts[dominant], name),
		SuggestedCourses: append([]string(nil), b.fallbackCourses[dominant]...),
	}
}
