package quiz

import "github.com/oriently/oriently-backend/internal/domain"

// ComputeProfile folds a set of answers into a score vector and picks the
// winning category. Pure and deterministic: the same answers always produce
// the same result.
//
// Lookups that miss (unknown question id, unknown option value, option
// without scores) contribute nothing and are never an error. When several
// answers target the same question the last one counts. Ties resolve to the
// category with the lowest index in domain.Categories.
func ComputeProfile(answers []domain.Answer, questions []domain.Question) (domain.Category, domain.ScoreVector) {
	scores := domain.NewScoreVector()

	byQuestion := make(map[string]domain.Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	for _, q := range questions {
		a, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.Value != a.Value {
				continue
			}
			for c, v := range o.Scores {
				scores[c] += v
			}
			break
		}
	}

	winner := domain.Categories[0]
	best := scores[winner]
	for _, c := range domain.Categories[1:] {
		if scores[c] > best {
			winner = c
			best = scores[c]
		}
	}
	return winner, scores
}
