package recommend

import "fmt"

// explainInput is everything the explanation rules may look at.
type explainInput struct {
	overlap       []string
	personalScore float64
	genres        []string
}

// explanationRule pairs a predicate with a template. Rules are evaluated
// in fixed priority order; the first match wins.
type explanationRule struct {
	name    string
	applies func(explainInput) bool
	render  func(explainInput) string
}

var explanationRules = []explanationRule{
	{
		name: "tag_overlap",
		applies: func(in explainInput) bool {
			return len(in.overlap) > 0
		},
		render: func(in explainInput) string {
			return fmt.Sprintf("Recommended because you liked other movies tagged %q.", in.overlap[0])
		},
	},
	{
		name: "strong_prediction",
		applies: func(in explainInput) bool {
			return in.personalScore > defaultStrongPrediction
		},
		render: func(in explainInput) string {
			return "Recommended based on users with very similar taste."
		},
	},
	{
		name:    "primary_genre",
		applies: func(explainInput) bool { return true },
		render: func(in explainInput) string {
			subject := "movies"
			if len(in.genres) > 0 {
				subject = in.genres[0] + " movies"
			}
			return fmt.Sprintf("Recommended for fans of %s.", subject)
		},
	},
}

func explain(in explainInput) string {
	for _, rule := range explanationRules {
		if rule.applies(in) {
			return rule.render(in)
		}
	}
	return ""
}
