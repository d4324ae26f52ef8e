package grading

const (
	CriterionLength    = "length"
	CriterionKeywords  = "keywords"
	CriterionStructure = "structure"
)

type Rubric struct {
	Criteria []Criterion `json:"criteria"`
}

type Criterion struct {
	Key    string  `json:"key"`
	Desc   string  `json:"desc"`
	Weight float64 `json:"weight"`
}

// DefaultRubric weights length 0.3, keywords 0.4 and structure 0.3.
func DefaultRubric() Rubric {
	return Rubric{Criteria: []Criterion{
		{Key: CriterionLength, Desc: "substantive answer length", Weight: 0.3},
		{Key: CriterionKeywords, Desc: "technical vocabulary", Weight: 0.4},
		{Key: CriterionStructure, Desc: "sentence structure", Weight: 0.3},
	}}
}

// Combine returns the weighted sum of the awarded sub-scores. Each sub-score
// is clamped to [0,1] and negative weights count as zero; criteria missing
// from awarded contribute nothing.
func (r Rubric) Combine(awarded map[string]float64) float64 {
	total := 0.0
	for _, c := range r.Criteria {
		if c.Weight <= 0 {
			continue
		}
		total += c.Weight * clamp(awarded[c.Key], 0, 1)
	}
	return total
}
