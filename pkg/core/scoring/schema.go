package scoring

import "google.golang.org/genai"

// ResponseSchema describes the StockAnalysis JSON the oracle must return.
func ResponseSchema() *genai.Schema {
	criterion := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":         {Type: genai.TypeNumber},
			"justification": {Type: genai.TypeString},
		},
		Required: []string{"score", "justification"},
	}

	props := make(map[string]*genai.Schema, len(Criteria))
	required := make([]string, 0, len(Criteria))
	for _, c := range Criteria {
		props[string(c.Key)] = criterion
		required = append(required, string(c.Key))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker": {Type: genai.TypeString},
			"scores": {
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			},
			"weightedScore": {Type: genai.TypeNumber},
		},
		Required: []string{"ticker", "scores", "weightedScore"},
	}
}
