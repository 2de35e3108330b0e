package questions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question is one boolean item in the coding questionnaire. Codes are the
// stable keys of every answer set; the display order follows the slice order.
type Question struct {
	Code string `yaml:"code" json:"code"`
	Text string `yaml:"text" json:"text"`
}

// Default returns the fixed framing codebook applied to every article.
// Question texts are kept verbatim from the codebook, typos included.
func Default() []Question {
	return []Question{
		{"A1", "Does the article suggest that some level of government has the ability to alleviate the problem?"},
		{"A2", "Does the article suggest that some level of the government is responsible for the problem?"},
		{"A3", "Does the article suggest solution(s) to the problem?"},
		{"A4", "Does the article make references to moral, religious or philosophical tenets?"},
		{"A5", "Does the article frame actions as good and / or evil, or compare the acceptability of the actions of different actors to one another?"},
		{"A6", "Does the article offer specific social prescriptions about how to behave?"},
		{"A7", "Does the article spesifically reference European, Western, Chinese, Confucian, Russian or any other types of traditional / civilizational value systems?"},
		{"A8", "Does the article portray Russia as a pro-active actor changing the world?"},
		{"A9", "Does the article portray Russia as a reactive actor trying to cope with the changing world?"},
		{"A10", "Does regional (multilateral) cooperation or the international community play a major in solving the central problem of the article?"},
		{"B1", "Does the story reflect disagreement between parties-individuals-groups-countries?"},
		{"B2", "Does the story refer to two sides or to more than two sides of the problem or issue?"},
		{"B3", "Does the conflict involve, affect or even threaten vital national interests of a conflict party?"},
		{"B4", "Is there a mention of financial losses or gains now or in the future?"},
		{"B5", "Is there a reference to economic consequences of pursuing or not pursuing a course of action?"},
		{"B6", "Does the article talk about a win-win situation or a shared economic benefit for both parties?"},
		{"B7", "Does the article set the welfare of humans, citizens or communities as a major goal for action?"},
		{"B8", "Does the article reference the questions of armscontrol, detente or peace mediation?"},
		{"B9", "Does the article talk about climate change or ecological issues as a central problem?"},
		{"B10", "Does the article talk about eradicating poverty, increasing education or other sustainable development as a central problem?"},
	}
}

// Codes returns the question codes in display order.
func Codes(qs []Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Code)
	}
	return out
}

// LoadYAML reads a custom question set from a YAML list of {code, text}.
func LoadYAML(path string) ([]Question, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	var qs []Question
	if err := yaml.Unmarshal(b, &qs); err != nil {
		return nil, fmt.Errorf("parse question set %s: %w", path, err)
	}
	if err := Validate(qs); err != nil {
		return nil, fmt.Errorf("question set %s: %w", path, err)
	}
	return qs, nil
}

// Validate checks that the set is non-empty and codes are unique, non-empty
// strings. Anything less makes answer sets ambiguous.
func Validate(qs []Question) error {
	if len(qs) == 0 {
		return fmt.Errorf("no questions defined")
	}
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if q.Code == "" {
			return fmt.Errorf("question %d has an empty code", i+1)
		}
		if q.Text == "" {
			return fmt.Errorf("question %s has empty text", q.Code)
		}
		if _, dup := seen[q.Code]; dup {
			return fmt.Errorf("duplicate question code %s", q.Code)
		}
		seen[q.Code] = struct{}{}
	}
	return nil
}
