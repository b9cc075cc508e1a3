package models

// Gender is the grammatical gender of a French noun.
type Gender string

const (
	Masculine Gender = "masculine"
	Feminine  Gender = "feminine"
)

func (g Gender) Valid() bool {
	return g == Masculine || g == Feminine
}

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Question is one item of the gender question bank. Questions are seeded
// once and never modified afterwards.
type Question struct {
	ID              string `json:"id"`
	Word            string `json:"word"`
	Gender          Gender `json:"gender"`
	Difficulty      int    `json:"difficulty"`
	Translation     string `json:"translation,omitempty"`
	ExampleEveryday string `json:"example_everyday"`
	ExampleLiterary string `json:"example_literary"`
	ExampleAcademic string `json:"example_academic"`
	Notes           string `json:"notes,omitempty"`
}

// Examples returns the non-empty usages in everyday, literary, academic
// order. Imported nouns may have none.
func (q Question) Examples() []string {
	examples := make([]string, 0, 3)
	for _, e := range []string{q.ExampleEveryday, q.ExampleLiterary, q.ExampleAcademic} {
		if e != "" {
			examples = append(examples, e)
		}
	}
	return examples
}

// PublicQuestion is a question as shown to a learner before answering.
type PublicQuestion struct {
	ID          string `json:"id"`
	Word        string `json:"word"`
	Difficulty  int    `json:"difficulty"`
	Translation string `json:"translation,omitempty"`
}

// Public strips the answer and the examples, which contain the article.
func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:          q.ID,
		Word:        q.Word,
		Difficulty:  q.Difficulty,
		Translation: q.Translation,
	}
}

type QuestionFilter struct {
	Gender     Gender
	Difficulty int
	Limit      int
	Offset     int
}

// SeedReport summarizes one noun list import.
type SeedReport struct {
	Parsed   int `json:"parsed"`
	Inserted int `json:"inserted"`
	Existing int `json:"existing"`
	Skipped  int `json:"skipped"`
}
