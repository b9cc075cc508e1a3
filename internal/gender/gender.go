// Package gender holds the rules used to parse, guess and explain the
// grammatical gender of French nouns.
package gender

import (
	"fmt"
	"strings"

	"github.com/vytor/genrequiz/internal/models"
)

// Parse normalizes a submitted answer. Only the full words are accepted,
// in any case.
func Parse(s string) (models.Gender, bool) {
	g := models.Gender(strings.ToLower(strings.TrimSpace(s)))
	return g, g.Valid()
}

// ParseLoose also accepts the m/f abbreviations used by noun lists.
func ParseLoose(s string) (models.Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "masc":
		return models.Masculine, true
	case "f", "fem":
		return models.Feminine, true
	}
	return Parse(s)
}

// Checked in order; feminine endings are the more reliable group.
var feminineEndings = []string{
	"tion", "sion", "ance", "ence", "ette", "elle", "esse", "ise", "ure", "té", "tié",
	"ie", "ée", "euse", "trice", "ade", "ude", "age",
}

var masculineEndings = []string{
	"ment", "isme", "oir", "eau", "eu", "ou", "er", "al", "el", "il", "ol", "ul",
	"ant", "ent", "in", "on", "un",
}

// Feminine nouns ending in -age; every other -age noun is masculine.
var feminineAgeNouns = map[string]bool{
	"page": true, "image": true, "plage": true, "cage": true, "rage": true, "nage": true,
}

// Prediction is a rule-based guess derived from a word ending.
type Prediction struct {
	Gender models.Gender
	Ending string
}

// PredictByEnding guesses the gender of word from common endings. ok is
// false when no rule matches.
func PredictByEnding(word string) (p Prediction, ok bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return Prediction{}, false
	}
	for _, ending := range feminineEndings {
		if !strings.HasSuffix(w, ending) {
			continue
		}
		if ending == "age" && !feminineAgeNouns[w] {
			return Prediction{Gender: models.Masculine, Ending: ending}, true
		}
		return Prediction{Gender: models.Feminine, Ending: ending}, true
	}
	for _, ending := range masculineEndings {
		if strings.HasSuffix(w, ending) {
			return Prediction{Gender: models.Masculine, Ending: ending}, true
		}
	}
	return Prediction{}, false
}

// EndingNote describes the ending rule for word without naming the gender
// of the word itself when reveal is false.
func EndingNote(word string, reveal bool) string {
	p, ok := PredictByEnding(word)
	if !ok {
		return ""
	}
	if !reveal {
		return fmt.Sprintf("Look at the ending -%s: nouns ending this way usually share a gender.", p.Ending)
	}
	note := fmt.Sprintf("Nouns ending in -%s are usually %s.", p.Ending, p.Gender)
	if p.Ending == "age" {
		note += " A few, such as page and image, are exceptions."
	}
	return note
}

// Explanation is the feedback shown after an answer.
func Explanation(q models.Question) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%q is %s.", q.Word, q.Gender))
	switch {
	case q.Notes != "":
		parts = append(parts, q.Notes)
	default:
		if p, ok := PredictByEnding(q.Word); ok && p.Gender != q.Gender {
			parts = append(parts, fmt.Sprintf("It is an exception to the -%s rule, which usually indicates %s nouns.", p.Ending, p.Gender))
		} else if ok {
			parts = append(parts, EndingNote(q.Word, true))
		} else {
			parts = append(parts, "No ending rule applies; learn it together with its article.")
		}
	}
	return strings.Join(parts, " ")
}

// Hints returns the hints for a question from weakest to strongest. The
// gender word is never part of a hint.
func Hints(q models.Question) []string {
	var hints []string
	if note := EndingNote(q.Word, false); note != "" {
		hints = append(hints, note)
	} else {
		hints = append(hints, "No common ending rule applies to this word.")
	}
	if q.ExampleEveryday != "" {
		hints = append(hints, "Used in a sentence: "+q.ExampleEveryday)
	}
	return hints
}
