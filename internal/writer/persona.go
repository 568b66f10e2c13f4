// Package writer turns a submitted request into finished copy by chaining
// prompts through the generation service.
package writer

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Persona is a named content style. It selects the template pair and
// whether a target length applies.
type Persona string

const (
	PersonaArticle    Persona = "article"
	PersonaCopywriter Persona = "copywriter"
)

// MinArticleWords is the floor for the article target length.
const MinArticleWords = 1500

// ErrInvalidPersona is returned for persona values other than the known ones.
var ErrInvalidPersona = errors.New("invalid persona")

// ParsePersona validates a submitted persona value.
func ParsePersona(s string) (Persona, error) {
	switch p := Persona(s); p {
	case PersonaArticle, PersonaCopywriter:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPersona, s)
	}
}

// WordCount counts whitespace separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// TargetWordCount is 1.25x the competitor length, at least MinArticleWords,
// for articles. Other personas have no target and get 0. Halves round to
// even.
func TargetWordCount(p Persona, competitor string) int {
	if p != PersonaArticle {
		return 0
	}
	n := int(math.RoundToEven(float64(WordCount(competitor)) * 1.25))
	return max(n, MinArticleWords)
}
