package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultCode is used whenever detection fails or is inconclusive.
const DefaultCode = "en"

// Detector identifies the language of a user question so the answer can be
// produced in the same language.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over the languages the service answers in.
// The set is bounded to keep the underlying models small.
func NewDetector() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.German,
		lingua.French,
		lingua.Spanish,
		lingua.Italian,
		lingua.Portuguese,
		lingua.Dutch,
		lingua.Polish,
		lingua.Turkish,
		lingua.Russian,
		lingua.Arabic,
	}

	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of the text's language, or
// DefaultCode when the text is empty or no language can be determined.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultCode
	}

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return DefaultCode
	}

	return strings.ToLower(language.IsoCode639_1().String())
}
