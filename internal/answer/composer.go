package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"weatherinsight/internal/llm"
	"weatherinsight/internal/weather"
)

// User-facing fallback texts. The composer never returns an error; every
// failure maps to one of these.
const (
	textDataUnavailable = "Sorry, the weather data could not be retrieved."
	generationErrFormat = "Error generating the answer: %s"
)

// ForecastResolver is the forecast-resolution capability the composer
// consumes. Satisfied by *weather.Resolver.
type ForecastResolver interface {
	Resolve(ctx context.Context, question string, includeHours bool, hoursBefore, hoursAfter int) (weather.ForecastResult, error)
}

// LanguageDetector reports the language code of a text, "en" on failure.
type LanguageDetector interface {
	Detect(text string) string
}

// Answer is the final user-facing output of the pipeline.
type Answer struct {
	Text string `json:"text"`
}

// Composer renders a resolved forecast into prose in the language of the
// user's question.
type Composer struct {
	resolver ForecastResolver
	llm      llm.Client
	detector LanguageDetector

	// Hour window embedded in the answer around the requested hour.
	hoursBefore int
	hoursAfter  int
}

// NewComposer creates a Composer with the given hour window widths.
func NewComposer(resolver ForecastResolver, client llm.Client, detector LanguageDetector, hoursBefore, hoursAfter int) *Composer {
	return &Composer{
		resolver:    resolver,
		llm:         client,
		detector:    detector,
		hoursBefore: hoursBefore,
		hoursAfter:  hoursAfter,
	}
}

const answerPromptFormat = `You are a friendly AI assistant. Using the following weather data,
create a short, clear, and user-friendly text for the user.

Weather data: %s

Guidelines:
- Respond in the language of the user's question (detected language: %s).
- Summarize the most important information: current weather, temperature, and forecast.
- Focus the description on the time window from %d hours before to %d hours after the requested hour.
- Make the text friendly, readable, and natural.
- Do not return JSON, code, or structured data — only plain text.`

// Compose answers the question. It never returns an error: resolver
// failures yield an apologetic text, model failures an error text.
func (c *Composer) Compose(ctx context.Context, question string) Answer {
	language := c.detector.Detect(question)

	result, err := c.resolver.Resolve(ctx, question, true, c.hoursBefore, c.hoursAfter)
	if err != nil {
		log.Printf("forecast resolution failed: %v", err)
		return Answer{Text: textDataUnavailable}
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("marshal forecast result: %v", err)
		return Answer{Text: textDataUnavailable}
	}

	prompt := fmt.Sprintf(answerPromptFormat, data, language, c.hoursBefore, c.hoursAfter)

	text, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		return Answer{Text: fmt.Sprintf(generationErrFormat, err)}
	}

	return Answer{Text: strings.TrimSpace(text)}
}
