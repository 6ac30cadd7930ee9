package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"weatherinsight/internal/llm"
)

// Intent is the structured reading of a user question: which city, which
// calendar day, and optionally which hour the user is asking about. It is a
// request-scoped value; City is empty when the question names no city, and
// Hour is nil when it names no usable time of day.
type Intent struct {
	City         string
	TargetDate   time.Time
	Hour         *int
	ForecastDays int
}

// Extractor turns a free-text question into an Intent by prompting the
// language model and decoding the JSON fragment from its reply.
//
// Extract never fails hard: on any model or decode failure it returns a
// fully usable default intent together with a diagnostic error, so callers
// can log the cause but continue the pipeline.
type Extractor struct {
	llm         llm.Client
	defaultCity string
}

// NewExtractor creates an Extractor. defaultCity is substituted only on the
// hard-failure path (model or decode error); a successful extraction that
// names no city leaves Intent.City empty so the resolver can try
// geolocation first.
func NewExtractor(client llm.Client, defaultCity string) *Extractor {
	return &Extractor{
		llm:         client,
		defaultCity: defaultCity,
	}
}

// rawIntent mirrors the three-field JSON object the model is instructed to
// emit. Pointer fields distinguish "absent" from zero values.
type rawIntent struct {
	City         *string `json:"city"`
	ForecastDate *string `json:"forecast_date"`
	Hour         *int    `json:"hour"`
}

const extractionPromptFormat = `You are an assistant specialized in extracting structured information from natural language.
Extract from the text:

1. The city mentioned, formatted exactly so it can be used as a query for api.weatherapi.com.
2. The date the user is referring to.
   - If the user writes relative expressions like "tomorrow", "day after tomorrow", "in 3 days", compute the actual date based on today.
   - Today is %s.
3. The hour (0-23) if specified; else null.

Return a JSON dictionary with exactly three keys:
{
    "city": "<city_name_for_weatherapi>",
    "forecast_date": "<YYYY-MM-DD>",
    "hour": <0-23 or null>
}

Text: "%s"`

// Extract prompts the model with the question and today's date and parses
// the reply. The returned Intent is always populated; the error, when
// non-nil, only explains why defaults were substituted.
func (e *Extractor) Extract(ctx context.Context, question string, today time.Time) (Intent, error) {
	fallback := Intent{
		City:         e.defaultCity,
		TargetDate:   today,
		ForecastDays: 1,
	}

	prompt := fmt.Sprintf(extractionPromptFormat, FormatDate(today), question)

	reply, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		return fallback, fmt.Errorf("intent extraction call failed: %w", err)
	}

	raw, err := decodeIntent(reply)
	if err != nil {
		return fallback, fmt.Errorf("intent extraction parse failed: %w", err)
	}

	var out Intent

	// A null or absent city stays empty here; the resolver routes it
	// through geolocation before falling back to the default city.
	if raw.City != nil {
		out.City = strings.TrimSpace(*raw.City)
	}

	// An hour outside [0,23] is treated as absent so the resolver's
	// current-hour fallback keeps the post-resolution invariant.
	if raw.Hour != nil && *raw.Hour >= 0 && *raw.Hour <= 23 {
		out.Hour = raw.Hour
	}

	// Date defaults to today when the model yields nothing parseable.
	out.TargetDate = today
	if raw.ForecastDate != nil {
		if target, perr := ParseDate(*raw.ForecastDate); perr == nil {
			out.TargetDate = target
		}
	}
	out.ForecastDays = ForecastDays(out.TargetDate, today)

	return out, nil
}

// decodeIntent locates the first balanced brace-delimited fragment in the
// model's reply and unmarshals it. Models often wrap the JSON in prose or
// markdown fences, so scanning for the fragment is more robust than
// unmarshalling the reply as a whole.
func decodeIntent(reply string) (rawIntent, error) {
	var raw rawIntent

	fragment, ok := firstJSONFragment(reply)
	if !ok {
		return raw, fmt.Errorf("no JSON object found in model reply")
	}

	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return raw, fmt.Errorf("decode model reply: %w", err)
	}
	return raw, nil
}

// firstJSONFragment returns the first balanced {...} substring of s. Brace
// characters inside JSON strings are skipped.
func firstJSONFragment(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
