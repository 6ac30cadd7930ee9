package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	d := NewDetector()

	assert.Equal(t, "en", d.Detect("What's the weather in Cologne tomorrow at 10pm?"))
	assert.Equal(t, "de", d.Detect("Wie wird das Wetter morgen Abend in Köln?"))
	assert.Equal(t, "fr", d.Detect("Quel temps fera-t-il demain soir à Paris ?"))
}

func TestDetectFallsBackToEnglish(t *testing.T) {
	d := NewDetector()

	assert.Equal(t, DefaultCode, d.Detect(""))
	assert.Equal(t, DefaultCode, d.Detect("   "))
}
