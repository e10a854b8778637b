package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapIntent(t *testing.T) {
	tests := []struct {
		label string
		want  Intent
	}{
		{"accounting", IntentAccounting},
		{"comptable", IntentAccounting},
		{"Comptabilité", IntentAccounting},
		{"finance", IntentAccounting},
		{"business-data", IntentBusinessData},
		{"business_data", IntentBusinessData},
		{"ventes", IntentBusinessData},
		{"marketing", IntentMarketing},
		{"publicité", IntentMarketing},
		{"hr", IntentHR},
		{"RH", IntentHR},
		{"ressources humaines", IntentHR},
		{"info", IntentInfo},
		{"aide", IntentInfo},
		{"fallback", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, MapIntent(tt.label))
		})
	}
}

func TestMapIntent_NormalizesWhitespaceAndQuotes(t *testing.T) {
	assert.Equal(t, IntentAccounting, MapIntent("  Accounting  "))
	assert.Equal(t, IntentMarketing, MapIntent(`"marketing"`))
	assert.Equal(t, IntentHR, MapIntent("hr."))
}

func TestMapIntent_TotalOverArbitraryInput(t *testing.T) {
	// Everything outside the closed label set collapses to fallback
	inputs := []string{
		"",
		"weather",
		"accounting marketing",
		"I think this is about accounting",
		"🤖",
		"\n\t",
		"unknown-category",
	}
	for _, input := range inputs {
		assert.Equal(t, IntentFallback, MapIntent(input), "input %q", input)
	}
}
