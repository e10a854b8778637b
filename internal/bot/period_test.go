package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	t.Run("today", func(t *testing.T) {
		p := ParsePeriod("Quel est mon chiffre d'affaires aujourd'hui ?", now)
		assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("yesterday", func(t *testing.T) {
		p := ParsePeriod("Combien de ventes hier ?", now)
		assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("this week starts monday", func(t *testing.T) {
		p := ParsePeriod("Combien de clients ai-je servis cette semaine ?", now)
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("week on sunday stays in same week", func(t *testing.T) {
		sunday := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
		p := ParsePeriod("cette semaine", sunday)
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), p.Start)
	})

	t.Run("this month", func(t *testing.T) {
		p := ParsePeriod("Mes dépenses ce mois", now)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("this year", func(t *testing.T) {
		p := ParsePeriod("Bilan de cette année", now)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.End)
	})

	t.Run("default is current month", func(t *testing.T) {
		p := ParsePeriod("Quel est mon chiffre d'affaires ?", now)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Start)
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), p.End)
	})
}
