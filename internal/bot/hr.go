package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/rs/zerolog"
)

// HRBot answers questions about employees, schedules and reviews
type HRBot struct {
	employees   domain.EmployeeRepository
	shifts      domain.ShiftRepository
	performance domain.PerformanceRepository
	logger      zerolog.Logger
}

// NewHRBot creates the HR handler
func NewHRBot(employees domain.EmployeeRepository, shifts domain.ShiftRepository, performance domain.PerformanceRepository, logger zerolog.Logger) *HRBot {
	return &HRBot{
		employees:   employees,
		shifts:      shifts,
		performance: performance,
		logger:      logger.With().Str("bot", "hr").Logger(),
	}
}

// Handle answers staffing questions for the asked period
func (b *HRBot) Handle(ctx context.Context, req Request) (string, error) {
	text := strings.ToLower(req.Message)
	period := ParsePeriod(req.Message, time.Now())

	switch {
	case strings.Contains(text, "planning") || strings.Contains(text, "horaire") || strings.Contains(text, "travaille"):
		return b.scheduleReport(ctx, period)
	case strings.Contains(text, "évaluation") || strings.Contains(text, "evaluation") || strings.Contains(text, "performance"):
		return b.performanceReport(ctx)
	default:
		return b.staffReport(ctx)
	}
}

func (b *HRBot) staffReport(ctx context.Context) (string, error) {
	employees, err := b.employees.List(ctx, true)
	if err != nil {
		return "", fmt.Errorf("failed to load employees: %w", err)
	}
	if len(employees) == 0 {
		return "Aucun employé enregistré pour le moment.", nil
	}

	names := make([]string, 0, len(employees))
	for _, e := range employees {
		names = append(names, fmt.Sprintf("%s %s", e.FirstName, e.LastName))
	}
	return fmt.Sprintf("Vous avez %d employé(s) actif(s) : %s.", len(employees), strings.Join(names, ", ")), nil
}

func (b *HRBot) scheduleReport(ctx context.Context, period Period) (string, error) {
	shifts, err := b.shifts.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load shifts: %w", err)
	}
	if len(shifts) == 0 {
		return fmt.Sprintf("Aucun créneau planifié %s.", period.Label), nil
	}

	var totalHours float64
	for _, s := range shifts {
		totalHours += s.End.Sub(s.Start).Hours()
	}
	return fmt.Sprintf("%d créneau(x) planifié(s) %s, soit %.1f heures de travail.", len(shifts), period.Label, totalHours), nil
}

func (b *HRBot) performanceReport(ctx context.Context) (string, error) {
	reviews, err := b.performance.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load reviews: %w", err)
	}
	if len(reviews) == 0 {
		return "Aucune évaluation enregistrée pour le moment.", nil
	}

	var total int
	for _, r := range reviews {
		total += r.Score
	}
	avg := float64(total) / float64(len(reviews))
	return fmt.Sprintf("%d évaluation(s) enregistrée(s), note moyenne de %.1f/5.", len(reviews), avg), nil
}
