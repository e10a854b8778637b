package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/rs/zerolog"
)

// AccountingBot answers finance questions from sales and bookkeeping data
type AccountingBot struct {
	sales      domain.SaleRepository
	accounting domain.AccountingRepository
	logger     zerolog.Logger
}

// NewAccountingBot creates the accounting handler
func NewAccountingBot(sales domain.SaleRepository, accounting domain.AccountingRepository, logger zerolog.Logger) *AccountingBot {
	return &AccountingBot{
		sales:      sales,
		accounting: accounting,
		logger:     logger.With().Str("bot", "accounting").Logger(),
	}
}

// Handle computes revenue, expenses and profit for the asked period
func (b *AccountingBot) Handle(ctx context.Context, req Request) (string, error) {
	period := ParsePeriod(req.Message, time.Now())

	sales, err := b.sales.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load sales: %w", err)
	}

	var revenue float64
	for _, sale := range sales {
		revenue += sale.TotalAmount
	}

	entries, err := b.accounting.ListByPeriod(ctx, "", period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load accounting entries: %w", err)
	}

	var otherIncome, expenses float64
	for _, entry := range entries {
		switch entry.Type {
		case domain.EntryIncome:
			otherIncome += entry.Amount
		case domain.EntryExpense:
			expenses += entry.Amount
		}
	}

	text := strings.ToLower(req.Message)
	totalIncome := revenue + otherIncome
	profit := totalIncome - expenses

	switch {
	case strings.Contains(text, "dépense") || strings.Contains(text, "depense") || strings.Contains(text, "charge"):
		return fmt.Sprintf("Vos dépenses pour %s s'élèvent à %.2f FCFA.", period.Label, expenses), nil
	case strings.Contains(text, "bénéfice") || strings.Contains(text, "benefice") || strings.Contains(text, "profit") || strings.Contains(text, "marge"):
		return fmt.Sprintf(
			"Pour %s : revenus %.2f FCFA, dépenses %.2f FCFA, soit un bénéfice de %.2f FCFA.",
			period.Label, totalIncome, expenses, profit,
		), nil
	default:
		if len(sales) == 0 && otherIncome == 0 {
			return fmt.Sprintf("Aucune vente enregistrée pour %s.", period.Label), nil
		}
		return fmt.Sprintf(
			"Votre chiffre d'affaires pour %s est de %.2f FCFA (%d vente(s)).",
			period.Label, totalIncome, len(sales),
		), nil
	}
}
