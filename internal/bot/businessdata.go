package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/rs/zerolog"
)

// BusinessDataBot answers questions about products, stock and sales activity
type BusinessDataBot struct {
	products domain.ProductRepository
	sales    domain.SaleRepository
	logger   zerolog.Logger
}

// NewBusinessDataBot creates the business data handler
func NewBusinessDataBot(products domain.ProductRepository, sales domain.SaleRepository, logger zerolog.Logger) *BusinessDataBot {
	return &BusinessDataBot{
		products: products,
		sales:    sales,
		logger:   logger.With().Str("bot", "business_data").Logger(),
	}
}

// Handle answers product and sales questions for the asked period
func (b *BusinessDataBot) Handle(ctx context.Context, req Request) (string, error) {
	text := strings.ToLower(req.Message)
	period := ParsePeriod(req.Message, time.Now())

	switch {
	case strings.Contains(text, "rupture") || strings.Contains(text, "stock"):
		return b.stockReport(ctx)
	case strings.Contains(text, "client"):
		return b.customerReport(ctx, period)
	case strings.Contains(text, "vendus") || strings.Contains(text, "meilleur") || strings.Contains(text, "top") || strings.Contains(text, "populaire"):
		return b.topProductsReport(ctx, period)
	default:
		return b.salesReport(ctx, period)
	}
}

func (b *BusinessDataBot) stockReport(ctx context.Context) (string, error) {
	out, err := b.products.ListOutOfStock(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load stock: %w", err)
	}
	if len(out) == 0 {
		return "Bonne nouvelle : aucun produit n'est en rupture de stock.", nil
	}

	names := make([]string, 0, len(out))
	for _, p := range out {
		names = append(names, p.Name)
	}
	return fmt.Sprintf("%d produit(s) en rupture de stock : %s.", len(out), strings.Join(names, ", ")), nil
}

func (b *BusinessDataBot) customerReport(ctx context.Context, period Period) (string, error) {
	sales, err := b.sales.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load sales: %w", err)
	}

	customers := make(map[string]struct{})
	anonymous := 0
	for _, sale := range sales {
		if sale.Customer == "" {
			anonymous++
			continue
		}
		customers[sale.Customer] = struct{}{}
	}

	served := len(customers) + anonymous
	return fmt.Sprintf("Vous avez servi %d client(s) %s (%d vente(s) au total).", served, period.Label, len(sales)), nil
}

func (b *BusinessDataBot) topProductsReport(ctx context.Context, period Period) (string, error) {
	sales, err := b.sales.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load sales: %w", err)
	}
	if len(sales) == 0 {
		return fmt.Sprintf("Aucune vente enregistrée pour %s.", period.Label), nil
	}

	quantities := make(map[string]int)
	for _, sale := range sales {
		for _, item := range sale.Items {
			quantities[item.ProductName] += item.Quantity
		}
	}

	type ranked struct {
		name string
		qty  int
	}
	ranking := make([]ranked, 0, len(quantities))
	for name, qty := range quantities {
		ranking = append(ranking, ranked{name, qty})
	}
	sort.Slice(ranking, func(i, j int) bool { return ranking[i].qty > ranking[j].qty })

	top := ranking
	if len(top) > 3 {
		top = top[:3]
	}

	parts := make([]string, 0, len(top))
	for _, r := range top {
		parts = append(parts, fmt.Sprintf("%s (%d)", r.name, r.qty))
	}
	return fmt.Sprintf("Vos produits les plus vendus %s : %s.", period.Label, strings.Join(parts, ", ")), nil
}

func (b *BusinessDataBot) salesReport(ctx context.Context, period Period) (string, error) {
	sales, err := b.sales.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return "", fmt.Errorf("failed to load sales: %w", err)
	}

	var total float64
	for _, sale := range sales {
		total += sale.TotalAmount
	}
	return fmt.Sprintf("%d vente(s) enregistrée(s) %s pour un total de %.2f FCFA.", len(sales), period.Label, total), nil
}
