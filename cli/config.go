package cli

import (
	"time"

	"github.com/shopspring/decimal"

	"shopcart/domain"
	"shopcart/pricing"
)

// Config describes a checkout session: the catalog and the promotion
// tables. A config file loaded through viper replaces sections
// wholesale; anything it leaves out keeps the built-in defaults.
type Config struct {
	Catalog    []ProductConfig   `mapstructure:"catalog"`
	BOGO       []int             `mapstructure:"bogo"`
	FlashSales []FlashSaleConfig `mapstructure:"flash_sales"`
	Tiers      []TierConfig      `mapstructure:"tiers"`
}

// ProductConfig is one catalog row as it appears in a config file.
type ProductConfig struct {
	ID    int     `mapstructure:"id"`
	Name  string  `mapstructure:"name"`
	Price float64 `mapstructure:"price"`
}

// FlashSaleConfig is one time-windowed promotion as configured.
type FlashSaleConfig struct {
	ProductID int       `mapstructure:"product_id"`
	Start     time.Time `mapstructure:"start"`
	End       time.Time `mapstructure:"end"`
	Kind      string    `mapstructure:"kind"`
	Value     float64   `mapstructure:"value"`
}

// TierConfig is one row of the subtotal discount table. Percent is a
// fraction, e.g. 0.15 for 15% off.
type TierConfig struct {
	Threshold float64 `mapstructure:"threshold"`
	Percent   float64 `mapstructure:"percent"`
}

// defaultConfig is the demo storefront: the six-product catalog, a BOGO
// on the mouse, a season-long 20% laptop flash sale and two subtotal
// tiers.
func defaultConfig() Config {
	return Config{
		Catalog: []ProductConfig{
			{ID: 1, Name: "Laptop", Price: 999.99},
			{ID: 2, Name: "Mouse", Price: 25.50},
			{ID: 3, Name: "Keyboard", Price: 75.00},
			{ID: 4, Name: "Monitor", Price: 300.00},
			{ID: 5, Name: "Webcam", Price: 50.00},
			{ID: 6, Name: "Docking Station", Price: 150.00},
		},
		BOGO: []int{2},
		FlashSales: []FlashSaleConfig{
			{
				ProductID: 1,
				Start:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:       time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
				Kind:      string(pricing.SalePercent),
				Value:     0.20,
			},
		},
		Tiers: []TierConfig{
			{Threshold: 200, Percent: 0.15},
			{Threshold: 100, Percent: 0.10},
		},
	}
}

// buildCatalog converts the config rows into a validated catalog.
func buildCatalog(cfg Config) (domain.Catalog, error) {
	products := make([]domain.Product, 0, len(cfg.Catalog))
	for _, p := range cfg.Catalog {
		products = append(products, domain.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: decimal.NewFromFloat(p.Price),
		})
	}
	return domain.NewCatalog(products)
}

// buildEngine converts the promotion sections into a validated engine.
func buildEngine(cfg Config) (*pricing.Engine, error) {
	sales := make([]pricing.FlashSale, 0, len(cfg.FlashSales))
	for _, s := range cfg.FlashSales {
		sales = append(sales, pricing.FlashSale{
			ProductID: s.ProductID,
			Start:     s.Start,
			End:       s.End,
			Kind:      pricing.SaleKind(s.Kind),
			Value:     decimal.NewFromFloat(s.Value),
		})
	}
	registry, err := pricing.NewRegistry(sales)
	if err != nil {
		return nil, err
	}

	tiers := make([]pricing.Tier, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, pricing.Tier{
			Threshold: decimal.NewFromFloat(t.Threshold),
			Percent:   decimal.NewFromFloat(t.Percent),
		})
	}
	return pricing.NewEngine(cfg.BOGO, registry, tiers)
}
