// Package cli provides the Cobra-based CLI for checkout-cli.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shopcart/checkout"
	"shopcart/domain"
	"shopcart/pricing"
	"shopcart/recommend"
	"shopcart/store"
)

var (
	rootCmd = &cobra.Command{
		Use:   "checkout-cli",
		Short: "A retail checkout simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests and shell mode to reuse the session
			if svc != nil {
				return nil
			}

			if cfgFile := viper.GetString("config"); cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			lvlStr := strings.ToLower(viper.GetString("log-level"))
			lvl := slog.LevelInfo
			switch lvlStr {
			case "debug":
				lvl = slog.LevelDebug
			case "warn", "warning":
				lvl = slog.LevelWarn
			case "error":
				lvl = slog.LevelError
			}
			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
			))

			cfg := defaultConfig()
			hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeHookFunc(time.RFC3339),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			))
			if err := viper.Unmarshal(&cfg, hook); err != nil {
				return err
			}
			return startSession(cfg)
		},
	}

	// session state, package-level so that shell mode and tests share it
	catalog      domain.Catalog
	catalogStore domain.CatalogStore
	cart         *domain.Cart
	engine       *pricing.Engine
	svc          *checkout.Service
)

// startSession validates the configuration and wires the session state.
// Configuration errors here are fatal: nothing has run yet.
func startSession(cfg Config) error {
	var err error
	catalog, err = buildCatalog(cfg)
	if err != nil {
		return err
	}
	engine, err = buildEngine(cfg)
	if err != nil {
		return err
	}
	catalogStore = store.NewCatalogStore(catalog)
	cart = domain.NewCart()
	svc = checkout.NewService(engine, recommend.NewHistory(), viper.GetInt("limit"))
	return nil
}

// effectiveNow resolves the evaluation time for flash sales: the --now
// flag when set, the wall clock otherwise. The core never reads the
// clock itself.
func effectiveNow() (time.Time, error) {
	if raw := viper.GetString("now"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --now value %q: %w", raw, err)
		}
		return t, nil
	}
	return time.Now(), nil
}

func productName(id int) string {
	p, ok := catalog.Get(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return p.Name
}

func printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println("No products available")
		return
	}
	for _, p := range products {
		fmt.Printf("%d | %s | $%s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
}

func printBreakdown(b pricing.Breakdown) {
	fmt.Printf("Subtotal:       $%s\n", b.Subtotal.StringFixed(2))
	for _, d := range b.Details {
		fmt.Printf("  %s %s\n", productName(d.ProductID), d.Note)
	}
	fmt.Printf("Item discounts: -$%s\n", b.ItemDiscount.StringFixed(2))
	if b.TierPercent.IsPositive() {
		pct := b.TierPercent.Mul(decimal.NewFromInt(100))
		fmt.Printf("Tier discount (%s%%): -$%s\n", pct.StringFixed(0), b.TierDiscount.StringFixed(2))
	}
	fmt.Printf("Total discount: -$%s\n", b.TotalDiscount.StringFixed(2))
	fmt.Printf("Final total:    $%s\n", b.Total.StringFixed(2))
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("checkout> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().String("now", "", "evaluation time for flash sales (RFC3339, default wall clock)")
	rootCmd.PersistentFlags().Int("limit", recommend.DefaultLimit, "max recommendations per checkout")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("now", rootCmd.PersistentFlags().Lookup("now"))
	viper.BindPFlag("limit", rootCmd.PersistentFlags().Lookup("limit"))
	viper.SetEnvPrefix("CHECKOUT")
	viper.AutomaticEnv()

	// list
	var lKeyword, lSort, lOrder, lOutput string
	var lMin, lMax float64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			var minPtr, maxPtr *decimal.Decimal
			if cmd.Flags().Changed("min-price") {
				d := decimal.NewFromFloat(lMin)
				minPtr = &d
			}
			if cmd.Flags().Changed("max-price") {
				d := decimal.NewFromFloat(lMax)
				maxPtr = &d
			}
			out, err := catalogStore.List(context.Background(), domain.ListFilter{
				Keyword:  lKeyword,
				MinPrice: minPtr,
				MaxPrice: maxPtr,
				SortBy:   lSort,
				Order:    lOrder,
			})
			if err != nil {
				return err
			}
			if lOutput == "json" {
				b, _ := json.MarshalIndent(out, "", "  ")
				fmt.Println(string(b))
				return nil
			}
			printProducts(out)
			return nil
		},
	}
	listCmd.Flags().StringVar(&lKeyword, "keyword", "", "name keyword")
	listCmd.Flags().Float64Var(&lMin, "min-price", 0, "min price")
	listCmd.Flags().Float64Var(&lMax, "max-price", 0, "max price")
	listCmd.Flags().StringVar(&lSort, "sort-by", "", "sort field: name|price")
	listCmd.Flags().StringVar(&lOrder, "order", "asc", "sort order")
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	rootCmd.AddCommand(listCmd)

	// search
	searchCmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search products by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := catalogStore.List(context.Background(), domain.ListFilter{Keyword: args[0]})
			if err != nil {
				return err
			}
			printProducts(out)
			return nil
		},
	}
	rootCmd.AddCommand(searchCmd)

	// add
	var addQty int
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if err := cart.Add(catalog, id, addQty); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			slog.Info("item added", "product_id", id, "quantity", addQty)
			fmt.Printf("Added %d x %s to cart.\n", addQty, productName(id))
			return nil
		},
	}
	addCmd.Flags().IntVar(&addQty, "quantity", 1, "quantity")
	rootCmd.AddCommand(addCmd)

	// remove
	var removeQty int
	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if err := cart.Remove(id, removeQty); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return nil
			}
			slog.Info("item removed", "product_id", id, "quantity", removeQty)
			if remaining := cart.Quantity(id); remaining > 0 {
				fmt.Printf("Removed %d x %s from cart. (%d remaining)\n", removeQty, productName(id), remaining)
			} else {
				fmt.Printf("Removed %s from cart.\n", productName(id))
			}
			return nil
		},
	}
	removeCmd.Flags().IntVar(&removeQty, "quantity", 1, "quantity")
	rootCmd.AddCommand(removeCmd)

	// cart
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cart.IsEmpty() {
				fmt.Println("Your cart is empty.")
				return nil
			}
			for _, id := range cart.ProductIDs() {
				p, _ := catalog.Get(id)
				qty := cart.Quantity(id)
				lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
				fmt.Printf("- %s (ID: %d): %d x $%s = $%s\n",
					p.Name, id, qty, p.Price.StringFixed(2), lineTotal.StringFixed(2))
			}
			fmt.Printf("Total items in cart: %d\n", cart.TotalItems())
			return nil
		},
	}
	rootCmd.AddCommand(cartCmd)

	// total
	var tOutput string
	totalCmd := &cobra.Command{
		Use:   "total",
		Short: "Show the cart price breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := effectiveNow()
			if err != nil {
				return err
			}
			b := engine.Price(cart.Lines(), catalog.Lookup(), now)
			if tOutput == "json" {
				out, _ := json.MarshalIndent(b, "", "  ")
				fmt.Println(string(out))
				return nil
			}
			printBreakdown(b)
			return nil
		},
	}
	totalCmd.Flags().StringVar(&tOutput, "output", "", "output format")
	rootCmd.AddCommand(totalCmd)

	// recommend
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Preview recommendations for the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := svc.Preview(cart)
			if len(ids) == 0 {
				fmt.Println("No recommendations yet.")
				return nil
			}
			for _, id := range ids {
				fmt.Printf("- %s (ID: %d)\n", productName(id), id)
			}
			return nil
		},
	}
	rootCmd.AddCommand(recommendCmd)

	// checkout
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Complete the purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := effectiveNow()
			if err != nil {
				return err
			}
			if cart.IsEmpty() {
				fmt.Println("Your cart is empty. Nothing to check out.")
				fmt.Println("Final total:    $0.00")
				return nil
			}
			start := time.Now()
			receipt, err := svc.Checkout(context.Background(), cart, catalog.Lookup(), now)
			if err != nil {
				slog.Error("checkout failed", "error", err)
				return err
			}
			slog.Info(
				"checkout completed",
				"receipt_id", receipt.ID.String(),
				"total", receipt.Breakdown.Total.StringFixed(2),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			printBreakdown(receipt.Breakdown)
			fmt.Printf("Receipt: %s\n", receipt.ID)
			if len(receipt.Recommendations) > 0 {
				fmt.Println("Customers also bought:")
				for _, id := range receipt.Recommendations {
					fmt.Printf("- %s (ID: %d)\n", productName(id), id)
				}
			}
			return nil
		},
	}
	rootCmd.AddCommand(checkoutCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
