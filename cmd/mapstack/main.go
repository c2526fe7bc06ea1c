// mapstack CLI - Map Platform Stack Advisor
//
// Usage:
//   mapstack estimate --catalog catalog.json --selections selections.json --require routing --volume 250000
//   mapstack coverage --catalog catalog.json --selections selections.json --require routing,geocoding
//   mapstack catalog --catalog catalog.json --target backend
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"mapstack-cost/internal/coverage"
	"mapstack-cost/internal/environment"
	"mapstack-cost/internal/pricing"
	"mapstack-cost/internal/refdata"
	"mapstack-cost/internal/selection"
	"mapstack-cost/pkg/api"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "mapstack",
		Usage:   "Map Platform Stack Advisor - capability coverage and tiered cost derivation for vendor selections",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"MAPSTACK_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "refdata",
				Value:   "refdata.yaml",
				Usage:   "Path to reference data (pricing profiles, classifier tokens)",
				EnvVars: []string{"MAPSTACK_REFDATA"},
			},
			&cli.StringFlag{
				Name:    "refdata-source",
				Value:   "file",
				Usage:   "Reference data source (file, clickhouse)",
				EnvVars: []string{"MAPSTACK_REFDATA_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Value:   "localhost",
				Usage:   "ClickHouse host",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				Usage:   "ClickHouse native port",
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "mapstack",
				Usage:   "ClickHouse database",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				Usage:   "ClickHouse user",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Value:   "",
				Usage:   "ClickHouse password",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
		},

		Before: func(c *cli.Context) error {
			level, err := log.ParseLevel(c.String("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			log.SetLevel(level)
			log.SetOutput(os.Stderr)
			return nil
		},

		Commands: []*cli.Command{
			estimateCommand(),
			coverageCommand(),
			catalogCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inputFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "catalog",
			Aliases:  []string{"c"},
			Usage:    "Path to catalog snapshot JSON",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "selections",
			Aliases:  []string{"s"},
			Usage:    "Path to persisted selection record JSON",
			Required: required,
		},
		&cli.StringSliceFlag{
			Name:    "require",
			Aliases: []string{"r"},
			Usage:   "Required capability id (repeatable)",
		},
		&cli.StringFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Value:   "backend",
			Usage:   "Platform target (mobile, backend)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "table",
			Usage:   "Output format (table, json, markdown)",
		},
	}
}

// =============================================================================
// ESTIMATE COMMAND
// =============================================================================

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Derive capability coverage and the monthly bill for a selection",
		Flags: append(inputFlags(true),
			&cli.Int64Flag{
				Name:    "volume",
				Aliases: []string{"v"},
				Value:   100000,
				Usage:   "Projected monthly volume (requests/sessions/assets)",
			},
		),
		Action: runEstimate,
	}
}

func runEstimate(c *cli.Context) error {
	items, required, err := loadInputs(c)
	if err != nil {
		return err
	}

	report := coverage.Compute(items, required)

	profiles, err := loadProfiles(c)
	if err != nil {
		return err
	}
	resolver := pricing.NewResolver(profiles)
	summary, err := pricing.Aggregate(items, c.Int64("volume"), resolver)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"items":    len(items),
		"required": len(required),
		"quote_id": summary.QuoteID,
	}).Debug("Estimation complete")

	switch c.String("format") {
	case "json":
		err = outputJSON(&report, summary)
	case "markdown":
		err = outputMarkdown(&report, summary)
	default:
		err = outputTable(&report, summary)
	}
	if err != nil {
		return err
	}

	// Incomplete required coverage is the deny signal for CI callers.
	if !report.AllRequiredCovered {
		os.Exit(2)
	}
	return nil
}

// =============================================================================
// COVERAGE COMMAND
// =============================================================================

func coverageCommand() *cli.Command {
	return &cli.Command{
		Name:   "coverage",
		Usage:  "Derive capability coverage only",
		Flags:  inputFlags(true),
		Action: runCoverage,
	}
}

func runCoverage(c *cli.Context) error {
	items, required, err := loadInputs(c)
	if err != nil {
		return err
	}

	report := coverage.Compute(items, required)

	if c.String("format") == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printCoverage(&report)
	}

	if !report.AllRequiredCovered {
		os.Exit(2)
	}
	return nil
}

// =============================================================================
// CATALOG COMMAND
// =============================================================================

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:   "catalog",
		Usage:  "Show the catalog filtered and sorted for a platform target",
		Flags:  inputFlags(false),
		Action: runCatalog,
	}
}

func runCatalog(c *cli.Context) error {
	catalog, err := refdata.LoadCatalog(c.String("catalog"))
	if err != nil {
		return err
	}
	tokens, err := loadTokens(c)
	if err != nil {
		return err
	}

	classifier := environment.NewClassifierWithTokens(tokens.SDK, tokens.API)
	target := api.Target(c.String("target"))
	categories := classifier.FilterForTarget(catalog.Categories, target)

	if c.String("format") == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(categories)
	}

	for _, cat := range categories {
		marker := ""
		if cat.Required {
			marker = " (required)"
		}
		fmt.Printf("%s%s\n", cat.Name, marker)
		for _, item := range cat.Items {
			fmt.Printf("  %-28s %-12s %-8s relevance=%.2f\n",
				item.Name, item.Vendor, classifier.Classify(item), item.Relevance)
		}
	}
	return nil
}

// =============================================================================
// INPUT LOADING
// =============================================================================

func loadInputs(c *cli.Context) ([]api.CatalogItem, []string, error) {
	catalog, err := refdata.LoadCatalog(c.String("catalog"))
	if err != nil {
		return nil, nil, err
	}

	raw, err := refdata.LoadSelections(c.String("selections"))
	if err != nil {
		return nil, nil, err
	}

	state := selection.DecodeState(raw)
	target := api.Target(c.String("target"))
	sel := selection.Selected(state, target)

	log.WithFields(log.Fields{
		"mode":       state.Mode,
		"target":     target,
		"categories": len(sel),
		"items":      sel.Count(),
	}).Debug("Selections normalized")

	return catalog.SelectedItems(sel), c.StringSlice("require"), nil
}

func loadProfiles(c *cli.Context) ([]api.PricingProfile, error) {
	if c.String("refdata-source") == "clickhouse" {
		store, err := refdata.NewClickHouseStore(&refdata.ClickHouseConfig{
			Host:     c.String("clickhouse-host"),
			Port:     c.Int("clickhouse-port"),
			Database: c.String("clickhouse-database"),
			Username: c.String("clickhouse-user"),
			Password: c.String("clickhouse-password"),
		})
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadProfiles(context.Background())
	}
	return refdata.NewFileSource(c.String("refdata")).LoadProfiles(context.Background())
}

func loadTokens(c *cli.Context) (refdata.TokenSet, error) {
	// Classifier tokens only live in the file source; the ClickHouse
	// store carries pricing profiles alone.
	if c.String("refdata-source") != "file" {
		return refdata.TokenSet{}, nil
	}
	data, err := refdata.NewFileSource(c.String("refdata")).Load()
	if err != nil {
		return refdata.TokenSet{}, err
	}
	return data.Tokens, nil
}

// =============================================================================
// OUTPUT FORMATTERS
// =============================================================================

type jsonOutput struct {
	Coverage *api.CoverageReport `json:"coverage"`
	Pricing  *api.CostSummary    `json:"pricing"`
}

func outputJSON(report *api.CoverageReport, summary *api.CostSummary) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{Coverage: report, Pricing: summary})
}

func outputTable(report *api.CoverageReport, summary *api.CostSummary) error {
	printCoverage(report)

	fmt.Println()
	fmt.Println("MONTHLY COST ESTIMATE")
	fmt.Printf("  Quote: %s  Volume: %d\n", summary.QuoteID, summary.MonthlyVolume)
	fmt.Println()
	for _, line := range summary.Lines {
		switch {
		case line.ContactSales:
			fmt.Printf("  %-28s %-12s %s\n", line.ItemName, line.Vendor, "contact sales")
		case line.Unavailable:
			fmt.Printf("  %-28s %-12s %s\n", line.ItemName, line.Vendor, "pricing unavailable")
		default:
			suffix := ""
			if line.Origin == api.OriginEstimate {
				suffix = " (estimate)"
			}
			fmt.Printf("  %-28s %-12s $%s%s\n", line.ItemName, line.Vendor, line.MonthlyCost.StringFixed(2), suffix)
		}
	}
	fmt.Println()
	for _, sub := range summary.VendorSubtotals {
		fmt.Printf("  %-41s $%s\n", sub.Vendor+" subtotal", sub.MonthlyCost.StringFixed(2))
	}
	fmt.Printf("  %-41s $%s\n", "TOTAL", summary.GrandTotal.StringFixed(2))

	if summary.HasContactSales {
		fmt.Println("  Note: contact-sales items are excluded from the total")
	}
	if summary.HasPricingUnavailable {
		fmt.Println("  Note: some items could not be priced")
	}
	if summary.HasEstimates {
		fmt.Println("  Note: total includes estimated (non-published) pricing")
	}
	return nil
}

func printCoverage(report *api.CoverageReport) {
	fmt.Println("CAPABILITY COVERAGE")
	if len(report.Required) == 0 {
		fmt.Println("  No required capabilities (trivially covered)")
	}
	for _, cc := range report.Required {
		status := "MISSING"
		if cc.Covered {
			status = "covered"
		}
		fmt.Printf("  %-24s %-8s %v\n", cc.Capability, status, cc.CoveringItems)
	}
	if report.AllRequiredCovered {
		fmt.Println("  All required capabilities covered")
	} else {
		fmt.Printf("  Uncovered: %v\n", report.Uncovered())
	}
	for _, cc := range report.Optional {
		fmt.Printf("  bonus: %-17s %v\n", cc.Capability, cc.CoveringItems)
	}
}

func outputMarkdown(report *api.CoverageReport, summary *api.CostSummary) error {
	fmt.Println("## Stack Estimate")
	fmt.Println()
	fmt.Println("| Capability | Covered | Items |")
	fmt.Println("|------------|---------|-------|")
	for _, cc := range report.Required {
		covered := "no"
		if cc.Covered {
			covered = "yes"
		}
		fmt.Printf("| %s | %s | %v |\n", cc.Capability, covered, cc.CoveringItems)
	}
	fmt.Println()
	fmt.Println("| Item | Vendor | Monthly Cost |")
	fmt.Println("|------|--------|--------------|")
	for _, line := range summary.Lines {
		cost := "$" + line.MonthlyCost.StringFixed(2)
		if line.ContactSales {
			cost = "contact sales"
		} else if line.Unavailable {
			cost = "unavailable"
		}
		fmt.Printf("| %s | %s | %s |\n", line.ItemName, line.Vendor, cost)
	}
	fmt.Println()
	fmt.Printf("**Total: $%s/month**\n", summary.GrandTotal.StringFixed(2))
	return nil
}
