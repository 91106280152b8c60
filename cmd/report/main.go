// Package main provides the unified report command that combines loading,
// aggregating, and rendering.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"orderlens/internal/analytics"
	"orderlens/internal/config"
	"orderlens/internal/formatter"
	"orderlens/internal/loader"
	"orderlens/internal/logger"
	"orderlens/pkg/metadata"
)

func main() {
	// 1. Define Command-Line Flags
	// ---------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	sheetRef := flag.String("sheet", "", "Google Sheet ID or full URL")
	sourceURL := flag.String("url", "", "URL of a plain JSON rows export")
	sourceFile := flag.String("file", "", "Path to a local JSON rows export")
	outputPath := flag.String("output", "", "Output path (default: stdout)")
	format := flag.String("format", "", "Output format: markdown or json")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	// 2. Resolve Configuration
	// ------------------------
	cfg := config.DefaultConfig()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *format != "" {
		cfg.Report.Output.Format = *format
	}

	if *outputPath != "" {
		cfg.Report.Output.Path = *outputPath
	}

	if *logLevel != "" {
		cfg.Report.Logging.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Report.Logging.Level)

	source := resolveSource(cfg, *sheetRef, *sourceURL, *sourceFile)
	if source == nil {
		log.Error("No source given: use -sheet, -url, -file, or a config with an enabled source")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log.Info("🚀 Starting report pipeline", "source", source.Location())

	// 3. Ingestion (Loader)
	// ---------------------
	log.Info("Phase 1: Ingestion (Loading rows)...")

	startTime := time.Now()

	client := loader.NewClientWithFetcher(
		loader.NewFetcherWithConfig(&cfg.Report.Retry, 4096),
	)

	rows, err := client.LoadSource(*source)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Load failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Loaded %d rows in %v", len(rows), time.Since(startTime)))

	// 4. Processing (Aggregation)
	// ---------------------------
	log.Info("Phase 2: Processing (Normalization & Aggregation)...")

	processStart := time.Now()

	report := analytics.Aggregate(rows)

	log.Info(fmt.Sprintf("✅ Aggregated %d orders across %d customers in %v",
		report.TotalOrders, report.CustomerCount(), time.Since(processStart)))

	// 5. Rendering
	// ------------
	log.Info("Phase 3: Rendering...")

	var output []byte

	switch cfg.Report.Output.Format {
	case "json":
		output, err = formatter.RenderJSON(report, cfg.Report.Output.PrettyPrint)
		if err != nil {
			log.Error(fmt.Sprintf("❌ Rendering failed: %v", err))
			os.Exit(1)
		}
	default:
		rendered := formatter.RenderMarkdown(report, formatter.Options{
			Source:       source.Location(),
			Currency:     cfg.Report.Display.Currency,
			TopCustomers: cfg.Report.Display.TopCustomers,
		})

		if cfg.Report.Output.Sign {
			rendered = metadata.Sign(rendered, source.Location(), len(rows))
		}

		output = []byte(rendered)
	}

	if cfg.Report.Output.Path == "" {
		fmt.Println(string(output))
	} else {
		if mkdirErr := os.MkdirAll(filepath.Dir(cfg.Report.Output.Path), 0755); mkdirErr != nil {
			log.Error(fmt.Sprintf("❌ Failed to create output directory: %v", mkdirErr))
			os.Exit(1)
		}

		if writeErr := os.WriteFile(cfg.Report.Output.Path, output, 0644); writeErr != nil {
			log.Error(fmt.Sprintf("❌ Failed to write output: %v", writeErr))
			os.Exit(1)
		}

		log.Info(fmt.Sprintf("✅ Saved to: %s", cfg.Report.Output.Path))
	}

	// 6. Final Report
	// ---------------
	log.Info("✨ Pipeline Complete!")
	fmt.Fprintln(os.Stderr, "\n------------------------------------------------")
	fmt.Fprintf(os.Stderr, "📊 Summary\n")
	fmt.Fprintln(os.Stderr, "------------------------------------------------")
	fmt.Fprintf(os.Stderr, "Rows Loaded:     %d\n", len(rows))
	fmt.Fprintf(os.Stderr, "Customers:       %d\n", report.CustomerCount())
	fmt.Fprintf(os.Stderr, "Orders:          %d\n", report.TotalOrders)
	fmt.Fprintf(os.Stderr, "Revenue:         %s%.2f\n", cfg.Report.Display.Currency, report.TotalRevenue)
	fmt.Fprintf(os.Stderr, "Total Duration:  %v\n", time.Since(startTime))
	fmt.Fprintln(os.Stderr, "------------------------------------------------")
}

// resolveSource picks the source: explicit flags win over the first enabled
// config source.
func resolveSource(cfg *config.Config, sheet, url, file string) *config.SourceConfig {
	switch {
	case sheet != "":
		return &config.SourceConfig{Name: "flag", SheetID: sheet, Enabled: true}
	case url != "":
		return &config.SourceConfig{Name: "flag", URL: url, Enabled: true}
	case file != "":
		return &config.SourceConfig{Name: "flag", File: file, Enabled: true}
	}

	enabled := cfg.GetEnabledSources()
	if len(enabled) == 0 {
		return nil
	}

	return &enabled[0]
}
