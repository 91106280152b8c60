// Package main provides the aggregate command-line tool for turning raw
// row exports into customer aggregates.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"orderlens/internal/analytics"
	"orderlens/internal/loader"
)

func main() {
	inputPath := flag.String("input", "", "Path to input rows file (e.g., data.json)")
	outputPath := flag.String("output", "", "Path to output customers JSON file")
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Usage: aggregate -input <rows.json> -output <customers.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	content, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", *inputPath, len(content))

	rows, err := loader.DecodeRows(content)
	if err != nil {
		log.Fatalf("Error decoding rows: %v\n", err)
	}

	fmt.Printf("🔍 Decoded %d raw rows\n", len(rows))

	report := analytics.Aggregate(rows)

	fmt.Printf("📊 Aggregated: %d customers, %d orders, revenue %.2f\n",
		report.CustomerCount(), report.TotalOrders, report.TotalRevenue)

	dropped := len(rows) - report.TotalOrders
	if dropped > 0 {
		fmt.Printf("⚠️  Dropped %d rows without a phone number\n", dropped)
	}

	// Ensure directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v\n", err)
	}

	if err := os.WriteFile(*outputPath, jsonData, 0644); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}
