// Package main provides the fetch command-line tool for dumping a sheet's
// raw rows to a local JSON file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"orderlens/internal/loader"
	"orderlens/internal/models"
)

func main() {
	sheetRef := flag.String("sheet", "", "Google Sheet ID or full URL")
	sourceURL := flag.String("url", "", "URL of a plain JSON rows export")
	outputPath := flag.String("output", "", "Path to output rows JSON file")
	flag.Parse()

	if (*sheetRef == "" && *sourceURL == "") || *outputPath == "" {
		fmt.Println("Usage: fetch -sheet <id-or-url> -output <rows.json>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := loader.NewClient()

	startTime := time.Now()

	var (
		rows []models.RawRecord
		err  error
	)

	if *sheetRef != "" {
		rows, err = client.LoadSheet(*sheetRef)
	} else {
		rows, err = client.LoadURL(*sourceURL)
	}

	if err != nil {
		log.Fatalf("Error fetching rows: %v\n", err)
	}

	fmt.Printf("✅ Fetched %d rows in %v\n", len(rows), time.Since(startTime))

	// Ensure directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Fatalf("Error creating directory: %v\n", mkdirErr)
	}

	jsonData, err := json.MarshalIndent(map[string]any{"rows": rows}, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v\n", err)
	}

	if err := os.WriteFile(*outputPath, jsonData, 0644); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved to: %s\n", *outputPath)
}
