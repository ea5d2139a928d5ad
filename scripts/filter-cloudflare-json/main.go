package main

import (
	"context"
	"fmt"
	"os"

	specfilter "github.com/goliatone/go-specfilter"
	pkgfilter "github.com/goliatone/go-specfilter/pkg/filter"
)

func main() {
	ctx := context.Background()

	const (
		inputPath  = "cloudflare.json"
		outputPath = "cloudflare-filtered.json"
	)

	result, err := specfilter.FilterFile(ctx, inputPath, outputPath, pkgfilter.DefaultPolicy())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to filter %s: %v\n", inputPath, err)
		os.Exit(1)
	}

	fmt.Printf("✓ Kept %d paths (%d bytes) → %s\n", len(result.Kept), result.Document.Len(), outputPath)
}
