//go:build ignore

// Seeds a running development server with the canonical characters and
// checks the result.
//
//	go run scripts/seed-characters.go [api-url]
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dom/zodiac-catalog/internal/client"
	"github.com/dom/zodiac-catalog/internal/domain"
)

func main() {
	apiBase := "http://localhost:3000"
	if len(os.Args) > 1 {
		apiBase = os.Args[1]
	} else if envURL := os.Getenv("API_URL"); envURL != "" {
		apiBase = envURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.NewAPIClient(apiBase, nil)

	fmt.Printf("Seeding %s...\n\n", apiBase)
	result, err := api.Seed(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Deleted %d characters\n", result.DeletedCount)
	fmt.Printf("  ✓ Inserted %d characters\n", result.InsertedCount)

	characters, err := api.ListCharacters(ctx, domain.CharacterFilter{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list characters: %v\n", err)
		os.Exit(1)
	}
	if len(characters) != result.InsertedCount {
		fmt.Fprintf(os.Stderr, "Expected %d characters, server lists %d\n", result.InsertedCount, len(characters))
		os.Exit(1)
	}

	bySign := make(map[string]int)
	for _, c := range characters {
		bySign[c.ZodiacSign]++
	}
	signs := make([]string, 0, len(bySign))
	for sign := range bySign {
		signs = append(signs, sign)
	}
	sort.Strings(signs)

	fmt.Println("\nCharacters by sign:")
	for _, sign := range signs {
		fmt.Printf("  %-10s %d\n", sign, bySign[sign])
	}
}
