package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/zodiac-catalog/internal/client"
	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	// Global flags
	apiURL := "http://localhost:3000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.NewAPIClient(apiURL, nil)
	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "list":
		err = listCmd(ctx, api, args)
	case "search":
		err = searchCmd(ctx, api, args)
	case "get":
		err = getCmd(ctx, api, args)
	case "add":
		err = addCmd(ctx, api, args)
	case "update":
		err = updateCmd(ctx, api, args)
	case "delete":
		err = deleteCmd(ctx, api, args)
	case "watch":
		err = watchCmd(ctx, api, args)
	case "seed":
		err = seedCmd(ctx, api)
	case "health":
		err = healthCmd(ctx, api)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Catalog - terminal client for the zodiac characters API

USAGE:
  catalog <command> [options]

COMMANDS:
  list      List characters (--sign=Leo filters on the server)
  search    Search locally; with no query, reads queries from stdin
  get       Show one character by id
  add       Create a character
  update    Change only the fields given
  delete    Delete a character by id
  watch     Keep a live list, refreshed on every change
  seed      Reset a development server to the canonical characters
  health    Show server health
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:3000)

EXAMPLES:
  catalog list --sign=Virgo
  catalog search shi
  catalog add --name="Mu de Aries" --sign=Aries
  catalog update 6f1c... --sign=Escorpio
  catalog watch`)
}

func listCmd(ctx context.Context, api *client.APIClient, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sign := fs.String("sign", "", "Exact zodiac sign to filter by")
	fs.Parse(args)

	characters, err := api.ListCharacters(ctx, domain.CharacterFilter{ZodiacSign: *sign})
	if err != nil {
		return err
	}
	printCharacters(characters)
	return nil
}

func searchCmd(ctx context.Context, api *client.APIClient, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	delay := fs.Duration("debounce", client.DefaultDebounceDelay, "Delay before a query is applied")
	fs.Parse(args)

	cache := client.NewCache(api, client.WithDebounceDelay(*delay))
	defer cache.Close()

	snap, err := waitReady(ctx, cache)
	if err != nil {
		return err
	}

	if fs.NArg() > 0 {
		printCharacters(client.FilterCharacters(snap.Records, fs.Arg(0)))
		return nil
	}

	unsubscribe := cache.Subscribe(func(s client.Snapshot) {
		fmt.Printf("\n[%s] %q\n", s.State, s.Query)
		printCharacters(s.View)
		fmt.Print("> ")
	})
	defer unsubscribe()

	fmt.Printf("%d characters loaded. Type to search, empty line clears, Ctrl-D exits.\n> ", len(snap.Records))
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cache.SetQuery(scanner.Text())
	}
	return scanner.Err()
}

func getCmd(ctx context.Context, api *client.APIClient, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: catalog get <id>")
	}

	character, err := api.GetCharacter(ctx, args[0])
	if err != nil {
		return err
	}
	printCharacter(character)
	return nil
}

func addCmd(ctx context.Context, api *client.APIClient, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Character name (required)")
	sign := fs.String("sign", "", "Zodiac sign")
	image := fs.String("image", "", "Absolute image URL")
	description := fs.String("description", "", "Description")
	fs.Parse(args)

	character, err := api.CreateCharacter(ctx, domain.CharacterFields{
		Name:        *name,
		ZodiacSign:  *sign,
		ImageURL:    *image,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Println("Created:")
	printCharacter(character)
	return nil
}

func updateCmd(ctx context.Context, api *client.APIClient, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: catalog update <id> [--name=] [--sign=] [--image=] [--description=]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	name := fs.String("name", "", "New name")
	sign := fs.String("sign", "", "New zodiac sign")
	image := fs.String("image", "", "New image URL")
	description := fs.String("description", "", "New description")
	fs.Parse(args[1:])

	// Only flags given on the command line are sent.
	var patch domain.CharacterPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "sign":
			patch.ZodiacSign = sign
		case "image":
			patch.ImageURL = image
		case "description":
			patch.Description = description
		}
	})

	character, err := api.UpdateCharacter(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Println("Updated:")
	printCharacter(character)
	return nil
}

func deleteCmd(ctx context.Context, api *client.APIClient, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: catalog delete <id>")
	}
	if err := api.DeleteCharacter(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Character deleted")
	return nil
}

func watchCmd(ctx context.Context, api *client.APIClient, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	query := fs.String("query", "", "Local search applied to the live list")
	fs.Parse(args)

	cache := client.NewCache(api)
	defer cache.Close()

	cache.Subscribe(func(s client.Snapshot) {
		switch s.State {
		case client.StateReady:
			fmt.Printf("\n=== %s (%d of %d) ===\n", time.Now().Format(time.TimeOnly), len(s.View), len(s.Records))
			printCharacters(s.View)
		case client.StateError:
			fmt.Printf("\nError: %s\n", s.Err)
		}
	})

	cache.SetQuery(*query)
	if _, err := waitReady(ctx, cache); err != nil {
		return err
	}

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", api.WebSocketURL())
	return cache.Watch(ctx, api.WebSocketURL())
}

func seedCmd(ctx context.Context, api *client.APIClient) error {
	result, err := api.Seed(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d, inserted %d characters:\n", result.DeletedCount, result.InsertedCount)
	for _, c := range result.Characters {
		fmt.Printf("  %s  %-24s %s\n", c.ID, c.Name, c.ZodiacSign)
	}
	return nil
}

func healthCmd(ctx context.Context, api *client.APIClient) error {
	health, err := api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\nStore: %s\nCharacters: %d\nUptime: %.0fs\n",
		health.Status, health.Store, health.CharactersCount, health.Uptime)
	return nil
}

// waitReady starts cache and blocks until its first fetch lands.
func waitReady(ctx context.Context, cache *client.Cache) (client.Snapshot, error) {
	done := make(chan client.Snapshot, 1)
	unsubscribe := cache.Subscribe(func(s client.Snapshot) {
		if s.State == client.StateReady || s.State == client.StateError {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	cache.Start()

	select {
	case s := <-done:
		if s.State == client.StateError {
			return s, errors.New(s.Err)
		}
		return s, nil
	case <-ctx.Done():
		return client.Snapshot{}, ctx.Err()
	}
}

func printCharacters(characters []domain.Character) {
	if len(characters) == 0 {
		fmt.Println("  (no characters)")
		return
	}
	for _, c := range characters {
		fmt.Printf("  %s  %-24s %s\n", c.ID, c.Name, c.ZodiacSign)
	}
}

func printCharacter(c *domain.Character) {
	fmt.Printf("  ID:          %s\n", c.ID)
	fmt.Printf("  Name:        %s\n", c.Name)
	fmt.Printf("  Zodiac sign: %s\n", c.ZodiacSign)
	fmt.Printf("  Image:       %s\n", c.ImageURL)
	fmt.Printf("  Description: %s\n", c.Description)
}
