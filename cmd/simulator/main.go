package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dom/hero-draft-assistant/internal/api/handlers"
	"github.com/dom/hero-draft-assistant/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		seedCmd(apiURL, args)
	case "draft":
		draftCmd(apiURL, args)
	case "reset":
		resetCmd(apiURL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Draft Simulator - Development tool for filling a local draft assistant

USAGE:
  simulator <command> [options]

COMMANDS:
  seed      Add the built-in hero pool and random match history
  draft     Play a whole draft by always taking the suggested pick
  reset     Clear the current draft
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Add every hero plus 200 random matches
  simulator seed --matches=200

  # Reproducible history
  simulator seed --matches=50 --seed=7

  # Ban three heroes per side, then auto-pick all ten slots
  simulator draft --bans=3`)
}

func seedCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	matches := fs.Int("matches", 100, "Number of random matches to record")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	roles := domain.DefaultRoleTable()

	fmt.Println("=== Draft Simulator: Seed ===")
	fmt.Println()

	fmt.Print("Adding heroes... ")
	added, skipped := 0, 0
	for _, name := range heroNames(roles) {
		err := client.AddHero(handlers.CreateHeroRequest{Name: name, Roles: roles.RolesFor(name)})
		switch {
		case err == nil:
			added++
		case errors.Is(err, errConflict):
			skipped++
		default:
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("OK (%d added, %d already present)\n", added, skipped)

	rng := rand.New(rand.NewPCG(*seed, *seed))
	fmt.Printf("Recording %d matches (seed %d)... ", *matches, *seed)
	for i := 0; i < *matches; i++ {
		if _, err := client.AddMatch(randomMatch(rng, roles, i)); err != nil {
			fmt.Printf("FAILED\n  Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Println("OK")

	stats, err := client.HeroStats()
	if err != nil {
		fmt.Printf("Warning: Failed to read stats: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("  Matches: %d\n", stats.Summary.Matches)
	for i, st := range stats.Heroes {
		if i == 5 {
			break
		}
		fmt.Printf("  %-12s %5.1f%% over %d games\n", st.HeroName, st.WinRate, st.TotalGames)
	}
}

func draftCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("draft", flag.ExitOnError)
	bans := fs.Int("bans", 3, "Bans per team before picking (0-4)")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	fmt.Println("=== Draft Simulator: Auto Draft ===")
	fmt.Println()

	state, err := client.ResetDraft()
	if err != nil {
		fmt.Printf("Failed to reset draft: %v\n", err)
		os.Exit(1)
	}
	if *bans > state.Format.MaxBans() {
		*bans = state.Format.MaxBans()
	}

	// Ban the strongest heroes first, alternating sides
	if *bans > 0 {
		stats, err := client.HeroStats()
		if err != nil {
			fmt.Printf("Failed to read stats: %v\n", err)
			os.Exit(1)
		}
		team, slot := domain.Team1, 0
		for _, st := range stats.Heroes {
			if slot == *bans {
				break
			}
			if _, err := client.AddBan(team, st.HeroName, slot); err != nil {
				fmt.Printf("  ban %s FAILED: %v\n", st.HeroName, err)
				continue
			}
			fmt.Printf("  %s bans %s\n", team, st.HeroName)
			if team == domain.Team2 {
				slot++
			}
			team = team.Other()
		}
		fmt.Println()
	}

	heroes, err := client.ListHeroes()
	if err != nil {
		fmt.Printf("Failed to list heroes: %v\n", err)
		os.Exit(1)
	}

	for {
		info, err := client.Turn()
		if err != nil {
			fmt.Printf("Failed to read turn: %v\n", err)
			os.Exit(1)
		}
		if info.Complete || info.Turn == nil {
			break
		}
		turn := info.Turn

		hero := ""
		if next, err := client.NextPick(); err == nil && next != nil {
			hero = next.Name
		} else {
			current, err := client.Draft()
			if err != nil {
				fmt.Printf("Failed to read draft: %v\n", err)
				os.Exit(1)
			}
			hero = firstFree(heroes.Roles[turn.Role], current)
		}
		if hero == "" {
			fmt.Printf("No hero left for %s %s\n", turn.Team, turn.Role.DisplayName())
			os.Exit(1)
		}

		if _, err := client.AddPick(turn.Team, hero, turn.PositionIndex); err != nil {
			fmt.Printf("  pick %s FAILED: %v\n", hero, err)
			os.Exit(1)
		}
		fmt.Printf("  %s picks %-12s (%s)\n", turn.Team, hero, turn.Role.DisplayName())
	}

	est, err := client.WinRate()
	if err != nil {
		fmt.Printf("Warning: Failed to read win rate: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println("=========================================")
	fmt.Printf("  team1 %.1f%%  |  team2 %.1f%%\n", est.Team1, est.Team2)
	fmt.Println("=========================================")
}

func resetCmd(apiURL string) {
	client := NewAPIClient(apiURL)
	state, err := client.ResetDraft()
	if err != nil {
		fmt.Printf("Failed to reset draft: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Draft reset (format %s)\n", state.Format)
}
