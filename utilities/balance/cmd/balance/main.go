// balance is a pacing calculator for Stormhaven progression tuning.
//
// Usage:
//
//	balance [command] [options]
//
// Commands:
//
//	ranks      - Print rank bit costs and TDP bands
//	pools      - Print pool capacities by tier and rank
//	training   - Simulate time-to-rank for a training regimen
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
	"github.com/lawnchairsociety/stormhavenmud/server/utilities/balance"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ranks":
		runRanks()
	case "pools":
		runPools()
	case "training":
		runTraining()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: balance [command] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  ranks      Print rank bit costs and TDP bands")
	fmt.Println("  pools      Print pool capacities by tier and rank")
	fmt.Println("  training   Simulate time-to-rank for a training regimen")
}

func runRanks() {
	fs := flag.NewFlagSet("ranks", flag.ExitOnError)
	max := fs.Int("max", 100, "Highest rank to print")
	step := fs.Int("step", 10, "Rank step between rows")
	fs.Parse(os.Args[2:])

	fmt.Printf("%-8s %-12s %-14s %s\n", "Rank", "Next costs", "Total bits", "TDP for rank")
	var s skills.Skill
	for rank := 0; rank <= *max; rank += *step {
		s.Rank = float64(rank)
		fmt.Printf("%-8d %-12d %-14d %d\n",
			rank, s.BitsToNextRank(), s.TotalBitsToRank(rank), progression.TDPForRank(rank))
	}
}

func runPools() {
	fs := flag.NewFlagSet("pools", flag.ExitOnError)
	intelligence := fs.Int("int", 10, "Intelligence score")
	discipline := fs.Int("disc", 10, "Discipline score")
	fs.Parse(os.Args[2:])

	attrs := stats.NewAttributes()
	attrs.Set(stats.Intelligence, *intelligence)
	attrs.Set(stats.Discipline, *discipline)
	engine := progression.NewEngine("balance", nil, attrs, progression.DefaultParams())

	ranks := []int{0, 10, 50, 100, 250, 500, 1000, 3000}
	fmt.Printf("%-10s", "Tier")
	for _, rank := range ranks {
		fmt.Printf(" %8d", rank)
	}
	fmt.Println()

	for _, placement := range skills.AllPlacements() {
		fmt.Printf("%-10s", placement.String())
		for _, rank := range ranks {
			skill := skills.Skill{Rank: float64(rank)}
			fmt.Printf(" %8d", engine.PoolCapacity(&skill, placement))
		}
		fmt.Println()
	}
}

func runTraining() {
	fs := flag.NewFlagSet("training", flag.ExitOnError)
	tier := fs.String("tier", "primary", "Placement tier: primary, secondary, tertiary, other")
	rate := fs.Int("rate", 20, "Field experience bits earned per minute while training")
	hours := fs.Float64("hours", 4, "Training hours per day")
	target := fs.Int("target", 50, "Target rank")
	wisdom := fs.Int("wis", 10, "Wisdom score")
	discipline := fs.Int("disc", 10, "Discipline score")
	intelligence := fs.Int("int", 10, "Intelligence score")
	fs.Parse(os.Args[2:])

	placement, err := skills.ParsePlacement(*tier)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	result := balance.SimulateTraining(balance.TrainingConfig{
		Placement:     placement,
		BitsPerMinute: *rate,
		HoursPerDay:   *hours,
		TargetRank:    *target,
		Attributes: map[string]int{
			stats.Wisdom:       *wisdom,
			stats.Discipline:   *discipline,
			stats.Intelligence: *intelligence,
		},
	})

	fmt.Printf("Tier %s, %d bits/min for %.1fh/day, target rank %d:\n",
		placement.String(), *rate, *hours, *target)
	if result.HitMaxDays {
		fmt.Printf("  target not reached after %.0f days (rank %.2f)\n", result.Days, result.FinalRank)
		return
	}
	fmt.Printf("  %.1f days, %d pulses, %d bits earned, %d TDP\n",
		result.Days, result.Pulses, result.BitsEarned, result.TDPEarned)
}
