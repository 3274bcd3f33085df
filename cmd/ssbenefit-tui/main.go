package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ssbenefit/internal/calculation"
	"github.com/rgehrsitz/ssbenefit/internal/config"
	"github.com/rgehrsitz/ssbenefit/internal/tui"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	} else {
		fmt.Println("Usage: ssbenefit-tui <scenario-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Scenario file not found: %s\n", configPath)
		os.Exit(1)
	}

	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error loading settings: %v\n", err)
		os.Exit(1)
	}
	table, err := wageindex.Load(settings.WageIndex.File)
	if err != nil {
		fmt.Printf("Error loading wage index: %v\n", err)
		os.Exit(1)
	}
	engine := calculation.NewCalculationEngine(table, calculation.Options{
		Indexing:         calculation.IndexingOptions{CapAtContributionBase: settings.Calculation.CapEarnings},
		SweepConcurrency: settings.Sweep.Concurrency,
	})

	p := tea.NewProgram(
		tui.NewModel(configPath, engine),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
