package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/alesr/fadetop/internal/config"
	"github.com/alesr/fadetop/internal/coordinator"
	"github.com/alesr/fadetop/internal/obs"
	"github.com/alesr/fadetop/internal/queuemap"
	"github.com/alesr/fadetop/internal/sampler"
	"github.com/alesr/fadetop/internal/tui"
)

// runViewer wires config, logging, the retention-governed QueueMap, the
// coordinator, and the terminal UI together and blocks until the program
// exits. It is the common tail of both the attach and replay subcommands.
func runViewer(ctx context.Context, cfg config.Config, producer sampler.Producer) error {
	rules, err := cfg.RetentionRules()
	if err != nil {
		return fmt.Errorf("fadetop: %w", &coordinator.ConfigInvalidError{Field: "rules", Err: err})
	}

	log := obs.NewLogger(nil, logLevel)
	entry := obs.EntryWithRun(log, ulid.Make().String())

	qm := queuemap.New(rules)
	coord := coordinator.New(producer, qm, entry, coordinator.WithUpdatePeriod(cfg.UpdatePeriod))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	coord.Start(runCtx)
	defer coord.Stop()

	model := tui.New(coord, entry, cfg.WindowWidth)
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err = program.Run()
	if err != nil {
		return fmt.Errorf("fadetop: %w", &coordinator.TerminalIOError{Err: err})
	}
	return nil
}
