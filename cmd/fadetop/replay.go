package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alesr/fadetop/internal/config"
	"github.com/alesr/fadetop/internal/sampler"
)

var replaySpeed float64

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Drive the viewer from a recorded newline-delimited JSON trace file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "playback speed multiplier; 0 replays as fast as possible")
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("fadetop: opening replay file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		f.Close()
		return fmt.Errorf("fadetop: %w", err)
	}

	producer := sampler.NewReplay(f, f, replaySpeed)
	defer producer.Close()

	return runViewer(cmd.Context(), cfg, producer)
}
