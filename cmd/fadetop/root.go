// Command fadetop renders a live, fading flame-timeline of a process's
// sampled call stacks in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "fadetop <pid>",
	Short: "Live fading flame-timeline of sampled call stacks",
	Long: `fadetop periodically samples a target process's call stacks and
renders them as a scrolling, fading timeline in the terminal, forgetting
old frames according to configurable retention rules.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (panic|fatal|error|warn|info|debug|trace)")
	rootCmd.Flags().IntVar(&attachRate, "rate", 100, "sampling frequency in Hz")
	rootCmd.Flags().BoolVar(&attachSubprocesses, "subprocesses", false, "include child processes")
	rootCmd.Flags().BoolVar(&attachNative, "native", false, "include native frames")
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(replayCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
