// Command stickctl replays thumbstick gesture scripts and inspects control
// geometry from the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing to out.
func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stickctl",
		Short:         "virtual joystick gesture tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	rootCmd.AddCommand(newReplayCmd(), newRadiusCmd())
	return rootCmd
}
