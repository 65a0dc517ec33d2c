package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"haci/internal/harness"
	"haci/internal/trace"
)

var (
	runVerbose bool
	runTicket  string
)

// errEscalated marks a run that ended without a confident resolution.
// main maps it to exit code 2.
var errEscalated = errors.New("investigation escalated to a human operator")

var runCmd = &cobra.Command{
	Use:   "run [ticket text]",
	Short: "Investigate a ticket in the terminal",
	Long: `Runs one investigation and narrates each step to stdout.
With no ticket, investigates the built-in demo incident.

Exit codes: 0 completed, 1 failed, 2 escalated to a human.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"include reasoning, patterns, and correlations")
	runCmd.Flags().StringVar(&runTicket, "ticket", "", "incident ticket text")
}

const demoTicket = "HTTP 502 errors spiking on api-gateway since 14:21 UTC, error rate 23.5%"

func runRun(cmd *cobra.Command, args []string) error {
	_, base, err := setup()
	if err != nil {
		return err
	}

	ticket := demoTicket
	switch {
	case runTicket != "":
		ticket = runTicket
	case len(args) > 0:
		ticket = strings.Join(args, " ")
	}

	renderer := trace.New(os.Stdout, trace.WithVerbose(runVerbose))
	base.Observer = renderer
	runner, err := harness.New(base)
	if err != nil {
		return err
	}

	renderer.Banner(ticket, base.Adapter.Provider())
	inv, err := runner.Run(cmd.Context(), ticket)
	if err != nil {
		if errors.Is(err, harness.ErrEmptyTicket) {
			return err
		}
		renderer.Summary(inv)
		return fmt.Errorf("investigation failed: %w", err)
	}
	renderer.Summary(inv)

	if inv.Status == harness.StatusEscalated {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errEscalated
	}
	return nil
}
