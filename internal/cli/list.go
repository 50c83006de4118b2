package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every record in the gateway file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRecords(cmd, opts)
		},
	}
}

func listRecords(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	records, err := newLookup(cfg, newLogger(cfg.Logging, cmd.ErrOrStderr())).Records()
	if err != nil {
		return fmt.Errorf("reading gateway file: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	fmt.Fprintf(out, "%-20s %-20s\n", "GATEWAY", "PHONE")
	for _, r := range records {
		fmt.Fprintf(out, "%-20s %-20s\n", r.GatewayID, r.PhoneNumber)
	}
	return nil
}
