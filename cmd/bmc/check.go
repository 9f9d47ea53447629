package main

import "github.com/spf13/cobra"

// newCheckCmd is the parent of the two algorithm families: invariant
// checking (§4.6) and LTL checking (§4.7), each over one of the
// built-in models in internal/models.
func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "check a built-in model against a property",
	}

	checkCmd.AddCommand(newCheckInvariantCmd())
	checkCmd.AddCommand(newCheckLTLCmd())

	return checkCmd
}
