package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/furyhawk/barstats/internal/pipeline"
)

// whoisCmd resolves usernames to ids and back against the roster listing.
var whoisCmd = &cobra.Command{
	Use:   "whois <username|id> [<username|id>...]",
	Short: "Resolve player names and ids",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWhois,
}

func runWhois(cmd *cobra.Command, args []string) error {
	client, store, _, err := openClient()
	if err != nil {
		return err
	}
	defer store.Close()

	resolver, err := pipeline.LoadResolver(cmd.Context(), client)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, arg := range args {
		if id, err := strconv.Atoi(arg); err == nil {
			if name, ok := resolver.UserName(id); ok {
				fmt.Fprintf(out, "%d\t%s\n", id, name)
				continue
			}
		}
		if id, ok := resolver.UserID(arg); ok {
			fmt.Fprintf(out, "%d\t%s\n", id, arg)
			continue
		}
		fmt.Fprintf(out, "?\t%s\n", arg)
	}
	return nil
}
