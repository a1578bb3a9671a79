package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <deck>",
	Short: "Delete a deck",
	Long: `Remove a stored deck. Its review log entries are kept; the log is
append-only.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		info, err := resolveDeck(ctx, s.DeckRepo(), args[0])
		if err != nil {
			return err
		}
		if err := s.DeckRepo().Delete(ctx, info.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted deck %s (%s).\n", info.Name, shortID(info.ID))
		return nil
	},
}
