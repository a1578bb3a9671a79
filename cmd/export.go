package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/memoriz/internal/deckio"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <deck>",
	Short: "Write a deck document",
	Long: `Serialize a deck as a JSON deck document, to stdout or to a file.
The document round-trips losslessly through import.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

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
		d, err := s.DeckRepo().Load(ctx, info.ID)
		if err != nil {
			return err
		}

		doc, err := deckio.Marshal(d)
		if err != nil {
			return err
		}

		if out == "" {
			fmt.Println(string(doc))
			return nil
		}
		if err := os.WriteFile(out, append(doc, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Exported deck %s to %s.\n", d.Name, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Destination file (default stdout)")
}
