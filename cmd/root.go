package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/memoriz/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memoriz",
	Short: "Spaced-repetition flashcards in the terminal",
	Long: `Memoriz drills decks of prompt/response cards in rounds. Every rating
feeds an SM-2 scheduler that decides when the card comes back; an "easy"
retires the card until the deck is restarted.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Best-effort .env load so MEMORIZ_* variables can live next to the
	// project. A missing file is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Database path or connection string (overrides MEMORIZ_DB)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver, sqlite or postgres (overrides MEMORIZ_DB_DRIVER)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig returns the database config for one invocation: the
// --driver/--db flags win, then the MEMORIZ_DB_DRIVER/MEMORIZ_DB
// environment variables, then the default SQLite path.
func resolveConfig(cmd *cobra.Command) (store.Config, error) {
	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("db")
	if driver == "" && dsn == "" {
		return store.ConfigFromEnv()
	}

	if driver == "" {
		if driver = os.Getenv("MEMORIZ_DB_DRIVER"); driver == "" {
			driver = store.DriverSQLite
		}
	}
	if dsn == "" {
		dsn = os.Getenv("MEMORIZ_DB")
	}

	if driver == store.DriverSQLite {
		if dsn == "" {
			path, err := store.DefaultDBPath()
			if err != nil {
				return store.Config{}, err
			}
			dsn = path
		} else if err := store.EnsureDir(dsn); err != nil {
			return store.Config{}, err
		}
	}
	return store.Config{Driver: driver, DSN: dsn}, nil
}

// openStore opens the database for one command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database config: %w", err)
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveDeck finds a stored deck by exact id, unique id prefix, or
// exact name, in that order.
func resolveDeck(ctx context.Context, repo store.DeckRepo, ref string) (store.DeckInfo, error) {
	infos, err := repo.List(ctx)
	if err != nil {
		return store.DeckInfo{}, err
	}

	var byPrefix, byName []store.DeckInfo
	for _, info := range infos {
		if info.ID == ref {
			return info, nil
		}
		if strings.HasPrefix(info.ID, ref) {
			byPrefix = append(byPrefix, info)
		}
		if info.Name == ref {
			byName = append(byName, info)
		}
	}
	switch {
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return store.DeckInfo{}, fmt.Errorf("deck id prefix %q matches %d decks", ref, len(byPrefix))
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return store.DeckInfo{}, fmt.Errorf("deck name %q matches %d decks, use the id", ref, len(byName))
	}
	return store.DeckInfo{}, fmt.Errorf("%w: %q", store.ErrDeckNotFound, ref)
}

// shortID returns the first uuid segment, enough to paste back as a
// deck reference.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
