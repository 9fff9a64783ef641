package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all collected usage history",
	Long: `Replace the usage history with an empty document at both the primary and
mirror locations. This cannot be undone.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deletion without prompting")

	RootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	count := len(st.All())
	if !clearYes {
		fmt.Printf("This deletes all %d stored usage records.\n", count)
		fmt.Println("Re-run with --yes to confirm.")
		return nil
	}

	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear usage history: %w", err)
	}

	fmt.Printf("Cleared %d usage records.\n", count)
	return nil
}
