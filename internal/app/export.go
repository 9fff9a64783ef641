package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the usage history to CSV",
	Long: `Write the stored usage records to a CSV file, one row per record with a
header line. An empty history exports nothing.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "usage_data.csv", "output file path")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	records := st.All()
	if len(records) == 0 {
		fmt.Println("No usage records to export.")
		return nil
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", exportOut, err)
	}
	defer f.Close()

	if err := st.ExportCSV(f); err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}

	fmt.Printf("Exported %d records to %s\n", len(records), exportOut)
	return nil
}
