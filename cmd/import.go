package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/feature/importer"
	"catalog-manager/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	mergeImport bool
	yesConfirm  bool
)

// importCmd imports book records from a CSV file into the local catalog.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import book records from a CSV file",
	Long: `Import book records from a CSV file into the local catalog.

By default the import REPLACES the entire book collection with the file
contents. Use --merge to add records to the existing collection instead.

Examples:
  # Replace the collection (with interactive confirmation)
  import books.csv

  # Replace without prompting (non-interactive)
  import books.csv --yes

  # Add to the existing collection
  import books.csv --merge`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&mergeImport, "merge", false, "Add records to the existing collection instead of replacing it")
	importCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	state := library.NewState(cfg.Library.Settings())

	// Load the persisted catalog so merge sees the current collection and
	// the result can be written back.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	stateStore, err := database.NewStateStore(db)
	if err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}
	persister := library.NewPersister(stateStore, l)
	if err := persister.Load(state); err != nil {
		return fmt.Errorf("failed to load persisted state: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	svc := importer.NewService(state, l)

	var result importer.Result
	if mergeImport {
		result, err = svc.MergeCSV(f)
		if err != nil {
			return fmt.Errorf("failed to import file: %w", err)
		}
	} else {
		if !confirmAction(fmt.Sprintf("Replace the entire collection (%d books) with %q?", state.BookCount(), args[0])) {
			l.Warn("Import cancelled by user. No changes were made.")
			return nil
		}
		result, err = svc.ImportCSV(f)
		if err != nil {
			return fmt.Errorf("failed to import file: %w", err)
		}
	}

	if err := persister.Save(state); err != nil {
		return fmt.Errorf("failed to persist imported state: %w", err)
	}

	l.Info("Import finished",
		zap.Int("imported", result.SuccessCount),
		zap.Int("rejected", result.ErrorCount),
	)
	for _, msg := range result.Errors {
		l.Warn("Rejected row", zap.String("reason", msg))
	}
	return nil
}

// confirmAction asks the user to confirm a destructive operation, honoring
// the --yes flag for non-interactive use.
func confirmAction(prompt string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %s Type 'yes' to confirm: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(response)) == "yes"
}
