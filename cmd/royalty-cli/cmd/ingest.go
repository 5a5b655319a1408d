package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"royalty-core/internal/service"
	"royalty-core/pkg/config"
	"royalty-core/pkg/database"
	"royalty-core/pkg/logger"

	"github.com/spf13/cobra"
)

var ingestUploaderID uint64

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.csv>",
	Short: "Ingest an earnings CSV from disk",
	Long: `Parses an earnings report, stores the canonical rows and reconciles
royalty ledgers, exactly as the HTTP upload endpoint does.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env)
		defer logger.Sync()

		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Cannot read %s: %v\n", path, err)
			os.Exit(1)
		}

		db, err := database.ConnectPostgres(dsnFromConfig())
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}

		reconcile := service.NewReconcileService(service.NewSplitService())
		earnings := service.NewEarningsService(db, reconcile, config.Global.Upload.MaxRows)

		summary, err := earnings.IngestUpload(context.Background(), filepath.Base(path), ingestUploaderID, data)
		if err != nil {
			fmt.Printf("Ingestion failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Batch:      %s\n", summary.BatchID)
		fmt.Printf("Imported:   %d rows\n", summary.RowsImported)
		fmt.Printf("Skipped:    %d rows\n", summary.RowsSkipped)
		fmt.Printf("Reconciled: %d ledger entries\n", summary.RoyaltiesProcessed)
	},
}

func dsnFromConfig() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)
}

func init() {
	ingestCmd.Flags().Uint64Var(&ingestUploaderID, "uploader", 0, "administrator id to record on the batch")
	rootCmd.AddCommand(ingestCmd)
}
