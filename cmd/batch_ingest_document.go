/*
Copyright © 2025 Danilepez
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Danilepez/chat-pdf-ai/config"
	"github.com/spf13/cobra"
)

// batchIngestDocumentCmd represents the batch-ingest command
var batchIngestDocumentCmd = &cobra.Command{
	Use:   "batch-ingest",
	Short: "Ingest every PDF in a directory",
	Long: `Walks a directory and ingests each PDF it contains. Documents are
independent: a failed document is reported and skipped, the rest continue.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			log.Fatal("missing required flag: --dir")
		}

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()
		fileService, err := buildFileService(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Fatalf("Failed to read directory %s: %v", dir, err)
		}

		ingested, failed := 0, 0
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				continue
			}
			filePath := filepath.Join(dir, entry.Name())
			count, key, err := ingestLocalFile(ctx, fileService, filePath)
			if err != nil {
				log.Printf("Failed to ingest %s: %v", filePath, err)
				failed++
				continue
			}
			fmt.Printf("Ingested %s as %s (%d fragments)\n", filePath, key, count)
			ingested++
		}
		fmt.Printf("Done: %d ingested, %d failed\n", ingested, failed)
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchIngestDocumentCmd)

	batchIngestDocumentCmd.Flags().StringP("dir", "d", "", "Directory containing PDF files to ingest")
	batchIngestDocumentCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
}
