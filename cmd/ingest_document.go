/*
Copyright © 2025 Danilepez
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/Danilepez/chat-pdf-ai/config"
	"github.com/Danilepez/chat-pdf-ai/service"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/spf13/cobra"
)

// ingestDocumentCmd represents the ingest-document command
var ingestDocumentCmd = &cobra.Command{
	Use:   "ingest-document",
	Short: "Ingest a single local PDF into the fragment store",
	Long: `Copies a local PDF into the upload directory, extracts its text and
stores one embedded fragment per chunk. Re-running for the same stored key is
safe: fragment puts are idempotent upserts.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		filePath, _ := cmd.Flags().GetString("file")
		if filePath == "" {
			log.Fatal("missing required flag: --file")
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

		count, key, err := ingestLocalFile(ctx, fileService, filePath)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", filePath, err)
		}
		fmt.Printf("Ingested %s as %s (%d fragments)\n", filePath, key, count)
	},
}

func init() {
	rootCmd.AddCommand(ingestDocumentCmd)

	ingestDocumentCmd.Flags().StringP("file", "f", "", "Path to the PDF file to ingest")
	ingestDocumentCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
}

func buildFileService(ctx context.Context, cfg *config.Config) (*service.FileService, error) {
	fragmentStore, err := newFragmentStore(ctx, cfg, false)
	if err != nil {
		return nil, err
	}
	aiService, err := newAIService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ingestService := service.NewIngestService(fragmentStore, aiService, types.DocumentServiceConfig{
		ChunkSize:     cfg.ChunkSize,
		IngestWorkers: cfg.IngestWorkers,
	})
	return service.NewFileService(cfg.UploadDir, service.NewPDFService(), ingestService), nil
}

func ingestLocalFile(ctx context.Context, fileService *service.FileService, filePath string) (int, string, error) {
	key, err := fileService.ImportLocalFile(filePath)
	if err != nil {
		return 0, "", err
	}

	statusChan := make(chan types.ProcessingDocumentStatus)
	type ingestResult struct {
		count int
		err   error
	}
	resultChan := make(chan ingestResult, 1)
	go func() {
		count, err := fileService.IngestDocument(ctx, key, statusChan)
		resultChan <- ingestResult{count: count, err: err}
	}()
	for {
		select {
		case status := <-statusChan:
			log.Printf("Stored fragment %d/%d", status.ProcessedFragments, status.TotalFragments)
		case result := <-resultChan:
			return result.count, key, result.err
		}
	}
}
