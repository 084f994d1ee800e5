/*
Copyright © 2025 Danilepez
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Danilepez/chat-pdf-ai/config"
	"github.com/Danilepez/chat-pdf-ai/database"
	"github.com/Danilepez/chat-pdf-ai/handler"
	"github.com/Danilepez/chat-pdf-ai/service"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document Q&A server",
	Long:  `Starts the HTTP server that ingests PDF documents and answers questions about them`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config-file")
		inMemory, _ := cmd.Flags().GetBool("in-memory")

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()

		fragmentStore, err := newFragmentStore(ctx, cfg, inMemory)
		if err != nil {
			log.Fatalf("Failed to initialize fragment store: %v", err)
		}

		aiService, err := newAIService(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize AI service: %v", err)
		}

		// Initialize services
		pdfService := service.NewPDFService()
		ingestService := service.NewIngestService(fragmentStore, aiService, types.DocumentServiceConfig{
			ChunkSize:     cfg.ChunkSize,
			IngestWorkers: cfg.IngestWorkers,
		})
		fileService := service.NewFileService(cfg.UploadDir, pdfService, ingestService)
		queryService := service.NewQueryService(fragmentStore, aiService)
		wsService := service.NewWebSocketService(queryService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		uploadHandler := handler.NewUploadHandler(fileService)
		queryHandler := handler.NewQueryHandler(queryService, time.Duration(cfg.QueryTimeoutSecs)*time.Second)
		documentHandler := handler.NewDocumentHandler(fileService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", func(c *gin.Context) {
			c.String(200, "ok")
		})
		router.GET("/ws", func(c *gin.Context) {
			wsService.HandleQuery(c.Writer, c.Request)
		})

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/documents/query", queryHandler.HandleQuery)
			apiV1.POST("/documents/upload", uploadHandler.UploadDocumentHandler)
			apiV1.GET("/documents", documentHandler.ListDocuments)
			apiV1.GET("/pdf", documentHandler.ServeDocument)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config-file", "c", "config/config.yaml", "config file")
	startServerCmd.Flags().Bool("in-memory", false, "use the in-memory fragment store instead of MongoDB")
}

func newFragmentStore(ctx context.Context, cfg *config.Config, inMemory bool) (database.FragmentStore, error) {
	if inMemory {
		return database.NewMemoryFragmentStore(), nil
	}
	client, err := database.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	return database.NewMongoFragmentStore(ctx, client.Database(cfg.MongoDatabase), cfg.FragmentCollection)
}

func newAIService(ctx context.Context, cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "openai":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.ChatModel, cfg.MaxOutputTokens, cfg.Temperature), nil
	case "gemini":
		return service.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.ChatModel, cfg.MaxOutputTokens, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}
