package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"port"`
	UploadDir string `mapstructure:"upload_dir"`

	MongoURI           string `mapstructure:"MONGODB_URI"`
	MongoDatabase      string `mapstructure:"mongo_database"`
	FragmentCollection string `mapstructure:"fragment_collection"`

	AIProvider      string  `mapstructure:"ai_provider"`
	AIEndpoint      string  `mapstructure:"ai_endpoint"`
	OpenAIAPIKey    string  `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey    string  `mapstructure:"GEMINI_API_KEY"`
	EmbeddingModel  string  `mapstructure:"embedding_model"`
	ChatModel       string  `mapstructure:"chat_model"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	Temperature     float32 `mapstructure:"temperature"`

	ChunkSize        int `mapstructure:"chunk_size"`
	IngestWorkers    int `mapstructure:"ingest_workers"`
	QueryTimeoutSecs int `mapstructure:"query_timeout_secs"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Zero is a valid temperature, so default it here instead of in
	// applyDefaults where an explicit 0 would be indistinguishable from unset.
	v.SetDefault("temperature", 0.5)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Port == "" {
		config.Port = "8080"
	}
	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}
	if config.MongoDatabase == "" {
		config.MongoDatabase = "chatpdf"
	}
	if config.FragmentCollection == "" {
		config.FragmentCollection = "fragments"
	}
	if config.AIProvider == "" {
		config.AIProvider = "openai"
	}
	if config.ChunkSize == 0 {
		config.ChunkSize = 1000
	}
	if config.IngestWorkers == 0 {
		config.IngestWorkers = 4
	}
	if config.MaxOutputTokens == 0 {
		config.MaxOutputTokens = 2048
	}
if config.QueryTimeoutSecs == 0 {
		config.QueryTimeoutSecs = 60
	}
}
