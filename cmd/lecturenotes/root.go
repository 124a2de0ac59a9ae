package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lecturenotes",
	Short: "Lecture Voice-to-Notes Generator",
	Long: `lecturenotes turns recorded lectures into study material.

Each recording is transcribed, split into chunks, summarized chunk by chunk,
and condensed into a study packet: a summary, key topics, quiz questions
and flashcards.

Required environment variables (a .env file is loaded if present):
  OPENAI_API_KEY     - OpenAI key for transcription and/or text generation
  GEMINI_API_KEYS    - comma-separated keys when llm.provider is "gemini"`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")
}

// Execute runs the root command
func Execute() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config and builds the logger every subcommand shares.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	return cfg, log, nil
}
