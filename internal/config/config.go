package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendOpenAI     = "openai"
	BackendWhisperCPP = "whisper-cpp"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	LLM           LLMConfig           `yaml:"llm"`
	Chunking      ChunkingConfig      `yaml:"chunking"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Study         StudyConfig         `yaml:"study"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	JobTTL         time.Duration `yaml:"job_ttl"`
}

type TranscriptionConfig struct {
	Backend    string   `yaml:"backend"`
	Model      string   `yaml:"model"`
	Variant    string   `yaml:"variant"`
	Variants   []string `yaml:"variants"`
	Language   string   `yaml:"language"`
	Prompt     string   `yaml:"prompt"`
	FP16       bool     `yaml:"fp16"`
	BinaryPath string   `yaml:"binary_path"`
	ModelsDir  string   `yaml:"models_dir"`
	Threads    int      `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type LLMConfig struct {
	Provider           string  `yaml:"provider"`
	Model              string  `yaml:"model"`
	BaseURL            string  `yaml:"base_url"`
	MaxTokens          int     `yaml:"max_tokens"`
	SummaryTemperature float64 `yaml:"summary_temperature"`
	StudyTemperature   float64 `yaml:"study_temperature"`

	OpenAIAPIKey  string   `yaml:"-"`
	GeminiAPIKeys []string `yaml:"-"`
}

type ChunkingConfig struct {
	Size    int `yaml:"size"`
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

type SummarizerConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type StudyConfig struct {
	QuizQuestions int `yaml:"quiz_questions"`
	Flashcards    int `yaml:"flashcards"`
	MaxCount      int `yaml:"max_count"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	QueueSize     int `yaml:"queue_size"`
}

// Load reads a YAML config file, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LECTURE_NOTES_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	c.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.LLM.GeminiAPIKeys = nil
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.LLM.GeminiAPIKeys = append(c.LLM.GeminiAPIKeys, k)
			}
		}
	}
}

// Validate checks required settings and fills defaults for the rest.
func (c *Config) Validate() error {
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = BackendOpenAI
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}

	switch c.Transcription.Backend {
	case BackendOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for transcription.backend %q", BackendOpenAI)
		}
	case BackendWhisperCPP:
		if c.Transcription.BinaryPath == "" {
			return fmt.Errorf("transcription.binary_path is required")
		}
		if c.Transcription.ModelsDir == "" {
			return fmt.Errorf("transcription.models_dir is required")
		}
	default:
		return fmt.Errorf("transcription.backend must be %q or %q", BackendOpenAI, BackendWhisperCPP)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for llm.provider %q", ProviderOpenAI)
		}
	case ProviderGemini:
		if len(c.LLM.GeminiAPIKeys) == 0 {
			return fmt.Errorf("GEMINI_API_KEYS is required for llm.provider %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = 200 << 20
	}
	if c.Server.JobTTL <= 0 {
		c.Server.JobTTL = time.Hour
	}

	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-1"
	}
	if c.Transcription.Variant == "" {
		c.Transcription.Variant = "base"
	}
	if len(c.Transcription.Variants) == 0 {
		c.Transcription.Variants = []string{"tiny", "base", "small", "medium"}
	}
	if !slices.Contains(c.Transcription.Variants, c.Transcription.Variant) {
		return fmt.Errorf("transcription.variant %q is not listed in transcription.variants", c.Transcription.Variant)
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.Transcription.Threads == 0 {
		c.Transcription.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderGemini:
			c.LLM.Model = "gemini-2.5-flash"
		default:
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.LLM.SummaryTemperature == 0 {
		c.LLM.SummaryTemperature = 0.3
	}
	if c.LLM.StudyTemperature == 0 {
		c.LLM.StudyTemperature = 0.3
	}

	if c.Chunking.MinSize == 0 {
		c.Chunking.MinSize = 1500
	}
	if c.Chunking.MaxSize == 0 {
		c.Chunking.MaxSize = 3500
	}
	if c.Chunking.Size == 0 {
		c.Chunking.Size = 2500
	}
	if c.Chunking.MinSize > c.Chunking.MaxSize {
		return fmt.Errorf("chunking.min_size must not exceed chunking.max_size")
	}
	if c.Chunking.Size < c.Chunking.MinSize || c.Chunking.Size > c.Chunking.MaxSize {
		return fmt.Errorf("chunking.size must be within [%d, %d]", c.Chunking.MinSize, c.Chunking.MaxSize)
	}

	if c.Summarizer.Concurrency <= 0 {
		c.Summarizer.Concurrency = 1
	}

	if c.Study.MaxCount == 0 {
		c.Study.MaxCount = 30
	}
	if c.Study.QuizQuestions == 0 {
		c.Study.QuizQuestions = 10
	}
	if c.Study.Flashcards == 0 {
		c.Study.Flashcards = 10
	}
	if c.Study.QuizQuestions > c.Study.MaxCount || c.Study.Flashcards > c.Study.MaxCount {
		return fmt.Errorf("study counts must not exceed study.max_count (%d)", c.Study.MaxCount)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.QueueSize == 0 {
		c.Performance.QueueSize = 16
	}

	return nil
}
