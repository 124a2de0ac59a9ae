package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Prompt  string
}

// OpenAI transcribes through the hosted audio transcription endpoint.
type OpenAI struct {
	client openai.Client
	config OpenAIConfig
	logger logger.Logger
}

func NewOpenAI(cfg OpenAIConfig, log logger.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing API key (set OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.AudioModelWhisper1)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		config: cfg,
		logger: log,
	}, nil
}

// Transcribe uploads the audio file. opts.Model and opts.FP16 do not apply
// to the hosted model and are ignored.
func (o *OpenAI) Transcribe(ctx context.Context, audioPath string, opts Options) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %w", ErrTranscriptionFailed, err)
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:  f,
		Model: openai.AudioModel(o.config.Model),
	}
	if opts.Language != "" {
		params.Language = openai.String(opts.Language)
	}
	if o.config.Prompt != "" {
		params.Prompt = openai.String(o.config.Prompt)
	}

	o.logger.Info(ctx, "Transcribing %s with %s", audioPath, o.config.Model)

	res, err := o.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	return strings.TrimSpace(res.Text), nil
}
