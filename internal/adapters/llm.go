package adapters

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"trophyseeker/internal/bootstrap"
	errs "trophyseeker/internal/errors"
)

const placeholderAPIKey = "PLACEHOLDER_API_KEY"

type AdapterGemini struct {
	Client *genai.Client
	Model  string
	cfg    *bootstrap.Config
}

func NewAdapterGemini(cfg *bootstrap.Config) *AdapterGemini {
	return &AdapterGemini{cfg: cfg, Model: cfg.GeminiModel}
}

func (a *AdapterGemini) Init(ctx context.Context) error {
	if a.cfg.GeminiApiKey == "" || a.cfg.GeminiApiKey == placeholderAPIKey {
		return errs.ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(a.cfg.GeminiApiKey))
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	a.Client = client
	return nil
}

func (a *AdapterGemini) Close() error {
	if a.Client != nil {
		return a.Client.Close()
	}
	return nil
}
