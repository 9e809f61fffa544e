package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"trophyseeker/internal/adapters"
	"trophyseeker/internal/domain/guidance"
	errs "trophyseeker/internal/errors"
)

type LlmRepo struct {
	adapter *adapters.AdapterGemini
	log     *zap.SugaredLogger
}

func NewLlmRepository(adapter *adapters.AdapterGemini, log *zap.SugaredLogger) *LlmRepo {
	return &LlmRepo{adapter: adapter, log: log}
}

func (l *LlmRepo) model(systemInstruction string) *genai.GenerativeModel {
	model := l.adapter.Client.GenerativeModel(l.adapter.Model)
	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	}
	return model
}

// StreamText sends prompt and hands every non-empty text chunk to onChunk in order.
// An error returned by onChunk stops the stream and is returned as is.
func (l *LlmRepo) StreamText(ctx context.Context, systemInstruction, prompt string, onChunk func(string) error) error {
	iter := l.model(systemInstruction).GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			l.log.Errorw("stream text from llm", "error", err)
			return err
		}
		text := responseText(resp)
		if text == "" {
			continue
		}
		if err := onChunk(text); err != nil {
			return err
		}
	}
}

// GenerateJSON returns the raw text of a schema-constrained completion.
func (l *LlmRepo) GenerateJSON(ctx context.Context, req guidance.StructuredPrompt) (string, error) {
	model := l.model(req.SystemInstruction)
	model.SetTemperature(req.Temperature)
	model.SetTopP(req.TopP)
	model.SetTopK(req.TopK)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = buildSchema(req)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		l.log.Errorw("generate json from llm", "error", err)
		return "", err
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		if reason := finishReason(resp); reason != "" {
			return "", fmt.Errorf("%w: finish reason %s", errs.ErrNoContent, reason)
		}
		return "", errs.ErrNoContent
	}
	return text, nil
}

func buildSchema(req guidance.StructuredPrompt) *genai.Schema {
	properties := make(map[string]*genai.Schema, len(req.Properties))
	for name, description := range req.Properties {
		properties[name] = &genai.Schema{Type: genai.TypeString, Description: description}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: properties,
		Required:   req.Required,
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	return text.String()
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	reason := resp.Candidates[0].FinishReason
	if reason == genai.FinishReasonUnspecified {
		return ""
	}
	return reason.String()
}
