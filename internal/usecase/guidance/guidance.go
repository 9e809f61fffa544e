package guidance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"trophyseeker/internal/domain/catalog"
	"trophyseeker/internal/domain/game"
	"trophyseeker/internal/domain/guidance"
	errs "trophyseeker/internal/errors"
)

const (
	FeatureChat     = "chat"
	FeatureGuidance = "guidance"
)

const chatSystemInstruction = `You are an expert PlayStation trophy guide assistant.
Your goal is to help users find trophies, understand requirements, and provide tips for getting the Platinum trophy.
Keep your responses helpful, encouraging, and focused on PlayStation trophies.`

const guidanceSystemInstruction = `You are an expert PlayStation trophy guide AI.
Your goal is to provide comprehensive, spoiler-free guidance, warnings about missable trophies,
and effective strategies for achieving trophies in video games.
Format your response strictly as a JSON object with three top-level keys: 'hints', 'missables', and 'strategies'.
Each key's value must be a markdown-formatted string relevant to the user's query and the specific game.`

var guidanceProperties = map[string]string{
	"hints":      "Spoiler-free hints for general progress or current stuck point, formatted in markdown.",
	"missables":  "Warnings about potentially missable trophies or items, formatted in markdown.",
	"strategies": "General or specific strategies for efficient trophy hunting, combat, or puzzle solving, formatted in markdown.",
}

var markdownFence = regexp.MustCompile("```json\\n?|```")

type Generator interface {
	StreamText(ctx context.Context, systemInstruction, prompt string, onChunk func(string) error) error
	GenerateJSON(ctx context.Context, req guidance.StructuredPrompt) (string, error)
}

type GuidanceUsecase struct {
	gen     Generator
	tracker *Tracker
	log     *zap.SugaredLogger
}

// NewGuidanceUsecase accepts a nil generator; every call then fails with
// ErrMissingAPIKey.
func NewGuidanceUsecase(gen Generator, tracker *Tracker, log *zap.SugaredLogger) *GuidanceUsecase {
	return &GuidanceUsecase{gen: gen, tracker: tracker, log: log}
}

func requestKey(username, feature string) string {
	return username + "/" + feature
}

// ChatFeature names the cancellation slot of one chat conversation. An empty
// conversation is the user's default slot, FeatureChat.
func ChatFeature(conversation string) string {
	if conversation == "" {
		return FeatureChat
	}
	return FeatureChat + "/" + conversation
}

// Chat streams the assistant's answer to message through onChunk. A new
// message in the same conversation cancels the answer still streaming there.
func (g *GuidanceUsecase) Chat(ctx context.Context, username, conversation, message string, onChunk func(string) error) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errs.ErrEmptyMessage
	}
	if g.gen == nil {
		return errs.ErrMissingAPIKey
	}

	ctx, done := g.tracker.Start(ctx, requestKey(username, ChatFeature(conversation)))
	defer done()

	err := g.gen.StreamText(ctx, chatSystemInstruction, message, onChunk)
	return classify(ctx, err)
}

func (g *GuidanceUsecase) GameGuidance(ctx context.Context, username, gameID, progress string) (guidance.GameGuidance, error) {
	progress = strings.TrimSpace(progress)
	if gameID == "" || progress == "" {
		return guidance.GameGuidance{}, errs.ErrGuidanceInput
	}
	selected, ok := catalog.GameByID(gameID)
	if !ok {
		return guidance.GameGuidance{}, errs.ErrGameNotFound
	}
	if g.gen == nil {
		return guidance.GameGuidance{}, errs.ErrMissingAPIKey
	}

	ctx, done := g.tracker.Start(ctx, requestKey(username, FeatureGuidance))
	defer done()

	raw, err := g.gen.GenerateJSON(ctx, guidance.StructuredPrompt{
		SystemInstruction: guidanceSystemInstruction,
		Prompt: fmt.Sprintf("Game: %s\nMy Progress/Where I'm stuck: %s\n\nPlease provide hints, missable trophy warnings, and strategies.",
			selected.Name, progress),
		Temperature: 0.7,
		TopP:        0.9,
		TopK:        40,
		Properties:  guidanceProperties,
		Required:    []string{"hints", "missables", "strategies"},
	})
	if err = classify(ctx, err); err != nil {
		return guidance.GameGuidance{}, err
	}

	parsed, err := ParseGuidance(raw)
	if err != nil {
		g.log.Warnw("unparseable guidance response", "game", gameID, "response", raw)
		return guidance.GameGuidance{}, err
	}
	return parsed, nil
}

// Cancel stops the caller's in-flight request for feature, if any.
func (g *GuidanceUsecase) Cancel(username, feature string) bool {
	return g.tracker.Cancel(requestKey(username, feature))
}

func (g *GuidanceUsecase) Games(query string) []game.Game {
	return catalog.SearchGames(query)
}

// ParseGuidance decodes a guidance answer, tolerating markdown code fences.
func ParseGuidance(raw string) (guidance.GameGuidance, error) {
	cleaned := strings.TrimSpace(markdownFence.ReplaceAllString(raw, ""))
	var out guidance.GameGuidance
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return guidance.GameGuidance{}, fmt.Errorf("%w: %v", errs.ErrMalformedGuidance, err)
	}
	return out, nil
}

// classify reports any failure on a canceled context as ErrCanceled so
// callers can tell an abort from a genuine error.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		cause := context.Cause(ctx)
		if cause == nil {
			cause = err
		}
		return fmt.Errorf("%w: %v", errs.ErrCanceled, cause)
	}
	return err
}
