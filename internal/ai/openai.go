package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"imagescout/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// IntroWriter produces the optional intro paragraph for a gallery.
type IntroWriter interface {
	// WriteIntro creates a short paragraph introducing a gallery of images
	// found for the query.
	WriteIntro(ctx context.Context, query string, images []model.ImageRecord) (string, error)
}

// OpenAIClient implements IntroWriter using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) WriteIntro(ctx context.Context, query string, images []model.ImageRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	if len(images) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, img := range images {
		if i >= 10 {
			break
		}
		title := img.Title
		if title == "" {
			title = "untitled"
		}
		fmt.Fprintf(b, "- %s (%s)\n", title, img.Platform)
	}
	sys := `
		You write short intros for photo galleries.
		Return 2-3 sentences (40-90 words), plain text, no links, no lists.
		Be warm and descriptive; do not enumerate the images one by one.
		`
	user := fmt.Sprintf("Gallery topic: %s\nSample images (title and platform):\n%s\nTask: Write an intro paragraph for this gallery.", query, b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: write intro error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	// Default timeout guard, if caller didn't set one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
