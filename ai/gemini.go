package ai

import (
	"context"
	"errors"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/utils"
	"google.golang.org/genai"
	"strings"
)

type gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.New(errs.Configuration, "initializing gemini", err)
	}
	return &gemini{client: client, model: model}, nil
}

func (g *gemini) Generate(ctx context.Context, req Request) (string, error) {
	discord.Infof("Sending to Gemini %s", g.model)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Input), cfg)
	if err != nil {
		status := 0
		var apierr genai.APIError
		if errors.As(err, &apierr) {
			status = apierr.Code
		}
		return "", classify("gemini", status, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", errs.NewMalformed("gemini returned no candidates", utils.AsJson(resp))
	}
	if resp.UsageMetadata != nil {
		discord.Infof("Gemini usage: %d prompt, %d candidate tokens",
			resp.UsageMetadata.PromptTokenCount, resp.UsageMetadata.CandidatesTokenCount)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
