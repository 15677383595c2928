package ai

import (
	"context"
	"errors"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/Odunjoy/NaijaStoic-props/errs"
	"github.com/Odunjoy/NaijaStoic-props/utils"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiGenerator struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey string, model string, opts ...option.RequestOption) Generator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &openaiGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *openaiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	discord.Infof("Sending to OpenAI %s", o.model)
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemInstruction),
			openai.UserMessage(req.Input),
		},
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		status := 0
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			status = apierr.StatusCode
		}
		return "", classify("openai", status, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errs.NewMalformed("openai returned no choices", utils.AsJson(resp))
	}
	discord.Infof("OpenAI usage: %d prompt, %d completion tokens", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}
