package genai

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// ProviderOpenAI is the name of the OpenAI compatible provider.
	ProviderOpenAI = "openai"

	defaultSchemaName = "response"
	maxTokens         = 8192
)

// OpenAI generates with OpenAI compatible chat completion endpoints.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI generator. baseURL is optional.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Name implements Generator.
func (o *OpenAI) Name() string { return ProviderOpenAI }

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	chatReq, err := o.chatRequest(req)
	if err != nil {
		return "", err
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", errors.Wrap(err, "failed to create chat completion")
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}

	for _, p := range req.Parts {
		if len(p.Data) == 0 {
			user.MultiContent = append(user.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})

			continue
		}

		// chat completions only take inline images
		if !strings.HasPrefix(p.MIMEType, "image/") {
			return openai.ChatCompletionRequest{}, errors.Wrap(ErrUnsupportedInput, p.MIMEType)
		}

		user.MultiContent = append(user.MultiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: []openai.ChatCompletionMessage{},
	}

	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	chatReq.Messages = append(chatReq.Messages, user)

	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}

	// reasoning models only accept max_completion_tokens
	if isReasoningModel(o.model) {
		chatReq.MaxCompletionTokens = maxTokens
	} else {
		chatReq.MaxTokens = maxTokens
	}

	if req.Schema != nil {
		schema, err := req.Schema.JSON()
		if err != nil {
			return openai.ChatCompletionRequest{}, errors.Wrap(err, "failed to encode response schema")
		}

		name := req.SchemaName
		if name == "" {
			name = defaultSchemaName
		}

		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: schema,
			},
		}
	}

	return chatReq, nil
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}

	return false
}
