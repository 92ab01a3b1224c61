package gpt

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Assistant wraps the chat-completions API with the fixed sales persona
// and the tool schema generated from the executor registry.
type Assistant struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	tools     []openai.Tool
	log       *slog.Logger
}

func NewAssistant(conf *config.Config, logger *slog.Logger) *Assistant {
	return &Assistant{
		client:    openai.NewClient(conf.OpenAI.ApiKey),
		model:     conf.OpenAI.Model,
		maxTokens: conf.OpenAI.MaxTokens,
		timeout:   time.Duration(conf.OpenAI.TimeoutSec) * time.Second,
		log:       logger.With(sl.Module("assistant")),
	}
}

// SetTools installs the tool registry's schema. Must be called before the
// first Complete so the model can choose to invoke tools on every round.
func (a *Assistant) SetTools(specs []entity.ToolSpec) {
	tools := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		def := &openai.FunctionDefinition{
			Name:        spec.Name,
			Description: spec.Description,
		}
		if spec.Parameters != nil {
			def.Parameters = spec.Parameters
		}
		tools = append(tools, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: def,
		})
	}
	a.tools = tools
}

// Complete runs one completion round: persona + history + the new user
// turn, tools attached. A provider error or timeout is terminal for the
// event; the caller does not retry.
func (a *Assistant) Complete(ctx context.Context, userText string, history []entity.ChatEntry) (entity.AiAnswer, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: botPersona,
	})
	for _, e := range history {
		messages = append(messages, toMessage(e))
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		Messages:  messages,
		MaxTokens: a.maxTokens,
		Tools:     a.tools,
	})
	if err != nil {
		a.log.With(
			slog.Int("history_len", len(history)),
			sl.Err(err),
		).Error("chat completion")
		return entity.AiAnswer{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return entity.AiAnswer{}, fmt.Errorf("chat completion: empty choices")
	}

	msg := resp.Choices[0].Message
	answer := entity.AiAnswer{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		answer.ToolCalls = append(answer.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}

	a.log.With(
		slog.Int("tool_calls", len(answer.ToolCalls)),
		slog.Int("content_length", len(answer.Content)),
	).Debug("completion round")

	return answer, nil
}

func toMessage(e entity.ChatEntry) openai.ChatCompletionMessage {
	msg := openai.ChatCompletionMessage{
		Role:    e.Role,
		Content: e.Content,
	}
	switch e.Role {
	case entity.RoleAssistant:
		for _, tc := range e.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
	case entity.RoleTool:
		msg.ToolCallID = e.ToolCallID
		msg.Name = e.Name
	}
	return msg
}
