package chat

import (
	"context"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are a kind, empathetic AI mood companion. Always respond supportively, never judgmentally. Keep replies short (2-4 sentences). Avoid clinical diagnoses. Offer gentle, actionable suggestions (breathing, journaling, short walk)."

const (
	localReply   = "(Local) Thanks for sharing. I'm here with you. Try a deep breath or jotting a few thoughts - small steps help."
	errorReply   = "Sorry, I had trouble generating a response. Try again in a moment."
	defaultReply = "I'm here for you."
)

// Message is one turn of the companion conversation.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Service is the conversational companion. Without an API key it answers with
// a fixed local reply, and any upstream failure collapses to an apology, so
// callers never see an error.
type Service struct {
	config *config.Config
	client openai.Client
}

// NewService creates a new chat service
func NewService(cfg *config.Config) *Service {
	s := &Service{config: cfg}
	if cfg.OpenAIAPIKey != "" {
		s.client = openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
	}
	return s
}

// Reply generates a supportive response to the user's message.
func (s *Service) Reply(ctx context.Context, message string, history []Message) string {
	if s.config.OpenAIAPIKey == "" {
		return localReply
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, m := range history {
		if m.Sender == "You" {
			messages = append(messages, openai.UserMessage(m.Text))
		} else {
			messages = append(messages, openai.AssistantMessage(m.Text))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(s.config.ChatModel),
		Messages:    messages,
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		logrus.Errorf("Chat completion failed: %v", err)
		return errorReply
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return defaultReply
	}
	return resp.Choices[0].Message.Content
}
