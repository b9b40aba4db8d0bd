package chat

import (
	"context"
	"testing"

	"github.com/moodcompanion/mood-companion/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestReply_noKeyFallsBackLocally(t *testing.T) {
	svc := NewService(&config.Config{ChatModel: "gpt-3.5-turbo"})

	reply := svc.Reply(context.Background(), "I had a rough day", nil)
	assert.Equal(t, localReply, reply)

	// Deterministic regardless of history.
	reply = svc.Reply(context.Background(), "still rough", []Message{
		{Sender: "You", Text: "I had a rough day"},
		{Sender: "Companion", Text: "That sounds hard."},
	})
	assert.Equal(t, localReply, reply)
}
