package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubClient struct {
	out   string
	err   error
	block bool // wait for context cancellation before returning
	got   []Message
}

func (c *stubClient) Chat(ctx context.Context, messages []Message) (string, error) {
	c.got = messages
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.out, c.err
}

func inPool(pool []string, s string) bool {
	for _, p := range pool {
		if p == s {
			return true
		}
	}
	return false
}

func TestAssistantDisabledUsesLocalReplies(t *testing.T) {
	a := NewAssistant(nil, zap.NewNop().Sugar())
	got := a.SmallTalk(context.Background(), "тяжёлый день")
	if !inPool(disabledReplies, got) {
		t.Errorf("got %q, want a disabled-mode reply", got)
	}
}

func TestAssistantBackendErrorFallsBack(t *testing.T) {
	a := NewAssistant(&stubClient{err: errors.New("boom")}, zap.NewNop().Sugar())
	got := a.SmallTalk(context.Background(), "привет")
	if !inPool(fallbackReplies, got) {
		t.Errorf("got %q, want a fallback reply", got)
	}
}

func TestAssistantEmptyResponseFallsBack(t *testing.T) {
	a := NewAssistant(&stubClient{out: ""}, zap.NewNop().Sugar())
	got := a.SmallTalk(context.Background(), "привет")
	if !inPool(fallbackReplies, got) {
		t.Errorf("got %q, want a fallback reply", got)
	}
}

func TestAssistantTimeoutIsBounded(t *testing.T) {
	a := NewAssistant(&stubClient{block: true}, zap.NewNop().Sugar())
	a.timeout = 50 * time.Millisecond

	start := time.Now()
	got := a.SmallTalk(context.Background(), "привет")
	elapsed := time.Since(start)

	if !inPool(fallbackReplies, got) {
		t.Errorf("got %q, want a fallback reply", got)
	}
	if elapsed > 2*time.Second {
		t.Errorf("reply took %v, want bounded wait", elapsed)
	}
}

func TestAssistantSuccessPassesThrough(t *testing.T) {
	a := NewAssistant(&stubClient{out: "тёплый ответ"}, zap.NewNop().Sugar())
	got := a.SmallTalk(context.Background(), "привет")
	if got != "тёплый ответ" {
		t.Errorf("got %q, want %q", got, "тёплый ответ")
	}
}

func TestMorningFeedbackSeedsPrompt(t *testing.T) {
	stub := &stubClient{out: "ок"}
	a := NewAssistant(stub, zap.NewNop().Sugar())

	profile := map[string]string{"sleep": "Сложно заснуть"}
	a.MorningFeedback(context.Background(), "просыпаюсь с тревогой", "сон и пробуждение", profile)

	if len(stub.got) != 2 {
		t.Fatalf("expected system + user message, got %d", len(stub.got))
	}
	user := stub.got[1].Content
	if !strings.Contains(user, "просыпаюсь с тревогой") {
		t.Errorf("prompt missing the answer: %q", user)
	}
	if !strings.Contains(user, "сон и пробуждение") {
		t.Errorf("prompt missing the focus label: %q", user)
	}
	if !strings.Contains(user, "Сложно заснуть") {
		t.Errorf("prompt missing the profile: %q", user)
	}
}
