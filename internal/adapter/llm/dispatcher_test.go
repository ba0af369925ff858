package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xiaot623/healthdesk/internal/domain"
)

type fakeProvider struct {
	reply string
	err   error
	panic bool
	wait  bool
	got   domain.Conversation
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	f.got = conv
	if f.panic {
		panic("boom")
	}
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestDispatcherNotConfigured(t *testing.T) {
	d := NewDispatcher(nil)
	assert.False(t, d.Configured())
	assert.Equal(t, NotConfiguredMessage, d.Chat(context.Background(), testConversation))
}

func TestDispatcherReply(t *testing.T) {
	p := &fakeProvider{reply: "rest and hydrate"}
	d := NewDispatcher(p)
	assert.True(t, d.Configured())
	assert.Equal(t, "rest and hydrate", d.Chat(context.Background(), testConversation))
}

func TestDispatcherNormalizesRoles(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	d := NewDispatcher(p)
	d.Chat(context.Background(), domain.Conversation{
		{Role: "bot", Content: "a"},
		{Role: domain.RoleAssistant, Content: "b"},
	})
	if assert.Len(t, p.got, 2) {
		assert.Equal(t, domain.RoleUser, p.got[0].Role)
		assert.Equal(t, domain.RoleAssistant, p.got[1].Role)
	}
}

func TestDispatcherEmptyReplyIsPassedThrough(t *testing.T) {
	d := NewDispatcher(&fakeProvider{})
	assert.Equal(t, "", d.Chat(context.Background(), testConversation))
}

func TestDispatcherFailures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		want     string
	}{
		{"provider error", &fakeProvider{err: errors.New("status 500")}, UnavailableMessage},
		{"not configured error", &fakeProvider{err: ErrNotConfigured}, NotConfiguredMessage},
		{"wrapped not configured", &fakeProvider{err: errors.Join(errors.New("x"), ErrNotConfigured)}, NotConfiguredMessage},
		{"panic", &fakeProvider{panic: true}, UnavailableMessage},
		{"caller deadline", &fakeProvider{wait: true}, UnavailableMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			d := NewDispatcher(tt.provider)
			assert.Equal(t, tt.want, d.Chat(ctx, testConversation))
		})
	}
}

func TestFlattenConversation(t *testing.T) {
	got := FlattenConversation(domain.Conversation{
		{Role: domain.RoleSystem, Content: "s"},
		{Role: domain.RoleUser, Content: "u"},
		{Role: domain.RoleAssistant, Content: "a"},
	})
	assert.Equal(t, "SYSTEM: s\n\nUSER: u\n\nASSISTANT: a", got)
	assert.Empty(t, FlattenConversation(nil))
}
