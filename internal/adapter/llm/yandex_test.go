package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Morwran/yagpt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeIam struct {
	calls int
	ttl   time.Duration
	now   func() time.Time
	err   error
}

func (f *fakeIam) Create() (*yagpt.IamTokenResponse, error) {
	return f.CreateWithCtx(context.Background())
}

func (f *fakeIam) CreateWithCtx(ctx context.Context) (*yagpt.IamTokenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	return &yagpt.IamTokenResponse{
		IamToken:  fmt.Sprintf("iam-%d", f.calls),
		ExpiresAt: f.now().Add(f.ttl),
	}, nil
}

func (f *fakeIam) Close() error { return nil }

type fakeYaGPT struct {
	tokens   []string
	messages []yagpt.Message
	reject   map[string]bool
	deadline bool
}

func (f *fakeYaGPT) CompletionWithCtx(ctx context.Context, iamTok string, m []yagpt.Message) (*yagpt.CompletionResponse, error) {
	f.tokens = append(f.tokens, iamTok)
	f.messages = m
	_, f.deadline = ctx.Deadline()
	if f.reject[iamTok] {
		return nil, fmt.Errorf("failed completion: %w", status.Error(codes.Unauthenticated, "token expired"))
	}
	return &yagpt.CompletionResponse{
		Alternatives: []yagpt.Alternative{{Message: yagpt.Message{Role: "assistant", Content: "answer"}}},
	}, nil
}

func (f *fakeYaGPT) Completion(iamTok string, m []yagpt.Message) (*yagpt.CompletionResponse, error) {
	return f.CompletionWithCtx(context.Background(), iamTok, m)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestYandex(ya *fakeYaGPT, ttl time.Duration) (*YandexProvider, *fakeIam, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	iam := &fakeIam{ttl: ttl, now: clock.Now}
	p := newYandexProvider(ya, iam, Options{Timeout: time.Second})
	p.now = clock.Now
	return p, iam, clock
}

func TestYandexSendMapsRoles(t *testing.T) {
	ya := &fakeYaGPT{}
	p, _, _ := newTestYandex(ya, 12*time.Hour)

	text, err := p.Send(context.Background(), testConversation)
	require.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, "yandex", p.Name())
	require.Len(t, ya.messages, 2)
	assert.Equal(t, "system", ya.messages[0].Role)
	assert.Equal(t, "user", ya.messages[1].Role)
	assert.True(t, ya.deadline)
}

func TestYandexReusesTokenUntilNearExpiry(t *testing.T) {
	ya := &fakeYaGPT{}
	p, iam, clock := newTestYandex(ya, 12*time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := p.Send(ctx, testConversation)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, iam.calls)

	clock.t = clock.t.Add(12*time.Hour - iamRefreshMargin + time.Second)
	_, err := p.Send(ctx, testConversation)
	require.NoError(t, err)
	assert.Equal(t, 2, iam.calls)
	assert.Equal(t, []string{"iam-1", "iam-1", "iam-1", "iam-2"}, ya.tokens)
}

func TestYandexRefreshesRejectedToken(t *testing.T) {
	ya := &fakeYaGPT{reject: map[string]bool{"iam-1": true}}
	p, iam, _ := newTestYandex(ya, 12*time.Hour)

	text, err := p.Send(context.Background(), testConversation)
	require.NoError(t, err)
	assert.Equal(t, "answer", text)
	assert.Equal(t, 2, iam.calls)
	assert.Equal(t, []string{"iam-1", "iam-2"}, ya.tokens)
}

func TestYandexIamFailure(t *testing.T) {
	ya := &fakeYaGPT{}
	p, iam, _ := newTestYandex(ya, 12*time.Hour)
	iam.err = errors.New("oauth token revoked")

	_, err := p.Send(context.Background(), testConversation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oauth token revoked")
	assert.Empty(t, ya.tokens)
}
