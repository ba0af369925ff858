package llm

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Morwran/yagpt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xiaot623/healthdesk/internal/domain"
)

// YandexModel is the model yagpt always requests. yagpt also fixes the
// temperature and token limit, so only Options.Timeout applies to Yandex.
const YandexModel = yagpt.YaModelLite

// iamRefreshMargin is how long before expiry an IAM token is replaced.
const iamRefreshMargin = 10 * time.Minute

// YandexProvider calls YandexGPT through yagpt. IAM tokens live for at most
// 12 hours and are exchanged again from the OAuth token when they near
// expiry or are rejected.
type YandexProvider struct {
	ya      yagpt.YaGPTFace
	iam     yagpt.IamFace
	timeout time.Duration
	now     func() time.Time

	mu        sync.Mutex
	iamToken  string
	expiresAt time.Time
}

// NewYandex creates the YandexGPT client for a folder. The first IAM token
// is exchanged here so a bad OAuth token fails at startup.
func NewYandex(oauthToken, folderID string, opts Options) (*YandexProvider, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	if opts.Model != "" && opts.Model != YandexModel {
		log.Printf("WARN: yandex provider always uses %s, ignoring AI_MODEL=%s", YandexModel, opts.Model)
	}

	p := newYandexProvider(ya, iam, opts)
	ctx, cancel := p.callContext(context.Background())
	defer cancel()
	if _, err := p.token(ctx, false); err != nil {
		return nil, err
	}
	return p, nil
}

func newYandexProvider(ya yagpt.YaGPTFace, iam yagpt.IamFace, opts Options) *YandexProvider {
	return &YandexProvider{
		ya:      ya,
		iam:     iam,
		timeout: opts.Timeout,
		now:     time.Now,
	}
}

// Name returns the provider name.
func (p *YandexProvider) Name() string {
	return "yandex"
}

// Send runs one completion and returns the first alternative. A request
// rejected as unauthenticated is retried once with a fresh IAM token.
func (p *YandexProvider) Send(ctx context.Context, conv domain.Conversation) (string, error) {
	if len(conv) == 0 {
		return "", ErrEmptyConversation
	}

	messages := make([]yagpt.Message, 0, len(conv))
	for _, m := range conv {
		msg := yagpt.Message{Content: m.Content}
		switch m.Role {
		case domain.RoleSystem:
			msg.Role = "system"
		case domain.RoleAssistant:
			msg.Role = "assistant"
		default:
			msg.Role = "user"
		}
		messages = append(messages, msg)
	}

	resp, err := p.complete(ctx, messages, false)
	if status.Code(err) == codes.Unauthenticated {
		log.Printf("WARN: yandex rejected IAM token, refreshing: %v", err)
		resp, err = p.complete(ctx, messages, true)
	}
	if err != nil {
		return "", fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return "", nil
	}
	return resp.Alternatives[0].Message.Content, nil
}

func (p *YandexProvider) complete(ctx context.Context, messages []yagpt.Message, forceRefresh bool) (*yagpt.CompletionResponse, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	tok, err := p.token(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	return p.ya.CompletionWithCtx(ctx, tok, messages)
}

// token returns a valid IAM token, exchanging a new one when the current one
// is missing, close to expiry or force is set.
func (p *YandexProvider) token(ctx context.Context, force bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !force && p.iamToken != "" && p.now().Add(iamRefreshMargin).Before(p.expiresAt) {
		return p.iamToken, nil
	}

	resp, err := p.iam.CreateWithCtx(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create iam token: %w", err)
	}
	p.iamToken = resp.IamToken
	p.expiresAt = resp.ExpiresAt
	return p.iamToken, nil
}

func (p *YandexProvider) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}
