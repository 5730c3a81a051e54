package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	AssistantGreeting      = "Hello! I am Zerah AI. How can I help you manage your global finances today?"
	AssistantEmptyReply    = "I'm sorry, I couldn't process that. Try asking about your spending or FX rates."
	AssistantOfflineReply  = "Connection issues. Please check your network."
	defaultAssistantWindow = 30 * time.Second
)

const assistantPrompt = `You are Zerah AI, a financial assistant for a fintech app called Zerah Finance.
User's transactions: %s.
User query: %s.
Keep answers short, professional, and helpful. Focus on global banking, FX, and savings.`

// AssistantServiceImpl implements ports.AssistantService.
type AssistantServiceImpl struct {
	ledger  ports.LedgerService
	client  ports.GenerativeClient
	model   string
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu      sync.Mutex
	history []domain.ChatMessage
}

// NewAssistantService creates a new AssistantServiceImpl. A nil client makes
// every answer the offline reply.
func NewAssistantService(
	ledger ports.LedgerService,
	client ports.GenerativeClient,
	model string,
	timeout time.Duration,
	log zerolog.Logger,
) *AssistantServiceImpl {
	if timeout <= 0 {
		timeout = defaultAssistantWindow
	}
	s := &AssistantServiceImpl{
		ledger:  ledger,
		client:  client,
		model:   model,
		timeout: timeout,
		now:     time.Now,
		log:     log,
	}
	s.history = []domain.ChatMessage{{Role: domain.ChatRoleBot, Text: AssistantGreeting, SentAt: s.now().UTC()}}
	return s
}

// Ask records message, queries the model with the activity log as context and
// records the reply. Model failures become canned replies, not errors.
func (s *AssistantServiceImpl) Ask(ctx context.Context, message string) (*domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperror.ErrInvalidInput("message must not be empty")
	}
	s.appendMessage(domain.ChatRoleUser, message)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	reply := s.generate(ctx, message)
	msg := s.appendMessage(domain.ChatRoleBot, reply)
	return &msg, nil
}

func (s *AssistantServiceImpl) generate(ctx context.Context, message string) string {
	if s.client == nil {
		return AssistantOfflineReply
	}

	txs, err := s.ledger.Transactions(ctx, ports.TransactionFilter{})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load transactions for assistant")
		return AssistantOfflineReply
	}
	data, err := json.Marshal(txs)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode transactions for assistant")
		return AssistantOfflineReply
	}

	text, err := s.client.Generate(ctx, ports.GenerateRequest{
		Model:  s.model,
		Prompt: fmt.Sprintf(assistantPrompt, data, message),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("model", s.model).Msg("assistant generation failed")
		return AssistantOfflineReply
	}
	if strings.TrimSpace(text) == "" {
		return AssistantEmptyReply
	}
	return text
}

func (s *AssistantServiceImpl) appendMessage(role domain.ChatRole, text string) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := domain.ChatMessage{Role: role, Text: text, SentAt: s.now().UTC()}
	s.history = append(s.history, msg)
	return msg
}

// History returns the conversation so far, oldest first.
func (s *AssistantServiceImpl) History(_ context.Context) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}
