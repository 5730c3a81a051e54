package service

import (
	"context"
	"strings"
	"sync"

	"zerah-finance/internal/core/domain"
	"zerah-finance/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CardServiceImpl implements ports.CardService over an in-memory card set.
type CardServiceImpl struct {
	mu    sync.RWMutex
	cards []domain.VirtualCard
	log   zerolog.Logger
}

// NewCardService creates a new CardServiceImpl holding a copy of cards.
func NewCardService(cards []domain.VirtualCard, log zerolog.Logger) *CardServiceImpl {
	c := make([]domain.VirtualCard, len(cards))
	copy(c, cards)
	return &CardServiceImpl{cards: c, log: log}
}

// List returns a copy of every card.
func (s *CardServiceImpl) List(_ context.Context) []domain.VirtualCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.VirtualCard, len(s.cards))
	copy(out, s.cards)
	return out
}

// SetActive freezes (false) or unfreezes (true) the card.
func (s *CardServiceImpl) SetActive(_ context.Context, id string, active bool) (*domain.VirtualCard, error) {
	return s.update(id, func(c *domain.VirtualCard) error {
		c.IsActive = active
		return nil
	})
}

// ToggleFreeze flips the card between active and frozen.
func (s *CardServiceImpl) ToggleFreeze(_ context.Context, id string) (*domain.VirtualCard, error) {
	return s.update(id, func(c *domain.VirtualCard) error {
		c.IsActive = !c.IsActive
		return nil
	})
}

// SetLimit parses raw as the new spending limit. The card is unchanged on error.
func (s *CardServiceImpl) SetLimit(_ context.Context, id string, raw string) (*domain.VirtualCard, error) {
	limit, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperror.ErrInvalidInput("limit must be a decimal number")
	}
	if limit.IsNegative() {
		return nil, apperror.ErrInvalidInput("limit must not be negative")
	}
	return s.update(id, func(c *domain.VirtualCard) error {
		c.Limit = domain.RoundMoney(limit)
		return nil
	})
}

func (s *CardServiceImpl) update(id string, fn func(*domain.VirtualCard) error) (*domain.VirtualCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		next := s.cards[i]
		if err := fn(&next); err != nil {
			return nil, err
		}
		s.cards[i] = next

		s.log.Info().
			Str("card_id", id).
			Bool("active", next.IsActive).
			Str("limit", next.Limit.String()).
			Msg("card updated")
		return &next, nil
	}
	return nil, apperror.ErrNotFound("card")
}
