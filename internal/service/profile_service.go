package service

import (
	"context"
	"sync"

	"zerah-finance/internal/core/domain"

	"github.com/rs/zerolog"
)

// ProfileServiceImpl implements ports.ProfileService.
type ProfileServiceImpl struct {
	mu      sync.RWMutex
	profile domain.Profile
	log     zerolog.Logger
}

// NewProfileService creates a new ProfileServiceImpl.
func NewProfileService(profile domain.Profile, log zerolog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{profile: profile, log: log}
}

func (s *ProfileServiceImpl) Get(_ context.Context) domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *ProfileServiceImpl) SetBusinessMode(_ context.Context, enabled bool) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.BusinessMode != enabled {
		s.log.Info().Bool("business_mode", enabled).Msg("profile mode changed")
	}
	s.profile.BusinessMode = enabled
	return s.profile
}
