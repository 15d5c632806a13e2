package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kaktovottak/referralhub/internal/repository"
)

// recentLimit caps the "last invited" list in personal stats.
const recentLimit = 10

type InvitedEntry struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type Stats struct {
	UserID      int64          `json:"user_id"`
	InviteCount int64          `json:"invite_count"`
	Recent      []InvitedEntry `json:"recent"`
}

type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	UserID      int64  `json:"user_id"`
	InviteCount int64  `json:"invite_count"`
}

type StatsService interface {
	MyStats(ctx context.Context, userID int64) (*Stats, error)
	// TopInviters returns up to limit inviters ordered by invite count
	// descending; limit <= 0 uses the configured default.
	TopInviters(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type statsService struct {
	invitedRepo  repository.InvitedUserRepository
	stateStore   repository.StateStore
	cacheTTL     time.Duration
	defaultLimit int
	logger       *zap.Logger
}

func NewStatsService(
	invitedRepo repository.InvitedUserRepository,
	stateStore repository.StateStore,
	cacheTTL time.Duration,
	defaultLimit int,
	logger *zap.Logger,
) StatsService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &statsService{
		invitedRepo:  invitedRepo,
		stateStore:   stateStore,
		cacheTTL:     cacheTTL,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

func (s *statsService) MyStats(ctx context.Context, userID int64) (*Stats, error) {
	count, err := s.invitedRepo.CountByInviter(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count invites: %w", err)
	}

	recent, err := s.invitedRepo.RecentByInviter(ctx, userID, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent invites: %w", err)
	}

	stats := &Stats{UserID: userID, InviteCount: count, Recent: make([]InvitedEntry, 0, len(recent))}
	for _, inv := range recent {
		stats.Recent = append(stats.Recent, InvitedEntry{
			UserID:      inv.InvitedUserID,
			DisplayName: inv.DisplayName,
		})
	}
	return stats, nil
}

func (s *statsService) TopInviters(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:top:%d", limit)
	if cached, err := s.stateStore.Get(ctx, cacheKey); err != nil {
		s.logger.Warn("leaderboard cache read failed", zap.Error(err))
	} else if cached != nil {
		var entries []LeaderboardEntry
		if err := json.Unmarshal(cached, &entries); err == nil {
			return entries, nil
		}
		// Corrupt cache entry: fall through to the database.
	}

	rows, err := s.invitedRepo.TopInviters(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load top inviters: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		name := row.DisplayName
		if name == "" {
			name = fmt.Sprintf("User_%d", row.InviterUserID)
		}
		entries = append(entries, LeaderboardEntry{
			DisplayName: name,
			UserID:      row.InviterUserID,
			InviteCount: row.InviteCount,
		})
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := s.stateStore.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
			s.logger.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}
