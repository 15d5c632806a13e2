package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
	"kaktovottak/referralhub/internal/repository"
)

type JoinResult struct {
	Credited      bool  `json:"credited"`
	InviterUserID int64 `json:"inviter_user_id,omitempty"`
}

type JoinService interface {
	// RecordJoin credits a join to the owner of the used invite link. Joins
	// without a link, with an unregistered link, or for an already-credited
	// user are acknowledged without crediting anyone.
	RecordJoin(ctx context.Context, invitedUserID int64, displayName, inviteLink string) (*JoinResult, error)
}

type joinService struct {
	linkRepo    repository.InviteLinkRepository
	invitedRepo repository.InvitedUserRepository
	logger      *zap.Logger
}

func NewJoinService(
	linkRepo repository.InviteLinkRepository,
	invitedRepo repository.InvitedUserRepository,
	logger *zap.Logger,
) JoinService {
	return &joinService{
		linkRepo:    linkRepo,
		invitedRepo: invitedRepo,
		logger:      logger,
	}
}

func (s *joinService) RecordJoin(ctx context.Context, invitedUserID int64, displayName, inviteLink string) (*JoinResult, error) {
	if inviteLink == "" {
		return &JoinResult{}, nil
	}

	link, err := s.linkRepo.GetByURL(ctx, inviteLink)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &JoinResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve invite link: %w", err)
	}

	err = s.invitedRepo.Create(ctx, &model.InvitedUser{
		InviterUserID: link.OwnerUserID,
		InvitedUserID: invitedUserID,
		DisplayName:   displayName,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already credited once, ever; the log never accepts a second row.
		s.logger.Info("duplicate join ignored",
			zap.Int64("invited_user_id", invitedUserID),
			zap.Int64("inviter_user_id", link.OwnerUserID))
		return &JoinResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record join: %w", err)
	}

	s.logger.Info("join credited",
		zap.Int64("invited_user_id", invitedUserID),
		zap.Int64("inviter_user_id", link.OwnerUserID))
	return &JoinResult{Credited: true, InviterUserID: link.OwnerUserID}, nil
}
