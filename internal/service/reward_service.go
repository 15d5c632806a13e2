package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
	"kaktovottak/referralhub/internal/platform"
	"kaktovottak/referralhub/internal/repository"
	"kaktovottak/referralhub/internal/reward"
)

// IssueResult summarizes one mark-issued transition.
type IssueResult struct {
	NoOp           bool     `json:"no_op"`
	NewLabels      []string `json:"new_labels,omitempty"`
	NewFlowers     int64    `json:"new_flowers"`
	NewExtraMoney  int64    `json:"new_extra_money"`
	TotalFlowers   int64    `json:"total_flowers"`
	TotalMoney     int64    `json:"total_money"`
	ExtraPaidTotal int64    `json:"extra_paid_total"`
	VIPStatus      string   `json:"vip_status,omitempty"`
	Statement      string   `json:"statement"`
}

type RewardService interface {
	// CheckDebt returns the human-readable statement of rewards earned but
	// not yet issued. Read-only: the ledger is never touched. Admin-only,
	// target-chat-only.
	CheckDebt(ctx context.Context, actorUserID, chatID, targetUserID int64) (string, error)

	// MarkRewards advances the ledger so everything currently owed counts as
	// issued. At most once per milestone: an immediate second call is a no-op.
	// Admin-only, target-chat-only.
	MarkRewards(ctx context.Context, actorUserID, chatID, targetUserID int64) (*IssueResult, error)
}

type rewardService struct {
	invitedRepo  repository.InvitedUserRepository
	progressRepo repository.RewardProgressRepository
	adminChecker platform.AdminChecker
	chatGate     platform.ChatGate
	logger       *zap.Logger
}

func NewRewardService(
	invitedRepo repository.InvitedUserRepository,
	progressRepo repository.RewardProgressRepository,
	adminChecker platform.AdminChecker,
	chatGate platform.ChatGate,
	logger *zap.Logger,
) RewardService {
	return &rewardService{
		invitedRepo:  invitedRepo,
		progressRepo: progressRepo,
		adminChecker: adminChecker,
		chatGate:     chatGate,
		logger:       logger,
	}
}

// authorize enforces the target-chat gate and the platform admin check.
// A platform failure counts as "not admin".
func (s *rewardService) authorize(ctx context.Context, actorUserID, chatID int64) error {
	if !s.chatGate.IsTargetChat(chatID) {
		return ErrWrongChat
	}
	isAdmin, err := s.adminChecker.IsAdmin(ctx, actorUserID)
	if err != nil {
		s.logger.Warn("admin check failed",
			zap.Int64("actor_user_id", actorUserID), zap.Error(err))
		return ErrNotAdmin
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}

// ledgerFor loads the persisted ledger, treating a missing row as empty.
func (s *rewardService) ledgerFor(ctx context.Context, userID int64) (reward.Ledger, error) {
	progress, err := s.progressRepo.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reward.Ledger{}, nil
	}
	if err != nil {
		return reward.Ledger{}, fmt.Errorf("load reward progress: %w", err)
	}
	return reward.Ledger{
		Issued:        progress.IssuedMilestones,
		RewardedExtra: progress.RewardedExtraCount,
	}, nil
}

func (s *rewardService) CheckDebt(ctx context.Context, actorUserID, chatID, targetUserID int64) (string, error) {
	if err := s.authorize(ctx, actorUserID, chatID); err != nil {
		return "", err
	}

	ledger, err := s.ledgerFor(ctx, targetUserID)
	if err != nil {
		return "", err
	}
	count, err := s.invitedRepo.CountByInviter(ctx, targetUserID)
	if err != nil {
		return "", fmt.Errorf("count invites: %w", err)
	}

	return reward.ComputeDebt(count, ledger).Statement(), nil
}

func (s *rewardService) MarkRewards(ctx context.Context, actorUserID, chatID, targetUserID int64) (*IssueResult, error) {
	if err := s.authorize(ctx, actorUserID, chatID); err != nil {
		return nil, err
	}

	var issuance reward.Issuance
	_, err := s.progressRepo.MarkIssued(ctx, targetUserID, func(count int64, p *model.RewardProgress) bool {
		issuance = reward.PlanIssuance(count, reward.Ledger{
			Issued:        p.IssuedMilestones,
			RewardedExtra: p.RewardedExtraCount,
		})
		if issuance.Empty() {
			return false
		}
		p.IssuedMilestones = issuance.Issued
		p.RewardedExtraCount = issuance.RewardedExtra
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("mark issued: %w", err)
	}

	result := &IssueResult{
		NoOp:           issuance.Empty(),
		NewFlowers:     issuance.NewFlowers(),
		NewExtraMoney:  issuance.NewExtraMoney(),
		TotalFlowers:   issuance.TotalFlowers(),
		TotalMoney:     issuance.TotalMoney(),
		ExtraPaidTotal: issuance.ExtraPaidTotal(),
		Statement:      issuance.Statement(),
	}
	for _, m := range issuance.NewMilestones {
		result.NewLabels = append(result.NewLabels, m.Label)
	}
	if issuance.VIPGranted() {
		result.VIPStatus = reward.VIPGrantedStatus
	}

	if !result.NoOp {
		s.logger.Info("rewards marked issued",
			zap.Int64("target_user_id", targetUserID),
			zap.Int64("actor_user_id", actorUserID),
			zap.Strings("new_labels", result.NewLabels),
			zap.Int64("new_extra_money", result.NewExtraMoney))
	}
	return result, nil
}
