package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
	"kaktovottak/referralhub/internal/platform"
	"kaktovottak/referralhub/internal/repository"
)

type LinkService interface {
	// GetOrCreateLink returns the user's personal invite link, minting one on
	// the platform on first request. Idempotent: once a link exists it is
	// returned unchanged regardless of the requested display name, and the
	// platform is not called again.
	GetOrCreateLink(ctx context.Context, userID int64, displayName string) (string, error)

	// ChatLink is the public join link of the community chat itself.
	ChatLink() string
}

type linkService struct {
	linkRepo     repository.InviteLinkRepository
	progressRepo repository.RewardProgressRepository
	linkFactory  platform.LinkFactory
	chatLink     string
}

func NewLinkService(
	linkRepo repository.InviteLinkRepository,
	progressRepo repository.RewardProgressRepository,
	linkFactory platform.LinkFactory,
	chatLink string,
) LinkService {
	return &linkService{
		linkRepo:     linkRepo,
		progressRepo: progressRepo,
		linkFactory:  linkFactory,
		chatLink:     chatLink,
	}
}

func (s *linkService) GetOrCreateLink(ctx context.Context, userID int64, displayName string) (string, error) {
	existing, err := s.linkRepo.GetByOwner(ctx, userID)
	if err == nil {
		return existing.LinkURL, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("load invite link: %w", err)
	}

	linkURL, err := s.linkFactory.CreateInviteLink(ctx, userID, displayName)
	if err != nil {
		// Nothing persisted; platform failures surface unchanged.
		return "", err
	}

	link := &model.InviteLink{
		OwnerUserID: userID,
		LinkURL:     linkURL,
		DisplayName: displayName,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		// A concurrent request minted first; their link wins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := s.linkRepo.GetByOwner(ctx, userID)
			if getErr != nil {
				return "", fmt.Errorf("load invite link after race: %w", getErr)
			}
			return existing.LinkURL, nil
		}
		return "", fmt.Errorf("save invite link: %w", err)
	}

	if err := s.progressRepo.Init(ctx, userID); err != nil {
		return "", fmt.Errorf("init reward progress: %w", err)
	}
	return linkURL, nil
}

func (s *linkService) ChatLink() string {
	return s.chatLink
}
