package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
	"kaktovottak/referralhub/internal/repository"
)

// In-memory fakes implementing the repository and platform interfaces,
// mirroring the error contracts of the pg implementations
// (gorm.ErrRecordNotFound, gorm.ErrDuplicatedKey).

type fakeLinkRepo struct {
	mu      sync.Mutex
	byOwner map[int64]model.InviteLink
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{byOwner: make(map[int64]model.InviteLink)}
}

func (r *fakeLinkRepo) Create(_ context.Context, link *model.InviteLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[link.OwnerUserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	link.CreatedAt = time.Now()
	r.byOwner[link.OwnerUserID] = *link
	return nil
}

func (r *fakeLinkRepo) GetByOwner(_ context.Context, ownerUserID int64) (*model.InviteLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.byOwner[ownerUserID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &link, nil
}

func (r *fakeLinkRepo) GetByURL(_ context.Context, linkURL string) (*model.InviteLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, link := range r.byOwner {
		if link.LinkURL == linkURL {
			return &link, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeInvitedRepo struct {
	mu    sync.Mutex
	rows  []model.InvitedUser
	links *fakeLinkRepo
	seq   int64
}

func newFakeInvitedRepo(links *fakeLinkRepo) *fakeInvitedRepo {
	return &fakeInvitedRepo{links: links}
}

func (r *fakeInvitedRepo) Create(_ context.Context, invited *model.InvitedUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.InvitedUserID == invited.InvitedUserID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	invited.ID = r.seq
	// Mirrors the autoCreateTime tag: stamped on insert unless preset.
	if invited.JoinedAt.IsZero() {
		invited.JoinedAt = time.Unix(r.seq, 0)
	}
	r.rows = append(r.rows, *invited)
	return nil
}

func (r *fakeInvitedRepo) CountByInviter(_ context.Context, inviterUserID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.InviterUserID == inviterUserID {
			count++
		}
	}
	return count, nil
}

func (r *fakeInvitedRepo) RecentByInviter(_ context.Context, inviterUserID int64, limit int) ([]model.InvitedUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.InvitedUser
	for _, row := range r.rows {
		if row.InviterUserID == inviterUserID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.After(out[j].JoinedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInvitedRepo) TopInviters(ctx context.Context, limit int) ([]repository.InviterCount, error) {
	r.mu.Lock()
	counts := make(map[int64]int64)
	for _, row := range r.rows {
		counts[row.InviterUserID]++
	}
	r.mu.Unlock()

	var out []repository.InviterCount
	for inviterID, count := range counts {
		name := ""
		if link, err := r.links.GetByOwner(ctx, inviterID); err == nil {
			name = link.DisplayName
		}
		out = append(out, repository.InviterCount{
			InviterUserID: inviterID,
			DisplayName:   name,
			InviteCount:   count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InviteCount != out[j].InviteCount {
			return out[i].InviteCount > out[j].InviteCount
		}
		return out[i].InviterUserID < out[j].InviterUserID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeProgressRepo struct {
	mu      sync.Mutex
	rows    map[int64]model.RewardProgress
	invited *fakeInvitedRepo
}

func newFakeProgressRepo(invited *fakeInvitedRepo) *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[int64]model.RewardProgress), invited: invited}
}

func (r *fakeProgressRepo) Get(_ context.Context, userID int64) (*model.RewardProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	progress, ok := r.rows[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &progress, nil
}

func (r *fakeProgressRepo) Init(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[userID]; !ok {
		r.rows[userID] = model.RewardProgress{UserID: userID}
	}
	return nil
}

func (r *fakeProgressRepo) MarkIssued(ctx context.Context, userID int64, plan func(count int64, p *model.RewardProgress) bool) (*model.RewardProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	progress, ok := r.rows[userID]
	if !ok {
		progress = model.RewardProgress{UserID: userID}
	}

	count, err := r.invited.CountByInviter(ctx, userID)
	if err != nil {
		return nil, err
	}

	if plan(count, &progress) {
		progress.UpdatedAt = time.Now()
		r.rows[userID] = progress
	} else if !ok {
		r.rows[userID] = progress
	}
	return &progress, nil
}

type fakeLinkFactory struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeLinkFactory) CreateInviteLink(_ context.Context, userID int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://t.me/+inv%d", userID), nil
}

type fakeAdminChecker struct {
	admins map[int64]bool
	err    error
}

func (f *fakeAdminChecker) IsAdmin(_ context.Context, userID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userID], nil
}

type fakeChatGate struct {
	chatID int64
}

func (f *fakeChatGate) IsTargetChat(chatID int64) bool {
	return chatID == f.chatID
}

var errPlatformDown = errors.New("platform unreachable")
