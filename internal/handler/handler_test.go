package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kaktovottak/referralhub/internal/config"
	"kaktovottak/referralhub/internal/platform"
	"kaktovottak/referralhub/internal/service"
	jwtpkg "kaktovottak/referralhub/pkg/jwt"
	"kaktovottak/referralhub/pkg/response"
)

type stubLinkService struct {
	link string
	err  error
}

func (s *stubLinkService) GetOrCreateLink(context.Context, int64, string) (string, error) {
	return s.link, s.err
}
func (s *stubLinkService) ChatLink() string { return "https://t.me/kaktovottak" }

type stubStatsService struct {
	stats   *service.Stats
	entries []service.LeaderboardEntry
}

func (s *stubStatsService) MyStats(context.Context, int64) (*service.Stats, error) {
	return s.stats, nil
}
func (s *stubStatsService) TopInviters(context.Context, int) ([]service.LeaderboardEntry, error) {
	return s.entries, nil
}

type stubJoinService struct {
	result *service.JoinResult
}

func (s *stubJoinService) RecordJoin(context.Context, int64, string, string) (*service.JoinResult, error) {
	return s.result, nil
}

type stubRewardService struct {
	statement string
	result    *service.IssueResult
	err       error
}

func (s *stubRewardService) CheckDebt(context.Context, int64, int64, int64) (string, error) {
	return s.statement, s.err
}
func (s *stubRewardService) MarkRewards(context.Context, int64, int64, int64) (*service.IssueResult, error) {
	return s.result, s.err
}

type testEnv struct {
	router *gin.Engine
	token  string

	linkService   *stubLinkService
	rewardService *stubRewardService
	joinService   *stubJoinService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := jwtpkg.NewManager("test-signing-key", "referralhub-test", time.Hour)
	token, err := jwtManager.GenerateServiceToken("bot-dispatch")
	require.NoError(t, err)

	env := &testEnv{
		token:         token,
		linkService:   &stubLinkService{link: "https://t.me/+abc"},
		rewardService: &stubRewardService{},
		joinService:   &stubJoinService{result: &service.JoinResult{}},
	}
	env.router = SetupRouter(
		&config.Config{},
		zap.NewNop(),
		jwtManager,
		NewReferralHandler(env.linkService, &stubStatsService{}),
		NewAdminHandler(env.rewardService),
		NewWebhookHandler(env.joinService),
	)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authorized bool) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestServiceAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodGet, "/api/v1/chat", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := env.do(t, http.MethodGet, "/api/v1/chat", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
}

func TestGetLink(t *testing.T) {
	t.Run("returns the link", func(t *testing.T) {
		env := newTestEnv(t)
		w, resp := env.do(t, http.MethodPost, "/api/v1/links",
			gin.H{"user_id": 100, "display_name": "alice"}, true)

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "https://t.me/+abc", data["link_url"])
	})

	t.Run("permission denied surfaces to the caller", func(t *testing.T) {
		env := newTestEnv(t)
		env.linkService.err = platform.ErrPermissionDenied

		w, resp := env.do(t, http.MethodPost, "/api/v1/links", gin.H{"user_id": 100}, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, resp.Message, "manage invite links")
	})

	t.Run("missing user_id rejected", func(t *testing.T) {
		env := newTestEnv(t)
		w, _ := env.do(t, http.MethodPost, "/api/v1/links", gin.H{"display_name": "x"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	adminBody := gin.H{"actor_user_id": 1, "chat_id": -1001, "target_user_id": 100}

	t.Run("wrong chat maps to 403", func(t *testing.T) {
		env := newTestEnv(t)
		env.rewardService.err = service.ErrWrongChat

		w, _ := env.do(t, http.MethodPost, "/api/v1/admin/debt/check", adminBody, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("non-admin maps to 403", func(t *testing.T) {
		env := newTestEnv(t)
		env.rewardService.err = service.ErrNotAdmin

		w, _ := env.do(t, http.MethodPost, "/api/v1/admin/rewards/mark", adminBody, true)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("debt statement returned", func(t *testing.T) {
		env := newTestEnv(t)
		env.rewardService.statement = "Долгов по наградам нет ✅"

		w, resp := env.do(t, http.MethodPost, "/api/v1/admin/debt/check", adminBody, true)
		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Долгов по наградам нет ✅", data["statement"])
	})

	t.Run("mark result returned", func(t *testing.T) {
		env := newTestEnv(t)
		env.rewardService.result = &service.IssueResult{
			NewLabels:    []string{"Коммуникативный"},
			NewFlowers:   150,
			TotalFlowers: 150,
		}

		w, resp := env.do(t, http.MethodPost, "/api/v1/admin/rewards/mark", adminBody, true)
		assert.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(150), data["new_flowers"])
	})
}

func TestMemberJoined(t *testing.T) {
	env := newTestEnv(t)
	env.joinService.result = &service.JoinResult{Credited: true, InviterUserID: 100}

	w, resp := env.do(t, http.MethodPost, "/api/v1/events/member-joined",
		gin.H{"user_id": 200, "display_name": "bob", "invite_link": "https://t.me/+abc"}, true)

	assert.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["credited"])
	assert.Equal(t, float64(100), data["inviter_user_id"])
}
