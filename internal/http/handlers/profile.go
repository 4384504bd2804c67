package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	profiledomain "github.com/coder0404/leetcode-Tracker/internal/domain/profile"
	"github.com/gin-gonic/gin"
)

type ProfileService interface {
	GetProfile(ctx context.Context, username string, refresh bool) (*profiledomain.Profile, error)
	Leaderboard(ctx context.Context, usernames []string, refresh bool) []profiledomain.LeaderboardEntry
}

type ProfileHandler struct {
	profileService ProfileService
	tracked        []string
}

func NewProfileHandler(profileService ProfileService, tracked []string) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, tracked: tracked}
}

// GetProfile serves GET /leetcode/:username?refresh=true.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	refresh := isTruthy(c.Query("refresh"))
	h.respondProfile(c, username, refresh)
}

// PostProfile serves the body-based form the dashboard issues:
// POST /leetcode with {"username": "...", "refresh": false}.
func (h *ProfileHandler) PostProfile(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Refresh  bool   `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	h.respondProfile(c, strings.TrimSpace(req.Username), req.Refresh)
}

// Leaderboard serves GET /leetcode/all for the tracked username list.
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	refresh := isTruthy(c.Query("refresh"))
	entries := h.profileService.Leaderboard(c.Request.Context(), h.tracked, refresh)
	c.JSON(http.StatusOK, gin.H{"items": entries, "count": len(entries)})
}

func (h *ProfileHandler) respondProfile(c *gin.Context, username string, refresh bool) {
	p, err := h.profileService.GetProfile(c.Request.Context(), username, refresh)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": errorKind(err)})
		return
	}
	c.JSON(http.StatusOK, p)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, profiledomain.ErrMissingUsername),
		errors.Is(err, profiledomain.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, profiledomain.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorKind(err error) string {
	for _, kind := range []error{
		profiledomain.ErrMissingUsername,
		profiledomain.ErrInvalidUsername,
		profiledomain.ErrUserNotFound,
		profiledomain.ErrUpstreamUnavailable,
		profiledomain.ErrStoreUnavailable,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "fetch_failed"
}

func isTruthy(v string) bool {
	n := strings.ToLower(strings.TrimSpace(v))
	return n == "1" || n == "true" || n == "yes"
}
