package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/domain/job"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/http/middlewares"
	"github.com/jobsplus/jobsplus/internal/matching"
	"github.com/jobsplus/jobsplus/internal/observability"
)

type UserGetter interface {
	GetByID(id string) (user.User, error)
}

type JobsLister interface {
	Filter(f job.Filter) []job.Job
}

type MatchHandler struct {
	users UserGetter
	jobs  JobsLister
	prom  *observability.Prom
}

func NewMatchHandler(users UserGetter, jobs JobsLister, prom *observability.Prom) *MatchHandler {
	return &MatchHandler{users: users, jobs: jobs, prom: prom}
}

// MatchedJob is a listing enriched with its overlap score, rounded for
// display.
type MatchedJob struct {
	job.Job
	MatchScore float64 `json:"matchScore"`
}

// Match scores every active listing against the requester's skills.
func (h *MatchHandler) Match(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	u, err := h.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not match jobs")
		return
	}

	start := time.Now()
	// an empty filter keeps every active-status listing, newest first
	scored, err := matching.Match(u.Profile.Skills, h.jobs.Filter(job.Filter{}))
	if h.prom != nil {
		h.prom.MatchDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		if errors.Is(err, matching.ErrProfileIncomplete) {
			RespondError(ctx, http.StatusNotFound, "profile_incomplete",
				"User profile or skills not found. Please update your profile first.", nil)
			return
		}
		RespondInternal(ctx, "Could not match jobs")
		return
	}

	items := make([]MatchedJob, 0, len(scored))
	for _, s := range scored {
		items = append(items, MatchedJob{
			Job:        s.Job,
			MatchScore: matching.Round2(s.Score),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}
