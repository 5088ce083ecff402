package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/cache"
	"github.com/jobsplus/jobsplus/internal/domain/job"
	"github.com/jobsplus/jobsplus/internal/http/middlewares"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
)

type JobsStore interface {
	Create(in job.CreateJobInput) (job.Job, error)
	GetByID(id string) (job.Job, error)
	Filter(f job.Filter) []job.Job
	DeleteOwned(id, requesterID string) error
	Modify(id string, fn func(job.Job) (job.Job, bool)) (job.Job, bool, error)
}

type JobsHandler struct {
	repo     JobsStore
	listings *cache.Listings
}

func NewJobsHandler(repo JobsStore, listings *cache.Listings) *JobsHandler {
	return &JobsHandler{repo: repo, listings: listings}
}

// ListJobs serves the public listing. Filters combine with AND semantics;
// see parseFilter for how each query parameter is interpreted.
func (h *JobsHandler) ListJobs(ctx *gin.Context) {
	key := ctx.Request.URL.RawQuery

	if h.listings != nil {
		if jobs, ok := h.listings.Get(key); ok {
			ctx.JSON(http.StatusOK, gin.H{"items": jobs, "count": len(jobs)})
			return
		}
	}

	jobs := h.repo.Filter(parseFilter(ctx))

	if h.listings != nil {
		h.listings.Set(key, jobs)
	}

	ctx.JSON(http.StatusOK, gin.H{"items": jobs, "count": len(jobs)})
}

// parseFilter maps query parameters onto the filter predicates. The boolean
// flags apply only when the parameter is literally "true"; any other value
// (including "false") leaves the predicate off.
func parseFilter(ctx *gin.Context) job.Filter {
	f := job.Filter{
		Search:   ctx.Query("search"),
		Location: ctx.Query("location"),
		Type:     ctx.Query("type"),
	}

	if ctx.Query("isRemote") == "true" {
		t := true
		f.IsRemote = &t
	}
	if ctx.Query("isWeb3") == "true" {
		t := true
		f.IsWeb3 = &t
	}

	if raw := ctx.Query("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Skills = append(f.Skills, s)
			}
		}
	}

	if raw := ctx.Query("salaryMin"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.SalaryMin = &n
		}
	}
	if raw := ctx.Query("salaryMax"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			f.SalaryMax = &n
		}
	}

	return f
}

type SalaryBody struct {
	Min      int    `json:"min" binding:"min=0"`
	Max      int    `json:"max"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

type CreateJobRequest struct {
	Title       string      `json:"title" binding:"required,max=120"`
	Company     string      `json:"company" binding:"required,max=120"`
	Description string      `json:"description" binding:"required,max=5000"`
	Location    string      `json:"location" binding:"required,max=120"`
	Type        string      `json:"type" binding:"omitempty,oneof=full-time part-time contract remote"`
	Salary      *SalaryBody `json:"salary"`
	Skills      []string    `json:"skills"`
	Experience  string      `json:"experience"`
	Education   string      `json:"education"`
	Benefits    []string    `json:"benefits"`
	IsRemote    bool        `json:"isRemote"`
	IsWeb3      bool        `json:"isWeb3"`
}

func (h *JobsHandler) CreateJob(ctx *gin.Context) {
	h.createJob(ctx, false)
}

// CreatePremiumJob is the paid listing tier; identical input, premium flag
// forced on.
func (h *JobsHandler) CreatePremiumJob(ctx *gin.Context) {
	h.createJob(ctx, true)
}

func (h *JobsHandler) createJob(ctx *gin.Context, premium bool) {
	employerID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || employerID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req CreateJobRequest
	if !BindJSON(ctx, &req) {
		return
	}

	in := job.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Education:   req.Education,
		Benefits:    req.Benefits,
		IsRemote:    req.IsRemote,
		IsWeb3:      req.IsWeb3,
		EmployerID:  employerID,
		IsPremium:   premium,
	}
	if req.Salary != nil {
		in.Salary = &job.Salary{
			Min:      req.Salary.Min,
			Max:      req.Salary.Max,
			Currency: req.Salary.Currency,
		}
	}

	created, err := h.repo.Create(in)
	if err != nil {
		var vErr *memory.ValidationError
		if errors.As(err, &vErr) {
			RespondValidation(ctx, vErr.Errors)
			return
		}
		RespondInternal(ctx, "Could not create job")
		return
	}

	h.invalidateListings()
	ctx.JSON(http.StatusCreated, gin.H{"job": created})
}

func (h *JobsHandler) GetJob(ctx *gin.Context) {
	id := ctx.Param("id")

	j, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found")
			return
		}
		RespondInternal(ctx, "Could not fetch job")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"job": j})
}

// DeleteJob removes a listing; only its owner may do so.
func (h *JobsHandler) DeleteJob(ctx *gin.Context) {
	requesterID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || requesterID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")

	if err := h.repo.DeleteOwned(id, requesterID); err != nil {
		switch {
		case errors.Is(err, job.ErrNotFound):
			RespondNotFound(ctx, "Job not found")
		case errors.Is(err, job.ErrNotOwner):
			RespondForbidden(ctx, "Not authorized to delete this job")
		default:
			RespondInternal(ctx, "Could not delete job")
		}
		return
	}

	h.invalidateListings()
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Apply records the requester as an applicant; applying twice is a conflict.
func (h *JobsHandler) Apply(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	id := ctx.Param("id")

	j, added, err := h.repo.Modify(id, func(cur job.Job) (job.Job, bool) {
		return job.AddApplicant(cur, userID)
	})
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			RespondNotFound(ctx, "Job not found")
			return
		}
		RespondInternal(ctx, "Could not apply")
		return
	}

	if !added {
		RespondConflict(ctx, "already_applied", "You have already applied to this job.")
		return
	}

	h.invalidateListings()
	ctx.JSON(http.StatusOK, gin.H{
		"applied":         true,
		"applicantsCount": len(j.Applicants),
	})
}

func (h *JobsHandler) invalidateListings() {
	if h.listings != nil {
		h.listings.Invalidate()
	}
}
