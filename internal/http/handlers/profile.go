package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/http/middlewares"
)

type ProfileStore interface {
	GetByID(id string) (user.User, error)
	UpdateProfile(id string, p user.ProfilePatch) (user.User, error)
}

type ProfileHandler struct {
	users ProfileStore
}

func NewProfileHandler(users ProfileStore) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) GetProfile(ctx *gin.Context) {
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
		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateProfileRequest carries only the fields legal to patch; absent keys
// leave the stored value alone.
type UpdateProfileRequest struct {
	Bio            *string   `json:"bio" binding:"omitempty,max=1000"`
	Location       *string   `json:"location" binding:"omitempty,max=120"`
	Skills         *[]string `json:"skills"`
	Experience     *[]string `json:"experience"`
	Education      *[]string `json:"education"`
	ProfilePicture *string   `json:"profilePicture"`
	WalletAddress  *string   `json:"publicWalletAddress"`
}

func (h *ProfileHandler) UpdateProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || userID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	var req UpdateProfileRequest
	if !BindJSON(ctx, &req) {
		return
	}

	patch := user.ProfilePatch{
		Bio:            req.Bio,
		Location:       req.Location,
		Skills:         req.Skills,
		Experience:     req.Experience,
		Education:      req.Education,
		ProfilePicture: req.ProfilePicture,
		WalletAddress:  req.WalletAddress,
	}

	u, err := h.users.UpdateProfile(userID, patch)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not update profile")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}
