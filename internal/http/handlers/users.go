package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/http/middlewares"
)

type UserDirectory interface {
	GetByID(id string) (user.User, error)
	Modify(id string, fn func(user.User) (user.User, bool)) (user.User, bool, error)
}

type UsersHandler struct {
	users UserDirectory
}

func NewUsersHandler(users UserDirectory) *UsersHandler {
	return &UsersHandler{users: users}
}

// GetPublicProfile serves the restricted view: no email, no wallet balance.
func (h *UsersHandler) GetPublicProfile(ctx *gin.Context) {
	id := ctx.Param("id")

	u, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u.Public()})
}

// Connect adds the target user to the requester's connections. Re-connecting
// is a no-op rather than an error.
func (h *UsersHandler) Connect(ctx *gin.Context) {
	requesterID, ok := middlewares.UserIDFromContext(ctx)
	if !ok || requesterID == "" {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return
	}

	targetID := ctx.Param("id")
	if targetID == requesterID {
		RespondBadRequest(ctx, "invalid_request", "Cannot connect to yourself.", nil)
		return
	}

	if _, err := h.users.GetByID(targetID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not connect")
		return
	}

	u, added, err := h.users.Modify(requesterID, func(cur user.User) (user.User, bool) {
		return user.AddConnection(cur, targetID)
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not connect")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"connected":   added,
		"connections": u.Connections,
	})
}
