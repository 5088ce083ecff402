package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/domain/user"
)

type UserLister interface {
	List() []user.User
	Count() int
}

type AdminHandler struct {
	users UserLister
}

func NewAdminHandler(users UserLister) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers is admin-only; the router guards it with the role middleware.
func (h *AdminHandler) ListUsers(ctx *gin.Context) {
	users := h.users.List()

	ctx.JSON(http.StatusOK, gin.H{
		"items": users,
		"count": h.users.Count(),
	})
}
