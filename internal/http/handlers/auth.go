package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobsplus/jobsplus/internal/auth"
	"github.com/jobsplus/jobsplus/internal/config"
	"github.com/jobsplus/jobsplus/internal/domain/user"
	"github.com/jobsplus/jobsplus/internal/repo/memory"
	"github.com/jobsplus/jobsplus/internal/security"
)

type UserRegistry interface {
	Create(in user.CreateUserInput) (user.User, error)
	GetByEmail(email string) (user.User, error)
}

type AuthHandler struct {
	users        UserRegistry
	jwt          *auth.Manager
	refreshStore *memory.RefreshTokensRepo
	cfg          config.Config
}

func NewAuthHandler(users UserRegistry, jwtManager *auth.Manager, refreshStore *memory.RefreshTokensRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users:        users,
		jwt:          jwtManager,
		refreshStore: refreshStore,
		cfg:          cfg,
	}
}

type ProfileBody struct {
	Bio            string   `json:"bio" binding:"omitempty,max=1000"`
	Location       string   `json:"location" binding:"omitempty,max=120"`
	Skills         []string `json:"skills"`
	Experience     []string `json:"experience"`
	Education      []string `json:"education"`
	ProfilePicture string   `json:"profilePicture"`
}

type RegisterRequest struct {
	Name     string       `json:"name" binding:"required,min=2,max=80"`
	Email    string       `json:"email" binding:"required,email"`
	Password string       `json:"password" binding:"required,min=6"`
	Role     string       `json:"role" binding:"omitempty,oneof=user employer"`
	Profile  *ProfileBody `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	in := user.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if req.Profile != nil {
		in.Profile = user.Profile{
			Bio:            req.Profile.Bio,
			Location:       req.Profile.Location,
			Skills:         req.Profile.Skills,
			Experience:     req.Profile.Experience,
			Education:      req.Profile.Education,
			ProfilePicture: req.Profile.ProfilePicture,
		}
	}

	u, err := h.users.Create(in)
	if err != nil {
		var vErr *memory.ValidationError
		switch {
		case errors.Is(err, memory.ErrEmailTaken):
			RespondBadRequest(ctx, "email_taken", "Email is already in use.", nil)
		case errors.As(err, &vErr):
			RespondValidation(ctx, vErr.Errors)
		default:
			RespondInternal(ctx, "Could not create user")
		}
		return
	}

	accessToken, err := h.issueSession(ctx, u)
	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"accessToken": accessToken,
		"user":        u,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	foundUser, err := h.users.GetByEmail(req.Email)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	accessToken, err := h.issueSession(ctx, foundUser)
	if err != nil {
		RespondInternal(ctx, "Could not create session")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"user":        foundUser,
	})
}

// Refresh rotates the refresh token carried in the cookie and returns a new
// access token.
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	raw, err := ctx.Cookie(h.refreshCookieName())
	if err != nil || raw == "" {
		RespondUnAuthorized(ctx, "no_refresh", "Missing refresh token")
		return
	}

	claims, err := h.jwt.VerifyRefreshToken(raw)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_refresh", "Invalid refresh token")
		return
	}

	newRaw, newJTI, newExpiresAt, err := h.jwt.GenerateRefreshToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		RespondInternal(ctx, "Could not refresh session")
		return
	}

	next := memory.RefreshTokenRow{
		ID:        newJTI,
		UserID:    claims.UserID,
		TokenHash: h.jwt.HashRefreshToken(newRaw),
		ExpiresAt: newExpiresAt,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.refreshStore.Rotate(claims.JTI, h.jwt.HashRefreshToken(raw), next); err != nil {
		RespondUnAuthorized(ctx, "invalid_refresh", "Invalid refresh token")
		return
	}

	accessToken, err := h.jwt.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	h.setRefreshCookie(ctx, newRaw, newExpiresAt)

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
	})
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	raw, err := ctx.Cookie(h.refreshCookieName())
	if err == nil && raw != "" {
		// revoke only a token we can verify; clearing the cookie is
		// unconditional either way
		if claims, err := h.jwt.VerifyRefreshToken(raw); err == nil {
			h.refreshStore.Revoke(claims.JTI, nil)
		}
	}

	h.clearRefreshCookie(ctx)
	ctx.Status(http.StatusNoContent)
}

// issueSession generates the access token, stores the hashed refresh token,
// and sets the cookie.
func (h *AuthHandler) issueSession(ctx *gin.Context, u user.User) (string, error) {
	accessToken, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", err
	}

	rawRefresh, jti, expiresAt, err := h.jwt.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		return "", err
	}

	h.refreshStore.Create(memory.RefreshTokenRow{
		ID:        jti,
		UserID:    u.ID,
		TokenHash: h.jwt.HashRefreshToken(rawRefresh),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	})

	h.setRefreshCookie(ctx, rawRefresh, expiresAt)
	return accessToken, nil
}

func (h *AuthHandler) refreshCookieName() string {
	return "refresh_token"
}

func (h *AuthHandler) setRefreshCookie(ctx *gin.Context, raw string, expiresAt time.Time) {
	secure := h.cfg.Env == "prod"
	maxAge := int(time.Until(expiresAt).Seconds())

	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		h.refreshCookieName(),
		raw,
		maxAge,
		"/api/auth",
		"",
		secure,
		true, // HttpOnly
	)
}

func (h *AuthHandler) clearRefreshCookie(ctx *gin.Context) {
	secure := h.cfg.Env == "prod"
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(
		h.refreshCookieName(),
		"",
		-1,
		"/api/auth",
		"",
		secure,
		true,
	)
}
