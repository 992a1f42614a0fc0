package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huddle-dev/huddle/internal/auth"
	"github.com/huddle-dev/huddle/internal/models"
	"github.com/huddle-dev/huddle/internal/services"
	"github.com/huddle-dev/huddle/internal/types"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

type DeleteUserRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Signup(ctx *gin.Context) {
	var body SignupRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	user, err := h.Users.CreateUser(ctx.Request.Context(), body.Email, body.Name, body.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !h.startSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"user":    services.PublicUser(user),
	})
}

func (h *Handler) Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide email and password"})
		return
	}

	user, err := h.Users.Authenticate(ctx.Request.Context(), body.Email, body.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if !h.startSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"user":    services.PublicUser(user),
	})
}

func (h *Handler) Me(ctx *gin.Context, caller auth.Identity) {
	user, err := h.Users.GetUser(ctx.Request.Context(), caller.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": profile(user)})
}

func (h *Handler) UpdateMe(ctx *gin.Context, caller auth.Identity) {
	var body UpdateUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	user, err := h.Users.UpdateUser(ctx.Request.Context(), caller.UserID, services.UserPatch{
		Name:            body.Name,
		Email:           body.Email,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	// The token embeds the email, so a changed email needs a fresh one.
	if user.Email != caller.Email && !h.startSession(ctx, user) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"user":    profile(user),
	})
}

func (h *Handler) DeleteMe(ctx *gin.Context, caller auth.Identity) {
	var body DeleteUserRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required for account deletion"})
		return
	}

	eventIDs, err := h.Users.DeleteUser(ctx.Request.Context(), caller.UserID, body.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	for _, eventID := range eventIDs {
		h.Hub.BroadcastRefresh(eventID)
	}

	auth.ClearSessionCookie(ctx.Writer, h.Cookies)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}

func (h *Handler) Logout(ctx *gin.Context) {
	auth.ClearSessionCookie(ctx.Writer, h.Cookies)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// startSession issues a token for user and sets the session cookie. It writes
// the error response itself and reports false on failure.
func (h *Handler) startSession(ctx *gin.Context, user models.User) bool {
	token, err := h.Issuer.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return false
	}

	auth.SetSessionCookie(ctx.Writer, token, h.Cookies)
	return true
}

func profile(user models.User) types.UserResponse {
	resp := services.PublicUser(user)
	createdAt := user.CreatedAt
	resp.CreatedAt = &createdAt
	return resp
}
