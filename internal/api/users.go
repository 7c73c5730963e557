package api

import (
	"net/http"

	"github.com/Karatsuyu/delicious-food-app/internal/service"

	"github.com/gin-gonic/gin"
)

// register handles POST /api/register
func (h *Handler) register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario registrado exitosamente",
		"user":    user,
	})
}

// login handles POST /api/login
func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// getProfile handles GET /api/profile
func (h *Handler) getProfile(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// me handles GET /api/users/me
func (h *Handler) me(c *gin.Context) {
	h.getProfile(c)
}

// updateProfile handles PATCH /api/profile
func (h *Handler) updateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), getPrincipal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Perfil actualizado exitosamente",
		"user":    user,
	})
}

// changePassword handles PATCH /api/change-password
func (h *Handler) changePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), getPrincipal(c), req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contraseña cambiada exitosamente"})
}

// deactivateAccount handles DELETE /api/profile and DELETE /api/users/delete_me
func (h *Handler) deactivateAccount(c *gin.Context) {
	if err := h.users.Deactivate(c.Request.Context(), getPrincipal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Tu cuenta ha sido desactivada exitosamente",
		"note":    "La cuenta no ha sido eliminada. Contacta al soporte para reactivarla.",
	})
}

// reactivateUser handles PATCH /api/users/:id/reactivate (staff)
func (h *Handler) reactivateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.Reactivate(c.Request.Context(), getPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cuenta de " + user.Email + " reactivada exitosamente",
	})
}

// userStats handles GET /api/users/estadisticas
func (h *Handler) userStats(c *gin.Context) {
	stats, err := h.users.Statistics(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// listUsers handles GET /api/users (staff)
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
