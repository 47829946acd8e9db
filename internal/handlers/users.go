package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contacthub/internal/middleware"
	"contacthub/internal/models"
	"contacthub/internal/service"
)

type adminUserResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func toAdminUserResponse(user models.User) adminUserResponse {
	return adminUserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
	}
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		respondError(c, err)
		return
	}

	resp := make([]adminUserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toAdminUserResponse(user))
	}
	c.JSON(http.StatusOK, resp)
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Status    *string `json:"status"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	input := service.UserUpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		switch role {
		case models.UserRoleUser, models.UserRoleAdmin, models.UserRoleSuperAdmin:
			input.Role = &role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid role"})
			return
		}
	}
	if req.Status != nil {
		status := models.UserStatus(*req.Status)
		switch status {
		case models.UserStatusActive, models.UserStatusInactive:
			input.Status = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status"})
			return
		}
	}

	user, err := h.userService.Update(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAdminUserResponse(user))
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
