package handlers

import (
	"github.com/gin-gonic/gin"

	subscriptionUsecases "lumina/internal/application/subscription/usecases"
	userUsecases "lumina/internal/application/user/usecases"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/utils"
)

// UserHandler serves the user account endpoints.
type UserHandler struct {
	registerUC *userUsecases.RegisterUserUseCase
	getUserUC  *userUsecases.GetUserUseCase
	quotaUC    *subscriptionUsecases.QuotaStatusUseCase
}

func NewUserHandler(
	registerUC *userUsecases.RegisterUserUseCase,
	getUserUC *userUsecases.GetUserUseCase,
	quotaUC *subscriptionUsecases.QuotaStatusUseCase,
) *UserHandler {
	return &UserHandler{
		registerUC: registerUC,
		getUserUC:  getUserUC,
		quotaUC:    quotaUC,
	}
}

type registerUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
}

// Register handles POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	u, err := h.registerUC.Execute(c.Request.Context(), userUsecases.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toUserResponse(u))
}

// Get handles GET /api/users/:sid
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.getUserUC.Execute(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, toUserResponse(u))
}

// GetQuota handles GET /api/users/:sid/quota
func (h *UserHandler) GetQuota(c *gin.Context) {
	status, err := h.quotaUC.Execute(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}
