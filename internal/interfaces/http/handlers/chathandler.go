package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	chatUsecases "lumina/internal/application/chat/usecases"
	"lumina/internal/shared/errors"
	"lumina/internal/shared/utils"
)

// ChatHandler serves the chat endpoints.
type ChatHandler struct {
	sendUC    *chatUsecases.SendMessageUseCase
	historyUC *chatUsecases.GetChatHistoryUseCase
}

func NewChatHandler(sendUC *chatUsecases.SendMessageUseCase, historyUC *chatUsecases.GetChatHistoryUseCase) *ChatHandler {
	return &ChatHandler{
		sendUC:    sendUC,
		historyUC: historyUC,
	}
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Send handles POST /api/users/:sid/chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	result, err := h.sendUC.Execute(c.Request.Context(), chatUsecases.SendMessageCommand{
		UserSID: c.Param("sid"),
		Content: req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toMessageResponse(result.Message))
}

// History handles GET /api/users/:sid/chat
func (h *ChatHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid limit parameter"))
			return
		}
		limit = parsed
	}

	messages, err := h.historyUC.Execute(c.Request.Context(), chatUsecases.GetChatHistoryCommand{
		UserSID: c.Param("sid"),
		Limit:   limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, toMessageResponses(messages))
}
