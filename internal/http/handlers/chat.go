package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/automate-backend/internal/http/response"
	"github.com/yungbote/automate-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// POST /api/chat
// body: { "question": "..." }
func (ch *ChatHandler) Ask(c *gin.Context) {
	var req services.ChatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errInvalidBody)
		return
	}
	reply, err := ch.chatService.Ask(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, err, "chat_failed")
		return
	}
	response.RespondOK(c, reply)
}

// GET /api/chat/history
func (ch *ChatHandler) History(c *gin.Context) {
	msgs, err := ch.chatService.History(c.Request.Context(), listLimit(c))
	if err != nil {
		response.RespondAPIError(c, err, "chat_history_failed")
		return
	}
	response.RespondOK(c, gin.H{"messages": msgs})
}
