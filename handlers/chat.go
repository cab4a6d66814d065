package handlers

import (
	"net/http"

	"slotwise/models"
	"slotwise/services/agent"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the conversational agent over HTTP.
type ChatHandler struct {
	Agent agent.Service
}

func NewChatHandler(svc agent.Service) *ChatHandler {
	return &ChatHandler{Agent: svc}
}

// Chat handles POST /chat. The agent absorbs its own failures into the
// response text, so this stays a thin wrapper.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid chat request", err.Error())
		return
	}

	resp := h.Agent.ProcessMessage(c.Request.Context(), req.Message, req.SessionID)
	c.JSON(http.StatusOK, resp)
}
