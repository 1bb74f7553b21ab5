package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type AssistantController struct {
	assistantService services.AssistantServiceInterface
}

func NewAssistantController(assistantService services.AssistantServiceInterface) *AssistantController {
	return &AssistantController{
		assistantService: assistantService,
	}
}

// Chat godoc
// @Summary Chat with the travel assistant
// @Description Conversational travel help with trip context and session history
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Message and optional session"
// @Success 200 {object} services.ChatReply
// @Failure 400 {object} utils.APIResponse
// @Router /chat [post]
func (a *AssistantController) Chat(c *gin.Context) {

	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := a.assistantService.Chat(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Reply generated")
}

// Suggestions godoc
// @Summary Get activity suggestions
// @Description Up to five context-aware activity suggestions for a location
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body request_models.SuggestionsRequest true "Location and preferences"
// @Success 200 {array} services.Suggestion
// @Failure 400 {object} utils.APIResponse
// @Router /suggestions [post]
func (a *AssistantController) Suggestions(c *gin.Context) {
	var req request_models.SuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}

	suggestions, err := a.assistantService.Suggestions(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Suggestions generated")
}
