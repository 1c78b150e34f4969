package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nestscout/backend/internal/models"
	"github.com/nestscout/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CriteriaService is the completion-backed parsing capability.
type CriteriaService interface {
	ParseRequirements(ctx context.Context, text string) (models.SearchCriteria, error)
	Suggestions(ctx context.Context, text string) ([]string, error)
}

type CriteriaHandler struct {
	service   CriteriaService
	configErr error
	logger    *logrus.Logger
}

func NewCriteriaHandler(service CriteriaService, configErr error, logger *logrus.Logger) *CriteriaHandler {
	return &CriteriaHandler{
		service:   service,
		configErr: configErr,
		logger:    logger,
	}
}

// HandleRequirements condenses a free-text apartment request into criteria.
func (h *CriteriaHandler) HandleRequirements(c *gin.Context) {
	if h.configErr != nil {
		utils.ConfigErrorResponse(c, "Please configure GEMINI_API_KEY environment variable", h.configErr)
		return
	}

	var req models.RequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Text is required", err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Text cannot be empty", nil)
		return
	}

	criteria, err := h.service.ParseRequirements(c.Request.Context(), text)
	if err != nil {
		h.logger.WithError(err).Error("Requirements parsing failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to parse requirements", err)
		return
	}

	c.JSON(http.StatusOK, models.RequirementsResponse{Criteria: criteria})
}

// HandleSuggestions returns refinement suggestions for a free-text request.
func (h *CriteriaHandler) HandleSuggestions(c *gin.Context) {
	if h.configErr != nil {
		utils.ConfigErrorResponse(c, "Please configure GEMINI_API_KEY environment variable", h.configErr)
		return
	}

	var req models.RequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Text is required", err)
		return
	}

	suggestions, err := h.service.Suggestions(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.WithError(err).Error("Suggestions request failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to get suggestions", err)
		return
	}

	c.JSON(http.StatusOK, models.SuggestionsResponse{Suggestions: suggestions})
}
