// internal/api/handlers/research.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nestscout/backend/internal/models"
	"github.com/nestscout/backend/internal/progress"
	"github.com/nestscout/backend/internal/repository"
	"github.com/nestscout/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ResearchRunner is the research pipeline the handler drives.
type ResearchRunner interface {
	Research(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.ScoredListing, error)
}

// SessionReader serves status polls.
type SessionReader interface {
	GetSession(sessionID string) (models.ResearchProgress, error)
}

type ResearchHandler struct {
	engine      ResearchRunner
	tracker     SessionReader
	historyRepo *repository.ResearchHistoryRepository // nil when analytics are disabled
	configErr   error
	logger      *logrus.Logger
}

func NewResearchHandler(
	engine ResearchRunner,
	tracker SessionReader,
	historyRepo *repository.ResearchHistoryRepository,
	configErr error,
	logger *logrus.Logger,
) *ResearchHandler {
	return &ResearchHandler{
		engine:      engine,
		tracker:     tracker,
		historyRepo: historyRepo,
		configErr:   configErr,
		logger:      logger,
	}
}

// HandleResearch runs the research pipeline for one session and returns the
// ranked listings.
func (h *ResearchHandler) HandleResearch(c *gin.Context) {
	startTime := time.Now()

	if h.configErr != nil {
		utils.ConfigErrorResponse(c, "Please configure EXA_API_KEY and GEMINI_API_KEY environment variables", h.configErr)
		return
	}

	var req models.ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid research request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if req.SessionID == "" {
		req.SessionID = utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
	}
	if !utils.ValidateSessionID(req.SessionID) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid session id", nil)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"session_id": req.SessionID,
		"ip_address": c.ClientIP(),
	}).Info("Processing research request")

	results, err := h.engine.Research(c.Request.Context(), req.SessionID, req.Criteria)
	responseTime := time.Since(startTime)

	if err != nil {
		h.logger.WithError(err).WithField("session_id", req.SessionID).Error("Research failed")
		go h.trackResearch(req.SessionID, req.Criteria, 0, models.StatusError, responseTime, c.Copy())
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to complete property research", err)
		return
	}

	go h.trackResearch(req.SessionID, req.Criteria, len(results), models.StatusCompleted, responseTime, c.Copy())

	note := "Results from real apartment listings via search and AI extraction"
	if len(results) == 0 {
		note = "No results found - check search criteria or API configuration"
	}

	c.JSON(http.StatusOK, models.ResearchResponse{
		SessionID:           req.SessionID,
		Status:              models.StatusCompleted,
		Results:             results,
		TotalFound:          len(results),
		ResearchCompletedAt: time.Now().UTC().Format(time.RFC3339),
		Note:                note,
	})
}

// HandleResearchStatus returns the progress snapshot for a session. Polling
// clients call this until they observe a terminal status.
func (h *ResearchHandler) HandleResearchStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Session id is required", nil)
		return
	}

	session, err := h.tracker.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, progress.ErrSessionNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Session not found or expired", nil)
			return
		}
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to read session")
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to get research status", err)
		return
	}

	// Snapshot is returned verbatim so pollers see the tracker's exact state.
	c.JSON(http.StatusOK, session)
}

func (h *ResearchHandler) trackResearch(sessionID string, criteria models.SearchCriteria, resultsCount int, status string, responseTime time.Duration, c *gin.Context) {
	if h.historyRepo == nil {
		return
	}

	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal criteria for tracking")
		return
	}

	record := &models.ResearchQuery{
		SessionID:      sessionID,
		CriteriaJSON:   string(criteriaJSON),
		ResultsCount:   resultsCount,
		Status:         status,
		ResponseTimeMs: int(responseTime.Milliseconds()),
		UserAgent:      c.GetHeader("User-Agent"),
		IPAddress:      c.ClientIP(),
	}

	if err := h.historyRepo.Create(record); err != nil {
		h.logger.WithError(err).Error("Failed to track research query")
	}
}
