package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nestscout/backend/internal/models"
	"github.com/nestscout/backend/internal/voicecall"
	"github.com/nestscout/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

// CallService places voice calls and polls their outcomes.
type CallService interface {
	PlaceCall(ctx context.Context, listingName, listingAddress string, questions []string) (*voicecall.CallResult, error)
	WaitForCall(ctx context.Context, callID string) (*voicecall.CallResult, error)
}

type CallHandler struct {
	service   CallService
	configErr error
	logger    *logrus.Logger
}

func NewCallHandler(service CallService, configErr error, logger *logrus.Logger) *CallHandler {
	return &CallHandler{
		service:   service,
		configErr: configErr,
		logger:    logger,
	}
}

// HandleMakeCall places a call about a listing and waits (bounded) for its
// outcome. A wait that runs out returns a still-in-progress response.
func (h *CallHandler) HandleMakeCall(c *gin.Context) {
	if h.configErr != nil {
		utils.ConfigErrorResponse(c, "Please configure VAPI_API_KEY, VAPI_ASSISTANT_ID and VAPI_PHONE_NUMBER_ID environment variables", h.configErr)
		return
	}

	var req models.CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "listingName and listingAddress are required", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"listing":   req.ListingName,
		"questions": len(req.UserQuestions),
	}).Info("Placing voice call")

	result, err := h.service.PlaceCall(c.Request.Context(), req.ListingName, req.ListingAddress, req.UserQuestions)
	if err != nil {
		h.logger.WithError(err).Error("Voice call failed")
		utils.ErrorResponse(c, http.StatusBadGateway, "Failed to place call", err)
		return
	}

	c.JSON(http.StatusOK, callResponse(result))
}

// HandleCallStatus polls an in-flight call by id.
func (h *CallHandler) HandleCallStatus(c *gin.Context) {
	if h.configErr != nil {
		utils.ConfigErrorResponse(c, "Please configure VAPI_API_KEY environment variable", h.configErr)
		return
	}

	callID := c.Param("id")
	if callID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Call id is required", nil)
		return
	}

	result, err := h.service.WaitForCall(c.Request.Context(), callID)
	if err != nil {
		h.logger.WithError(err).WithField("call_id", callID).Error("Call status check failed")
		utils.ErrorResponse(c, http.StatusBadGateway, "Failed to get call status", err)
		return
	}

	c.JSON(http.StatusOK, callResponse(result))
}

func callResponse(result *voicecall.CallResult) models.CallResponse {
	resp := models.CallResponse{
		CallID:     result.CallID,
		Status:     result.Status,
		Summary:    result.Summary,
		Transcript: result.Transcript,
	}
	if result.InProgress {
		resp.Note = "Call still in progress"
	}
	return resp
}
