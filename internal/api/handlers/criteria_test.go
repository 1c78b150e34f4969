package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nestscout/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCriteriaService struct {
	criteria    models.SearchCriteria
	suggestions []string
	err         error
	gotText     string
}

func (f *fakeCriteriaService) ParseRequirements(ctx context.Context, text string) (models.SearchCriteria, error) {
	f.gotText = text
	return f.criteria, f.err
}

func (f *fakeCriteriaService) Suggestions(ctx context.Context, text string) ([]string, error) {
	f.gotText = text
	return f.suggestions, f.err
}

func setupCriteriaRouter(service CriteriaService, configErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCriteriaHandler(service, configErr, testLogger())

	router := gin.New()
	router.POST("/api/requirements", handler.HandleRequirements)
	router.POST("/api/suggestions", handler.HandleSuggestions)
	return router
}

func TestHandleRequirementsSuccess(t *testing.T) {
	bedrooms := 2
	service := &fakeCriteriaService{criteria: models.SearchCriteria{Bedrooms: &bedrooms}}
	router := setupCriteriaRouter(service, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requirements", strings.NewReader(`{"text": "2 bedroom in Brooklyn"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2 bedroom in Brooklyn", service.gotText)

	var resp models.RequirementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Criteria.Bedrooms)
	assert.Equal(t, 2, *resp.Criteria.Bedrooms)
}

func TestHandleRequirementsEmptyText(t *testing.T) {
	router := setupCriteriaRouter(&fakeCriteriaService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requirements", strings.NewReader(`{"text": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRequirementsMissingText(t *testing.T) {
	router := setupCriteriaRouter(&fakeCriteriaService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requirements", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRequirementsConfigError(t *testing.T) {
	router := setupCriteriaRouter(&fakeCriteriaService{}, errors.New("GEMINI_API_KEY is required"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/requirements", strings.NewReader(`{"text": "studio"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "configuration_error")
}

func TestHandleSuggestionsSuccess(t *testing.T) {
	service := &fakeCriteriaService{suggestions: []string{"What is your budget?"}}
	router := setupCriteriaRouter(service, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/suggestions", strings.NewReader(`{"text": "I need an apartment"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"What is your budget?"}, resp.Suggestions)
}

func TestHandleSuggestionsServiceFailure(t *testing.T) {
	service := &fakeCriteriaService{err: errors.New("completion backend down")}
	router := setupCriteriaRouter(service, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/suggestions", strings.NewReader(`{"text": "apartment"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
