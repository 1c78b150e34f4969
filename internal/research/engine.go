// Package research implements the property research pipeline: criteria are
// expanded into per-source queries, raw snippets are gathered and run through
// AI extraction, and the surviving listings are deduplicated, scored, and
// ranked. Progress is reported through the tracker at every stage boundary.
package research

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nestscout/backend/internal/models"
	"github.com/nestscout/backend/internal/sources"
	"github.com/sirupsen/logrus"
)

const totalSteps = 8

// SearchService is the web-search capability for API-backed sources.
type SearchService interface {
	SearchListings(ctx context.Context, query, domain string) ([]models.Snippet, error)
}

// CrawlService fetches snippets for crawl-backed sources.
type CrawlService interface {
	SearchListings(query, domain string) ([]models.Snippet, error)
}

// Extractor converts raw snippets into validated listings.
type Extractor interface {
	ExtractListings(ctx context.Context, snippets []models.Snippet, criteria models.SearchCriteria, source models.PropertySource) ([]models.RawListing, error)
}

// ProgressTracker is the session side channel the engine writes to.
type ProgressTracker interface {
	CreateSession(sessionID string) (models.ResearchProgress, error)
	UpdateProgress(sessionID string, update models.ProgressUpdate) (models.ResearchProgress, error)
	CompleteSession(sessionID string, resultCount int) error
	FailSession(sessionID string, errMsg string) error
}

type Engine struct {
	search      SearchService
	crawler     CrawlService
	extractor   Extractor
	tracker     ProgressTracker
	registry    []sources.Source
	sourceDelay time.Duration
	logger      *logrus.Logger
}

func NewEngine(
	search SearchService,
	crawler CrawlService,
	extractor Extractor,
	tracker ProgressTracker,
	sourceDelay time.Duration,
	logger *logrus.Logger,
) *Engine {
	return &Engine{
		search:      search,
		crawler:     crawler,
		extractor:   extractor,
		tracker:     tracker,
		registry:    sources.All(),
		sourceDelay: sourceDelay,
		logger:      logger,
	}
}

// Research runs the full pipeline for one session and returns the ranked top
// listings. Per-source failures are absorbed; any other failure marks the
// session as errored before propagating to the caller.
func (e *Engine) Research(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.ScoredListing, error) {
	e.logger.WithField("session_id", sessionID).Info("Starting property research")

	if _, err := e.tracker.CreateSession(sessionID); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	results, err := e.run(ctx, sessionID, criteria)
	if err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).Error("Research failed")
		if failErr := e.tracker.FailSession(sessionID, err.Error()); failErr != nil {
			e.logger.WithError(failErr).Warn("Failed to record session failure")
		}
		return nil, err
	}

	return results, nil
}

func (e *Engine) run(ctx context.Context, sessionID string, criteria models.SearchCriteria) ([]models.ScoredListing, error) {
	// Stage 1: build queries.
	e.setProgress(sessionID, models.StatusProcessing, 10, "Building search queries...", "building_queries", 1)

	queries := BuildQueries(criteria, e.registry)
	var allListings []models.RawListing

	// Stages 2-5: search each source sequentially, advancing linearly across
	// the 20-65% band. One source failing never aborts the run.
	currentProgress := 20.0
	progressPerSource := 45.0 / float64(len(queries))

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.setProgress(sessionID, "", int(math.Round(currentProgress)),
			fmt.Sprintf("Searching %s...", query.Source.Name),
			fmt.Sprintf("searching_%s", query.Source.ID), i+2)

		e.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"source":     query.Source.ID,
			"query":      query.Text,
		}).Debug("Searching source")

		snippets, err := e.searchSource(ctx, query)
		if err != nil {
			e.logger.WithError(err).WithField("source", query.Source.ID).Error("Source search failed, continuing")
			currentProgress += progressPerSource
			continue
		}

		listings, err := e.extractor.ExtractListings(ctx, snippets, criteria, query.Source.PropertySource)
		if err != nil {
			e.logger.WithError(err).WithField("source", query.Source.ID).Error("Extraction failed, continuing")
			currentProgress += progressPerSource
			continue
		}
		allListings = append(allListings, listings...)

		// Delay between sources to respect external rate limits.
		if e.sourceDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.sourceDelay):
			}
		}

		currentProgress += progressPerSource
	}

	e.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"raw_count":  len(allListings),
	}).Info("Source searches completed")

	// Stage 6: extraction bookkeeping checkpoint.
	e.setProgress(sessionID, "", 75, "Processing listings with AI...", "ai_processing", 6)

	// Stage 7: deduplicate.
	e.setProgress(sessionID, "", 85, "Removing duplicates...", "deduplication", 7)
	uniqueListings := Deduplicate(allListings)

	// Stage 8: score and rank.
	e.setProgress(sessionID, "", 95, "Scoring and ranking properties...", "scoring", 8)
	finalResults := ScoreListings(uniqueListings, criteria)

	if err := e.tracker.CompleteSession(sessionID, len(finalResults)); err != nil {
		e.logger.WithError(err).Warn("Failed to mark session completed")
	}

	e.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"unique":     len(uniqueListings),
		"returned":   len(finalResults),
	}).Info("Research completed")

	return finalResults, nil
}

func (e *Engine) searchSource(ctx context.Context, query Query) ([]models.Snippet, error) {
	if query.Source.Provider == sources.ProviderCrawl {
		return e.crawler.SearchListings(query.Text, query.Domain)
	}
	return e.search.SearchListings(ctx, query.Text, query.Domain)
}

func (e *Engine) setProgress(sessionID, status string, progress int, message, step string, stepIndex int) {
	update := models.ProgressUpdate{
		Progress:         &progress,
		Message:          &message,
		CurrentStep:      &step,
		CurrentStepIndex: &stepIndex,
	}
	if status != "" {
		update.Status = &status
	}

	if _, err := e.tracker.UpdateProgress(sessionID, update); err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to update progress")
	}
}
