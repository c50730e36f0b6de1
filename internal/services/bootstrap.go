package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// LoadCatalog reads every collection from the database and replaces the
// catalog contents with it.
func LoadCatalog(ctx context.Context, db *gorm.DB, cat *catalog.Catalog) error {
	var (
		snap catalog.Snapshot
		err  error
	)
	if snap.Surveys, err = repo.ListSurveys(ctx, db); err != nil {
		return fmt.Errorf("load surveys: %w", err)
	}
	if snap.Respondents, err = repo.ListRespondents(ctx, db); err != nil {
		return fmt.Errorf("load respondents: %w", err)
	}
	if snap.Questions, err = repo.ListQuestions(ctx, db); err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	if snap.SurveyRespondents, err = repo.ListSurveyRespondents(ctx, db); err != nil {
		return fmt.Errorf("load survey respondents: %w", err)
	}
	if snap.SurveyQuestions, err = repo.ListSurveyQuestions(ctx, db); err != nil {
		return fmt.Errorf("load survey questions: %w", err)
	}
	if snap.Responses, err = repo.ListResponses(ctx, db); err != nil {
		return fmt.Errorf("load responses: %w", err)
	}
	cat.Load(snap)
	return nil
}

// SeedClock raises the clock floor above every persisted entity id.
func SeedClock(ctx context.Context, db *gorm.DB, clock *Clock) error {
	top, err := repo.MaxEntityID(ctx, db)
	if err != nil {
		return fmt.Errorf("seed id clock: %w", err)
	}
	clock.Observe(top)
	return nil
}
