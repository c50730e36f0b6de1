package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// cascadeCounts reports what an entity delete removed.
type cascadeCounts struct {
	Entity            int64
	SurveyRespondents int64
	SurveyQuestions   int64
	Responses         int64
}

// deleteWithCascade removes every response and link that references the
// entity, then the entity itself, inside one transaction. Unknown ids are a
// no-op. The mirror is not touched; callers update it after commit.
func deleteWithCascade(ctx context.Context, db *gorm.DB, kind domain.EntityKind, id int64,
	del func(ctx context.Context, tx *gorm.DB, id int64) (int64, error),
) (cascadeCounts, error) {
	var n cascadeCounts
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if n.Responses, err = repo.CascadeResponses(ctx, tx, kind, id); err != nil {
			return err
		}
		if n.SurveyRespondents, err = repo.CascadeSurveyRespondents(ctx, tx, kind, id); err != nil {
			return err
		}
		if n.SurveyQuestions, err = repo.CascadeSurveyQuestions(ctx, tx, kind, id); err != nil {
			return err
		}
		n.Entity, err = del(ctx, tx, id)
		return err
	})
	if err != nil {
		return cascadeCounts{}, storageErr(err)
	}
	return n, nil
}

// requireEntity returns a NotFoundError unless the entity exists in tx.
func requireEntity(ctx context.Context, tx *gorm.DB, kind domain.EntityKind, id int64) error {
	ok, err := repo.EntityExists(ctx, tx, kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound(kind, id)
	}
	return nil
}
