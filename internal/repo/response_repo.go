package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// FindResponse returns the response stored for the triple or ErrNotFound.
func FindResponse(ctx context.Context, db *gorm.DB, surveyID, questionID, respondentID int64) (*domain.Response, error) {
	var r domain.Response
	err := db.WithContext(ctx).
		Where("survey_id = ? AND question_id = ? AND respondent_id = ?", surveyID, questionID, respondentID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResponse inserts a response. A second insert for the same triple
// fails with ErrDuplicate (unique index ux_response_triple).
func CreateResponse(ctx context.Context, db *gorm.DB, surveyID, questionID, respondentID int64, text string) (*domain.Response, error) {
	now := time.Now().UTC()
	r := &domain.Response{
		SurveyID:     surveyID,
		QuestionID:   questionID,
		RespondentID: respondentID,
		Text:         text,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, classify(err)
	}
	return r, nil
}

// UpdateResponseText overwrites the text of an existing response in place
// and returns the refreshed row. Returns ErrNotFound if id is absent.
func UpdateResponseText(ctx context.Context, db *gorm.DB, id uint, text string) (*domain.Response, error) {
	res := db.WithContext(ctx).
		Model(&domain.Response{}).
		Where("id = ?", id).
		Updates(map[string]any{"response": text, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var r domain.Response
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListResponses returns every response in insertion order.
func ListResponses(ctx context.Context, db *gorm.DB) ([]domain.Response, error) {
	var out []domain.Response
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// CascadeResponses deletes every response that references the given entity
// and returns the number of rows removed.
func CascadeResponses(ctx context.Context, db *gorm.DB, kind domain.EntityKind, id int64) (int64, error) {
	var col string
	switch kind {
	case domain.KindSurvey:
		col = "survey_id"
	case domain.KindQuestion:
		col = "question_id"
	case domain.KindRespondent:
		col = "respondent_id"
	default:
		return 0, nil
	}
	res := db.WithContext(ctx).Where(col+" = ?", id).Delete(&domain.Response{})
	return res.RowsAffected, res.Error
}
