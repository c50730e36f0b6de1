package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// CreateSurveyRespondent links a respondent to a survey. A second insert of
// the same pair returns ErrDuplicate; a dangling id returns
// ErrMissingReference when foreign keys are enforced.
func CreateSurveyRespondent(ctx context.Context, db *gorm.DB, surveyID, respondentID int64) (*domain.SurveyRespondent, error) {
	l := &domain.SurveyRespondent{SurveyID: surveyID, RespondentID: respondentID, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, classify(err)
	}
	return l, nil
}

// FindSurveyRespondent returns the link for the pair or ErrNotFound.
func FindSurveyRespondent(ctx context.Context, db *gorm.DB, surveyID, respondentID int64) (*domain.SurveyRespondent, error) {
	var l domain.SurveyRespondent
	err := db.WithContext(ctx).
		Where("survey_id = ? AND respondent_id = ?", surveyID, respondentID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListSurveyRespondents returns every link in insertion order.
func ListSurveyRespondents(ctx context.Context, db *gorm.DB) ([]domain.SurveyRespondent, error) {
	var out []domain.SurveyRespondent
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// CreateSurveyQuestion attaches a question to a survey. Duplicate pairs
// return ErrDuplicate.
func CreateSurveyQuestion(ctx context.Context, db *gorm.DB, surveyID, questionID int64) (*domain.SurveyQuestion, error) {
	l := &domain.SurveyQuestion{SurveyID: surveyID, QuestionID: questionID, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, classify(err)
	}
	return l, nil
}

// FindSurveyQuestion returns the link for the pair or ErrNotFound.
func FindSurveyQuestion(ctx context.Context, db *gorm.DB, surveyID, questionID int64) (*domain.SurveyQuestion, error) {
	var l domain.SurveyQuestion
	err := db.WithContext(ctx).
		Where("survey_id = ? AND question_id = ?", surveyID, questionID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListSurveyQuestions returns every link in insertion order.
func ListSurveyQuestions(ctx context.Context, db *gorm.DB) ([]domain.SurveyQuestion, error) {
	var out []domain.SurveyQuestion
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// CascadeSurveyRespondents deletes every survey/respondent link that
// references the given entity and returns the number of rows removed.
// Questions are never referenced by this table, so KindQuestion is a no-op.
func CascadeSurveyRespondents(ctx context.Context, db *gorm.DB, kind domain.EntityKind, id int64) (int64, error) {
	var col string
	switch kind {
	case domain.KindSurvey:
		col = "survey_id"
	case domain.KindRespondent:
		col = "respondent_id"
	default:
		return 0, nil
	}
	res := db.WithContext(ctx).Where(col+" = ?", id).Delete(&domain.SurveyRespondent{})
	return res.RowsAffected, res.Error
}

// CascadeSurveyQuestions deletes every survey/question link that references
// the given entity. KindRespondent is a no-op.
func CascadeSurveyQuestions(ctx context.Context, db *gorm.DB, kind domain.EntityKind, id int64) (int64, error) {
	var col string
	switch kind {
	case domain.KindSurvey:
		col = "survey_id"
	case domain.KindQuestion:
		col = "question_id"
	default:
		return 0, nil
	}
	res := db.WithContext(ctx).Where(col+" = ?", id).Delete(&domain.SurveyQuestion{})
	return res.RowsAffected, res.Error
}
