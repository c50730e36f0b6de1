// Repository functions for the three top-level collections: surveys,
// respondents and questions. Ids are assigned by the caller.
//
// Error semantics follow the rest of the package: ErrNotFound when an update
// matches no row, ErrDuplicate on id collisions, raw gorm errors otherwise.
// Deletes are idempotent and do not cascade by themselves; callers run the
// cascade helpers from link_repo.go and response_repo.go in the same
// transaction.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/domain"
)

// --- surveys ---

// CreateSurvey inserts a survey with a caller-assigned id.
func CreateSurvey(ctx context.Context, db *gorm.DB, id int64, name string) (*domain.Survey, error) {
	now := time.Now().UTC()
	s := &domain.Survey{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, classify(err)
	}
	return s, nil
}

// UpdateSurvey replaces the survey name. Returns ErrNotFound if id is absent.
func UpdateSurvey(ctx context.Context, db *gorm.DB, id int64, name string) (*domain.Survey, error) {
	if err := updateRow(ctx, db, &domain.Survey{}, id, map[string]any{"name": name}); err != nil {
		return nil, err
	}
	return GetSurvey(ctx, db, id)
}

// GetSurvey fetches one survey by id.
func GetSurvey(ctx context.Context, db *gorm.DB, id int64) (*domain.Survey, error) {
	return getByID[domain.Survey](ctx, db, id)
}

// ListSurveys returns every survey in creation (id) order.
func ListSurveys(ctx context.Context, db *gorm.DB) ([]domain.Survey, error) {
	return listByID[domain.Survey](ctx, db)
}

// DeleteSurvey removes the survey row; a missing id is not an error.
func DeleteSurvey(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	return deleteByID(ctx, db, &domain.Survey{}, id)
}

// --- respondents ---

// CreateRespondent inserts a respondent with a caller-assigned id.
func CreateRespondent(ctx context.Context, db *gorm.DB, id int64, fullName, email string) (*domain.Respondent, error) {
	now := time.Now().UTC()
	r := &domain.Respondent{ID: id, FullName: fullName, Email: email, CreatedAt: now, UpdatedAt: now}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, classify(err)
	}
	return r, nil
}

// UpdateRespondent replaces name and email. Returns ErrNotFound if id is absent.
func UpdateRespondent(ctx context.Context, db *gorm.DB, id int64, fullName, email string) (*domain.Respondent, error) {
	if err := updateRow(ctx, db, &domain.Respondent{}, id, map[string]any{"full_name": fullName, "email": email}); err != nil {
		return nil, err
	}
	return GetRespondent(ctx, db, id)
}

// GetRespondent fetches one respondent by id.
func GetRespondent(ctx context.Context, db *gorm.DB, id int64) (*domain.Respondent, error) {
	return getByID[domain.Respondent](ctx, db, id)
}

// ListRespondents returns every respondent in creation (id) order.
func ListRespondents(ctx context.Context, db *gorm.DB) ([]domain.Respondent, error) {
	return listByID[domain.Respondent](ctx, db)
}

// DeleteRespondent removes the respondent row; a missing id is not an error.
func DeleteRespondent(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	return deleteByID(ctx, db, &domain.Respondent{}, id)
}

// --- questions ---

// CreateQuestion inserts a question with a caller-assigned id.
func CreateQuestion(ctx context.Context, db *gorm.DB, id int64, text string) (*domain.Question, error) {
	now := time.Now().UTC()
	q := &domain.Question{ID: id, Text: text, CreatedAt: now, UpdatedAt: now}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, classify(err)
	}
	return q, nil
}

// UpdateQuestion replaces the question text. Returns ErrNotFound if id is absent.
func UpdateQuestion(ctx context.Context, db *gorm.DB, id int64, text string) (*domain.Question, error) {
	if err := updateRow(ctx, db, &domain.Question{}, id, map[string]any{"text": text}); err != nil {
		return nil, err
	}
	return GetQuestion(ctx, db, id)
}

// GetQuestion fetches one question by id.
func GetQuestion(ctx context.Context, db *gorm.DB, id int64) (*domain.Question, error) {
	return getByID[domain.Question](ctx, db, id)
}

// ListQuestions returns every question in creation (id) order.
func ListQuestions(ctx context.Context, db *gorm.DB) ([]domain.Question, error) {
	return listByID[domain.Question](ctx, db)
}

// DeleteQuestion removes the question row; a missing id is not an error.
func DeleteQuestion(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	return deleteByID(ctx, db, &domain.Question{}, id)
}

// --- shared ---

// EntityExists reports whether a row of the given kind exists.
func EntityExists(ctx context.Context, db *gorm.DB, kind domain.EntityKind, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(modelFor(kind)).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// MaxEntityID returns the largest id across surveys, respondents and
// questions, or 0 when all three are empty. Used to seed the id clock.
func MaxEntityID(ctx context.Context, db *gorm.DB) (int64, error) {
	var top int64
	for _, kind := range []domain.EntityKind{domain.KindSurvey, domain.KindRespondent, domain.KindQuestion} {
		var row struct{ ID int64 }
		err := db.WithContext(ctx).Model(modelFor(kind)).Select("id").Order("id DESC").Limit(1).Scan(&row).Error
		if err != nil {
			return 0, err
		}
		if row.ID > top {
			top = row.ID
		}
	}
	return top, nil
}

func modelFor(kind domain.EntityKind) any {
	switch kind {
	case domain.KindRespondent:
		return &domain.Respondent{}
	case domain.KindQuestion:
		return &domain.Question{}
	default:
		return &domain.Survey{}
	}
}

func updateRow(ctx context.Context, db *gorm.DB, model any, id int64, cols map[string]any) error {
	cols["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func getByID[T any](ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func listByID[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var out []T
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id int64) (int64, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	return res.RowsAffected, res.Error
}
