// Package domain defines the persistence models for credentials, surveys,
// respondents, questions, their associations and the recorded responses.
// These types are mapped with GORM and shared by the repository, catalog
// and service layers.
package domain

import "time"

// EntityKind names one of the three top-level collections that can be
// referenced by associations and responses.
type EntityKind string

const (
	KindSurvey     EntityKind = "survey"
	KindRespondent EntityKind = "respondent"
	KindQuestion   EntityKind = "question"
)

// User is a stored credential. The email is case-folded before it reaches
// the store and acts as the primary key.
type User struct {
	Email        string    `json:"email"      gorm:"type:varchar(320);primaryKey"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Survey is a named collection of questions answered by respondents.
//
// Fields:
//   - ID: time-based identifier assigned by the service layer (never 0).
//   - Name: non-empty display name.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Survey struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Survey.
func (Survey) TableName() string { return "surveys" }

// Respondent is a person who can be assigned to surveys and answer questions.
type Respondent struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	FullName  string    `json:"full_name"  gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Respondent.
func (Respondent) TableName() string { return "respondents" }

// Question is a free-text prompt that can be attached to surveys.
type Question struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement:false"`
	Text      string    `json:"text"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// SurveyRespondent assigns a respondent to a survey. A pair appears at most
// once (unique index ux_survey_respondent).
type SurveyRespondent struct {
	ID           uint      `json:"id"            gorm:"primaryKey;autoIncrement"`
	SurveyID     int64     `json:"survey_id"     gorm:"not null;uniqueIndex:ux_survey_respondent,priority:1"`
	RespondentID int64     `json:"respondent_id" gorm:"not null;index;uniqueIndex:ux_survey_respondent,priority:2"`
	CreatedAt    time.Time `json:"created_at"`

	Survey     Survey     `json:"-" gorm:"foreignKey:SurveyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Respondent Respondent `json:"-" gorm:"foreignKey:RespondentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for SurveyRespondent.
func (SurveyRespondent) TableName() string { return "survey_respondents" }

// SurveyQuestion attaches a question to a survey. A pair appears at most
// once (unique index ux_survey_question).
type SurveyQuestion struct {
	ID         uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	SurveyID   int64     `json:"survey_id"   gorm:"not null;uniqueIndex:ux_survey_question,priority:1"`
	QuestionID int64     `json:"question_id" gorm:"not null;index;uniqueIndex:ux_survey_question,priority:2"`
	CreatedAt  time.Time `json:"created_at"`

	Survey   Survey   `json:"-" gorm:"foreignKey:SurveyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Question Question `json:"-" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for SurveyQuestion.
func (SurveyQuestion) TableName() string { return "survey_questions" }

// Response is the free-text answer a respondent gave to one question of one
// survey. The (survey, question, respondent) triple is unique at the storage
// level; a second submission overwrites Text in place.
type Response struct {
	ID           uint      `json:"id"            gorm:"primaryKey;autoIncrement"`
	SurveyID     int64     `json:"survey_id"     gorm:"not null;uniqueIndex:ux_response_triple,priority:1"`
	QuestionID   int64     `json:"question_id"   gorm:"not null;index;uniqueIndex:ux_response_triple,priority:2"`
	RespondentID int64     `json:"respondent_id" gorm:"not null;index;uniqueIndex:ux_response_triple,priority:3"`
	Text         string    `json:"response"      gorm:"column:response;type:text;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Survey     Survey     `json:"-" gorm:"foreignKey:SurveyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Question   Question   `json:"-" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Respondent Respondent `json:"-" gorm:"foreignKey:RespondentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Response.
func (Response) TableName() string { return "responses" }

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&User{},
		&Survey{},
		&Respondent{},
		&Question{},
		&SurveyRespondent{},
		&SurveyQuestion{},
		&Response{},
		&Idempotency{},
	}
}
