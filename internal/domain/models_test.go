package domain

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Enforce FKs so cascades actually execute.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]interface{ TableName() string }{
		"users":              User{},
		"surveys":            Survey{},
		"respondents":        Respondent{},
		"questions":          Question{},
		"survey_respondents": SurveyRespondent{},
		"survey_questions":   SurveyQuestion{},
		"responses":          Response{},
		"idempotency":        Idempotency{},
	}
	for want, m := range cases {
		if got := m.TableName(); got != want {
			t.Fatalf("%T.TableName() = %q; want %q", m, got, want)
		}
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range Models() {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Response{}, "ux_response_triple") {
		t.Fatalf("expected unique index ux_response_triple on responses")
	}
	if !m.HasIndex(&SurveyRespondent{}, "ux_survey_respondent") {
		t.Fatalf("expected unique index ux_survey_respondent")
	}
	if !m.HasIndex(&SurveyQuestion{}, "ux_survey_question") {
		t.Fatalf("expected unique index ux_survey_question")
	}
	if !m.HasColumn(&Response{}, "response") {
		t.Fatalf("expected responses.response column")
	}

	mustCreate := func(v any) {
		t.Helper()
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("insert %T: %v", v, err)
		}
	}
	mustCreate(&Survey{ID: 1000, Name: "Q1 Feedback"})
	mustCreate(&Question{ID: 2000, Text: "How satisfied?"})
	mustCreate(&Respondent{ID: 3000, FullName: "Alice", Email: "alice@example.com"})
	mustCreate(&SurveyQuestion{SurveyID: 1000, QuestionID: 2000})
	mustCreate(&SurveyRespondent{SurveyID: 1000, RespondentID: 3000})
	mustCreate(&Response{SurveyID: 1000, QuestionID: 2000, RespondentID: 3000, Text: "Very satisfied"})

	// Unique triple is enforced by the store itself.
	dup := &Response{SurveyID: 1000, QuestionID: 2000, RespondentID: 3000, Text: "again"}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation on response triple")
	}
	if err := db.Create(&SurveyQuestion{SurveyID: 1000, QuestionID: 2000}).Error; err == nil {
		t.Fatalf("expected unique violation on survey/question pair")
	}

	// FK: a response cannot reference a missing question.
	if err := db.Create(&Response{SurveyID: 1000, QuestionID: 9999, RespondentID: 3000, Text: "x"}).Error; err == nil {
		t.Fatalf("expected foreign key violation for unknown question")
	}

	// CASCADE: deleting the question removes its link and response.
	if err := db.Delete(&Question{}, 2000).Error; err != nil {
		t.Fatalf("delete question: %v", err)
	}
	var cnt int64
	db.Model(&Response{}).Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected responses to cascade-delete, got %d", cnt)
	}
	db.Model(&SurveyQuestion{}).Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected survey_questions to cascade-delete, got %d", cnt)
	}

	// CASCADE: deleting the survey removes the respondent link, keeps the respondent.
	if err := db.Delete(&Survey{}, 1000).Error; err != nil {
		t.Fatalf("delete survey: %v", err)
	}
	db.Model(&SurveyRespondent{}).Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected survey_respondents to cascade-delete, got %d", cnt)
	}
	db.Model(&Respondent{}).Count(&cnt)
	if cnt != 1 {
		t.Fatalf("respondent must survive survey delete, got %d", cnt)
	}
}
