package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-survey-backend/internal/catalog"
	"github.com/tbourn/go-survey-backend/internal/repo"
)

// seqIDs hands out 1000, 2000, 3000, ...
type seqIDs struct {
	mu   sync.Mutex
	next int64
}

func (s *seqIDs) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next += 1000
	return s.next
}

type fakeTokens struct {
	subjects []string
	err      error
}

func (f *fakeTokens) Issue(subject string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	f.subjects = append(f.subjects, subject)
	return "tok-" + subject, time.Unix(1_700_000_000, 0).UTC(), nil
}

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.AutoMigrate(db))
	return db
}

// stack bundles every service over one database and one catalog.
type stack struct {
	db          *gorm.DB
	cat         *catalog.Catalog
	surveys     *SurveyService
	respondents *RespondentService
	questions   *QuestionService
	links       *AssociationService
	responses   *ResponseService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := newServiceDB(t)
	cat := catalog.New()
	ids := &seqIDs{}
	return &stack{
		db:          db,
		cat:         cat,
		surveys:     NewSurveyService(db, cat, ids),
		respondents: NewRespondentService(db, cat, ids),
		questions:   NewQuestionService(db, cat, ids),
		links:       NewAssociationService(db, cat),
		responses:   NewResponseService(db, cat),
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

var bg = context.Background()
