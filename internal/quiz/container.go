package quiz

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/document"
	"github.com/saulo-duarte/quizforge/internal/grading"
	"github.com/saulo-duarte/quizforge/internal/progress"
)

type QuizContainer struct {
	Repo    ResultRepository
	Service QuizService
	Handler *Handler
}

type Deps struct {
	DB             *gorm.DB
	Store          QuestionSetStore
	Generator      aiquiz.Service
	Engine         *grading.Engine
	Progress       progress.ProgressService
	Sessions       SessionStore
	Extractor      document.Extractor
	MaxUploadBytes int64
}

func NewQuizContainer(d Deps) *QuizContainer {
	if d.Store == nil {
		d.Store = NewGormQuestionStore(d.DB)
	}
	if d.Extractor == nil {
		d.Extractor = document.NewPDFExtractor(document.DefaultMaxPages, aiquiz.SourceTextLimit)
	}

	repo := NewRepository(d.DB)
	service := NewService(d.DB, repo, d.Store, d.Generator, d.Engine, d.Progress)
	handler := NewHandler(service, d.Sessions, d.Extractor, d.MaxUploadBytes)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
