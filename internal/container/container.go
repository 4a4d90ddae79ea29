package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizforge/internal/aiquiz"
	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/config"
	"github.com/saulo-duarte/quizforge/internal/document"
	"github.com/saulo-duarte/quizforge/internal/grading"
	"github.com/saulo-duarte/quizforge/internal/progress"
	"github.com/saulo-duarte/quizforge/internal/quiz"
	"github.com/saulo-duarte/quizforge/internal/session"
	"github.com/saulo-duarte/quizforge/internal/user"
	util "github.com/saulo-duarte/quizforge/internal/utils"
)

type Container struct {
	Settings *config.Settings
	DB       *gorm.DB
	Redis    *redis.Client

	UserContainer     *user.UserContainer
	ProgressContainer *progress.ProgressContainer
	AIQuizContainer   *aiquiz.AIQuizContainer
	QuizContainer     *quiz.QuizContainer
}

func New(ctx context.Context) (*Container, error) {
	settings := config.Load()

	config.Init()
	util.SetLocation(settings.Timezone)
	auth.Init(settings.JWTSecret)

	log := config.WithContext(ctx)
	if !settings.SessionSecretSet {
		log.Warn("SESSION_SECRET is not set; using an insecure development secret")
	}
	if !settings.JWTSecretSet {
		log.Warn("JWT_SECRET is not set; using an insecure development secret")
	}

	db, err := config.Connect(ctx, settings.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(&user.User{}, &progress.Achievement{}, &quiz.Question{}, &quiz.QuizResult{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	var rdb *redis.Client
	store := quiz.NewGormQuestionStore(db)
	if settings.RedisURL != "" {
		rdb, err = config.NewRedisClient(ctx, settings.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = quiz.NewRedisQuestionStore(rdb, quiz.DefaultSetTTL)
	}

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, aiquiz.OracleConfig{
		Provider: settings.OracleProvider,
		APIKey:   settings.OracleAPIKey(),
		Model:    oracleModel(settings),
		Timeout:  settings.OracleTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init oracle: %w", err)
	}

	userContainer := user.NewUserContainer(db)
	progressContainer := progress.NewProgressContainer(db, userContainer.Repo)
	quizContainer := quiz.NewQuizContainer(quiz.Deps{
		DB:             db,
		Store:          store,
		Generator:      aiQuizContainer.Service,
		Engine:         grading.NewEngine(grading.NewOracleGrader(aiQuizContainer.Oracle)),
		Progress:       progressContainer.Service,
		Sessions:       session.NewCookieStore([]byte(settings.SessionSecret), false),
		Extractor:      document.NewPDFExtractor(document.DefaultMaxPages, aiquiz.SourceTextLimit),
		MaxUploadBytes: settings.MaxUploadBytes,
	})

	return &Container{
		Settings:          settings,
		DB:                db,
		Redis:             rdb,
		UserContainer:     userContainer,
		ProgressContainer: progressContainer,
		AIQuizContainer:   aiQuizContainer,
		QuizContainer:     quizContainer,
	}, nil
}

func oracleModel(s *config.Settings) string {
	if s.OracleProvider == config.ProviderOpenAI {
		return s.OpenAIModel
	}
	return s.GeminiModel
}

func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
