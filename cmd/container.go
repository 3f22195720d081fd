package main

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/peoplehub/internal/ai/embeddings"
	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/internal/db"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore/pgvectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/fsx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/peoplehub/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth/authsrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/roleinfra"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/rolesrv"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/userinfra"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/peoplehub/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching/coachingsrv"
	"github.com/Abraxas-365/peoplehub/recruitment/interview/interviewinfra"
	"github.com/Abraxas-365/peoplehub/recruitment/interview/interviewsrv"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobinfra"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobsrv"
	"github.com/Abraxas-365/peoplehub/recruitment/matching/matchingsrv"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumeinfra"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/peoplehub/workforce/expense"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expenseinfra"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expensesrv"
	"github.com/Abraxas-365/peoplehub/workforce/notification/notificationinfra"
	"github.com/Abraxas-365/peoplehub/workforce/notification/notificationsrv"
	"github.com/Abraxas-365/peoplehub/workforce/review/reviewinfra"
	"github.com/Abraxas-365/peoplehub/workforce/review/reviewsrv"
	"github.com/Abraxas-365/peoplehub/workforce/training/traininginfra"
	"github.com/Abraxas-365/peoplehub/workforce/training/trainingsrv"
)

const bcryptCost = 12

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB           *sqlx.DB
	Redis        *redis.Client
	FileSystem   fsx.FileSystem
	Queue        *resumeinfra.RedisQueue
	Providers    *llm.Registry
	Orchestrator *matchingsrv.Orchestrator

	// IAM
	TokenService   *auth.JWTService
	AuthMiddleware *auth.UnifiedAuthMiddleware
	RoleService    *rolesrv.RoleService
	UserService    *usersrv.UserService
	AuthService    *authsrv.AuthService

	// Recruitment
	JobService         *jobsrv.JobService
	ResumeService      *resumesrv.Service
	ApplicationService *applicationsrv.ApplicationService
	InterviewService   *interviewsrv.InterviewService
	CoachingService    *coachingsrv.Service

	// Workforce
	NotificationService *notificationsrv.NotificationService
	TrainingService     *trainingsrv.TrainingService
	ExpenseService      *expensesrv.ExpenseService
	ReviewService       *reviewsrv.ReviewService
}

// NewContainer connects to every backing service and builds the object graph
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	c.DB = pool

	// 2. Redis
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := c.Redis.Ping(ctx).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis, async ingestion disabled: %v", err)
	} else {
		c.Queue = resumeinfra.NewRedisQueue(c.Redis, cfg.Redis.QueueName)
	}

	// 3. File storage
	files, err := newFileSystem(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	c.FileSystem = files

	// 4. LLM providers and the vector index
	c.Providers, err = newProviders(ctx, cfg)
	if err != nil {
		return err
	}
	index := newIndex(cfg, pgvectorstore.New(c.DB))
	c.Orchestrator = matchingsrv.NewOrchestrator(
		docextract.NewExtractor(c.FileSystem),
		c.Providers,
		index,
		cfg.Matching.TopK,
	)
	return nil
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	roleRepo := roleinfra.NewPostgresRoleRepository(c.DB)
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	resumeRepo := resumeinfra.NewPostgresResumeRepository(c.DB)
	processingJobRepo := resumeinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	interviewRepo := interviewinfra.NewPostgresInterviewRepository(c.DB)
	notificationRepo := notificationinfra.NewPostgresNotificationRepository(c.DB)
	trainingRepo := traininginfra.NewPostgresTrainingRepository(c.DB)
	courseRepo := traininginfra.NewPostgresCourseRepository(c.DB)
	enrollmentRepo := traininginfra.NewPostgresEnrollmentRepository(c.DB)
	expenseRepo := expenseinfra.NewPostgresExpenseRepository(c.DB)
	reviewRepo := reviewinfra.NewPostgresReviewRepository(c.DB)

	// --- IAM ---
	c.TokenService = auth.NewJWTService(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	c.AuthMiddleware = auth.NewUnifiedAuthMiddleware(c.TokenService)
	c.RoleService = rolesrv.NewRoleService(roleRepo)
	c.UserService = usersrv.NewUserService(userRepo, roleRepo, auth.NewPasswordHasher(bcryptCost))
	c.AuthService = authsrv.NewAuthService(c.UserService, c.RoleService, c.TokenService)

	// --- Workforce ---
	c.NotificationService = notificationsrv.NewNotificationService(notificationRepo, userRepo)
	c.TrainingService = trainingsrv.NewTrainingService(
		trainingRepo,
		courseRepo,
		enrollmentRepo,
		userRepo,
		c.NotificationService,
	)
	c.ExpenseService = expensesrv.NewExpenseService(
		expenseRepo,
		userRepo,
		c.FileSystem,
		c.NotificationService,
		expense.Policy{
			Limits:               cfg.Expense.Policy.Limits,
			ReceiptRequiredAbove: cfg.Expense.Policy.ReceiptRequiredAbove,
		},
	)
	c.ReviewService = reviewsrv.NewReviewService(reviewRepo, userRepo, c.Providers)

	// --- Recruitment ---
	c.JobService = jobsrv.NewJobService(jobRepo, userRepo, matchingsrv.NewJobIndexer(c.Orchestrator))

	// without Redis, uploads are processed synchronously
	var queue resume.JobQueue
	if c.Queue != nil {
		queue = c.Queue
	}
	c.ResumeService = resumesrv.NewService(resumeRepo, processingJobRepo, queue, c.FileSystem, c.Orchestrator)

	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		userRepo,
		c.JobService,
		c.ResumeService,
		c.Orchestrator,
	)
	c.InterviewService = interviewsrv.NewInterviewService(
		interviewRepo,
		userRepo,
		c.ApplicationService,
		c.NotificationService,
	)
	c.CoachingService = coachingsrv.NewService(
		c.ResumeService,
		c.JobService,
		c.TrainingService,
		c.Providers,
	)
}

// Close releases the connections opened by NewContainer
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("closing redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("closing database: %v", err)
		}
	}
}

func newFileSystem(ctx context.Context, cfg config.StorageConfig) (fsx.FileSystem, error) {
	if cfg.Driver != "s3" {
		logx.Infof("Storing files under %s", cfg.LocalRoot)
		return fsxlocal.NewLocalFileSystem(cfg.LocalRoot), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}
	logx.Infof("Storing files in s3://%s/%s", cfg.Bucket, cfg.Prefix)
	return fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// newProviders registers every provider with an API key, each behind its own
// retry and circuit breaker
func newProviders(ctx context.Context, cfg *config.Config) (*llm.Registry, error) {
	registry := llm.NewRegistry(cfg.LLM.DefaultProvider)

	if key := cfg.LLM.Gemini.APIKey; key != "" {
		p, err := llm.NewGeminiProvider(ctx, key, cfg.LLM.Gemini.Model)
		if err != nil {
			return nil, err
		}
		registry.Register(llm.Resilient(p, resilience.NewExecutor("llm.gemini", cfg.Resilience.LLM)))
	}
	if key := cfg.LLM.OpenAI.APIKey; key != "" {
		p, err := llm.NewChatGPTProvider(key, cfg.LLM.OpenAI.Model)
		if err != nil {
			return nil, err
		}
		registry.Register(llm.Resilient(p, resilience.NewExecutor("llm.chatgpt", cfg.Resilience.LLM)))
	}

	if len(registry.Names()) == 0 {
		logx.Warn("No LLM provider configured; resume structuring will be rejected")
	}
	return registry, nil
}

func newIndex(cfg *config.Config, store vectorstore.Store) *vectorstore.Index {
	embedder := embeddings.NewCachedEmbedder(
		embeddings.NewGenerator(cfg.Embeddings.APIKey, cfg.Embeddings.Model),
		cfg.Embeddings.Model,
		cfg.Embeddings.CacheTTL,
	)
	return vectorstore.NewIndex(
		embedder,
		store,
		resilience.NewExecutor("vector_store", cfg.Resilience.VectorStore),
	)
}
