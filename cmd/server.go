package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Abraxas-365/peoplehub/internal/config"
	"github.com/Abraxas-365/peoplehub/pkg/errx/errxfiber"
	"github.com/Abraxas-365/peoplehub/pkg/iam/auth/authapi"
	"github.com/Abraxas-365/peoplehub/pkg/iam/role/roleapi"
	"github.com/Abraxas-365/peoplehub/pkg/iam/user/userapi"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/application/applicationapi"
	"github.com/Abraxas-365/peoplehub/recruitment/coaching/coachingapi"
	"github.com/Abraxas-365/peoplehub/recruitment/interview/interviewapi"
	"github.com/Abraxas-365/peoplehub/recruitment/job/jobapi"
	"github.com/Abraxas-365/peoplehub/recruitment/matching/matchingapi"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumeapi"
	"github.com/Abraxas-365/peoplehub/workforce/expense/expenseapi"
	"github.com/Abraxas-365/peoplehub/workforce/notification/notificationapi"
	"github.com/Abraxas-365/peoplehub/workforce/review/reviewapi"
	"github.com/Abraxas-365/peoplehub/workforce/training/trainingapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "port to listen on (default 5001)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServer(ctx context.Context) error {
	cfg, err := loadConfig(config.RequireDatabase, config.RequireAuth)
	if err != nil {
		return err
	}
	logx.Infof("Starting %s...", cfg.Server.AppName)

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	app := newApp(container)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logx.Infof("Server listening on %s", addr)
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logx.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	logx.Info("Server exited")
	return nil
}

// newApp builds the fiber app with middleware and every route group
func newApp(c *Container) *fiber.App {
	app := errxfiber.NewApp(c.Config.Server.AppName)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", healthHandler(c))

	mw := c.AuthMiddleware

	// --- IAM ---
	authapi.RegisterRoutes(app, authapi.NewHandlers(c.AuthService), mw)
	userapi.RegisterRoutes(app, userapi.NewHandlers(c.UserService), mw)
	roleapi.RegisterRoutes(app, roleapi.NewHandlers(c.RoleService), mw)

	// --- Recruitment ---
	jobapi.RegisterRoutes(app, jobapi.NewHandlers(c.JobService), mw)
	matchingapi.RegisterRoutes(app, matchingapi.NewHandlers(c.Orchestrator, c.ResumeService), mw)
	resumeapi.NewResumeHandlers(c.ResumeService).RegisterRoutes(app, mw)
	applicationapi.RegisterRoutes(app, applicationapi.NewHandlers(c.ApplicationService), mw)
	interviewapi.RegisterRoutes(app, interviewapi.NewHandlers(c.InterviewService), mw)
	coachingapi.RegisterRoutes(app, coachingapi.NewHandlers(c.CoachingService), mw)

	// --- Workforce ---
	notificationapi.RegisterRoutes(app, notificationapi.NewHandlers(c.NotificationService), mw)
	trainingapi.RegisterRoutes(app, trainingapi.NewHandlers(c.TrainingService), mw)
	expenseapi.RegisterRoutes(app, expenseapi.NewHandlers(c.ExpenseService), mw)
	reviewapi.RegisterRoutes(app, reviewapi.NewHandlers(c.ReviewService), mw)

	return app
}

func healthHandler(c *Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dbOK := c.DB.PingContext(ctx.UserContext()) == nil
		redisOK := c.Redis.Ping(ctx.UserContext()).Err() == nil

		status := "ok"
		if !dbOK {
			status = "degraded"
		}
		return ctx.JSON(fiber.Map{
			"status": status,
			"db":     dbOK,
			"redis":  redisOK,
		})
	}
}
