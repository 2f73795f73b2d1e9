package cmd

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/adirathodd/careerpilot/internal/auth"
	"github.com/adirathodd/careerpilot/internal/config"
	"github.com/adirathodd/careerpilot/internal/database"
	"github.com/adirathodd/careerpilot/internal/handlers"
	"github.com/adirathodd/careerpilot/internal/logger"
	"github.com/adirathodd/careerpilot/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the careerpilot API server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		cmd.PrintErrf("creating logger: %v\n", err)
		return
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading config", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("resolving timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	log.Info("database connection established", zap.String("host", cfg.Database.Host))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Core services.
	jobService := services.NewJobService(db, log)
	interviewService := services.NewInterviewService(db, log)
	contactService := services.NewContactService(db, log)
	reminderService := services.NewReminderService(db, log)
	campaignService := services.NewCampaignService(db, log)
	salaryService := services.NewSalaryService(db, log)
	supporterService := services.NewSupporterService(db, log)
	calendarService := services.NewCalendarService(db, log, loc)
	matcherService := services.NewMatcherService(db, log)
	generationService := services.NewGenerationService(log)

	// AI is optional: without a key the extract/analysis endpoints return
	// 503 and everything else keeps working.
	var aiService *services.AIService
	if cfg.AI.Enabled {
		aiService, err = services.NewAIService(ctx, cfg.AI.APIKey, cfg.AI.Model, log)
		if err != nil {
			log.Warn("AI service disabled", zap.Error(err))
			aiService = nil
		}
	}

	// Inbox watcher, likewise optional.
	var gmailService *gmail.Service
	if cfg.Email.Enabled {
		httpClient, err := auth.GetGmailClient(cfg.Email.CredentialsFile, cfg.Email.TokenFile)
		if err != nil {
			log.Warn("gmail auth failed, email watcher disabled", zap.Error(err))
		} else {
			gmailService, err = gmail.NewService(ctx, option.WithHTTPClient(httpClient))
			if err != nil {
				log.Warn("creating gmail service failed, email watcher disabled", zap.Error(err))
				gmailService = nil
			}
		}
	}

	emailService := services.NewEmailService(db, aiService, gmailService, matcherService, log, cfg.Email.PollInterval)
	emailService.StartWatcher(ctx)

	// Handlers.
	jobHandler := handlers.NewJobHandler(aiService, jobService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	contactHandler := handlers.NewContactHandler(contactService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	salaryHandler := handlers.NewSalaryHandler(salaryService)
	supporterHandler := handlers.NewSupporterHandler(supporterService, calendarService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	generationHandler := handlers.NewGenerationHandler(aiService, generationService, jobService, contactService)

	// Router.
	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowAllOrigins || len(cfg.CORS.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", handlers.AccessCodeHeader}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Jobs
		api.POST("/jobs/extract", jobHandler.ParseJob)
		api.POST("/jobs", jobHandler.CreateJob)
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.PATCH("/jobs/:id/status", jobHandler.UpdateStatus)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)
		api.GET("/jobs/:id/score", jobHandler.GetScore)
		api.GET("/jobs/:id/events", jobHandler.ListEvents)

		// Interviews
		api.POST("/interviews", interviewHandler.Create)
		api.GET("/interviews", interviewHandler.List)
		api.GET("/jobs/:id/interviews", interviewHandler.ListForJob)
		api.PATCH("/interviews/:id", interviewHandler.Update)
		api.DELETE("/interviews/:id", interviewHandler.Delete)

		// Contacts
		api.POST("/contacts", contactHandler.Create)
		api.GET("/contacts", contactHandler.List)
		api.GET("/contacts/:id", contactHandler.Get)
		api.PUT("/contacts/:id", contactHandler.Update)
		api.DELETE("/contacts/:id", contactHandler.Delete)

		// Reminders / follow-ups
		api.POST("/reminders", reminderHandler.Create)
		api.GET("/reminders", reminderHandler.List)
		api.POST("/reminders/:id/complete", reminderHandler.Complete)
		api.DELETE("/reminders/:id", reminderHandler.Delete)

		// Networking campaigns
		api.POST("/campaigns", campaignHandler.Create)
		api.GET("/campaigns", campaignHandler.List)
		api.GET("/campaigns/:id", campaignHandler.Get)
		api.POST("/campaigns/:id/activities", campaignHandler.AddActivity)
		api.GET("/campaigns/:id/summary", campaignHandler.Summary)
		api.DELETE("/campaigns/:id", campaignHandler.Delete)

		// Salary research
		api.POST("/jobs/:id/salary", salaryHandler.Create)
		api.GET("/jobs/:id/salary", salaryHandler.ListForJob)
		api.GET("/jobs/:id/salary/summary", salaryHandler.Summary)
		api.DELETE("/salary/:id", salaryHandler.Delete)

		// AI generations (polled)
		api.POST("/jobs/:id/analysis", generationHandler.StartMatchAnalysis)
		api.POST("/jobs/:id/prep", generationHandler.StartTechnicalPrep)
		api.POST("/contacts/:id/playbook", generationHandler.StartPlaybook)
		api.GET("/generations/:id", generationHandler.Poll)

		// Calendar
		api.GET("/calendar", calendarHandler.MonthGrid)
		api.GET("/calendar/agenda", calendarHandler.Agenda)
		api.GET("/calendar/export.ics", calendarHandler.ExportICS)

		// Supporters
		api.POST("/supporters", supporterHandler.Invite)
		api.GET("/supporters", supporterHandler.List)
		api.DELETE("/supporters/:id", supporterHandler.Delete)
		api.GET("/shared/:token/overview", supporterHandler.SharedOverview)
		api.GET("/shared/:token/calendar", supporterHandler.SharedCalendar)
	}

	log.Info("server starting", zap.String("listen", cfg.Listen))
	if err := r.Run(cfg.Listen); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
