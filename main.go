package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()
	cfg := config.New()

	if prefix := config.GetString(cfg, "AWS_SSM_PREFIX", ""); prefix != "" {
		store, err := config.NewParameterStore(ctx, config.GetString(cfg, "AWS_REGION", ""))
		if err != nil {
			fmt.Printf("Error creating parameter store client: %v\n", err)
			os.Exit(1)
		}
		loaded, err := config.MergeParameters(ctx, store, cfg, prefix)
		if err != nil {
			fmt.Printf("Error loading parameters from %s: %v\n", prefix, err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d parameters from %s\n", loaded, prefix)
	}

	var replicas []string
	if replica := config.GetString(cfg, "DATABASE_REPLICA_URL", ""); replica != "" {
		replicas = append(replicas, replica)
	}

	conn := database.NewConnection(database.ConnectionConfig{
		DSN:          config.GetString(cfg, "DATABASE_URL", ""),
		ReplicaDSNs:  replicas,
		LogLevel:     logger.Warn,
		MaxOpenConns: config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 0),
	})

	fmt.Println("Connecting to database...")
	db, err := conn.Open(ctx)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	// If generating models, run generation and exit
	if config.GetBool(cfg, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db, "")
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		report, err := models.GenerateColumnMismatchReport(db)
		if err != nil {
			fmt.Printf("Error generating column report: %v\n", err)
			os.Exit(1)
		}
		models.PrintColumnMismatchReport(report)
		return
	}

	currentDB := database.New(db)

	deps := api.Dependencies{
		Database:   currentDB,
		Aggregator: services.NewAggregator(currentDB),
		Prompt: services.PromptOptions{
			OwnerName: config.GetString(cfg, "PORTFOLIO_OWNER_NAME", ""),
		},
	}

	if completer := newCompleter(ctx, cfg); completer != nil {
		deps.Completer = completer
	}
	if uploader := newUploader(ctx, cfg); uploader != nil {
		deps.Uploader = uploader
	}
	if notifier := newNotifier(cfg); notifier != nil {
		deps.Notifier = notifier
	}
	deps.Limiter = newLimiter(cfg)

	// Start and listenToInterrupt may both send; neither blocks after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(cfg, deps)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

func newCompleter(ctx context.Context, cfg map[string]string) *services.ChatCompleter {
	provider := config.GetString(cfg, "LLM_PROVIDER", services.ProviderOpenAI)

	var apiKey, model string
	switch provider {
	case services.ProviderGoogleAI:
		apiKey = config.GetString(cfg, "GOOGLE_API_KEY", "")
		model = config.GetString(cfg, "GOOGLE_MODEL", "")
	default:
		apiKey = config.GetString(cfg, "OPENAI_API_KEY", "")
		model = config.GetString(cfg, "OPENAI_MODEL", "")
	}

	llm, service, err := services.NewCompletionModel(ctx, provider, apiKey, model)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider).Msg("chat assistant disabled")
		return nil
	}
	return services.NewChatCompleter(llm, service)
}

func newUploader(ctx context.Context, cfg map[string]string) *services.S3Uploader {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		log.Warn().Msg("S3_BUCKET is not set, project image uploads are disabled")
		return nil
	}

	region := config.GetString(cfg, "AWS_REGION", "us-east-1")
	client, err := services.NewS3Client(ctx, region)
	if err != nil {
		log.Warn().Err(err).Msg("project image uploads are disabled")
		return nil
	}

	return services.NewS3Uploader(client, services.S3UploaderConfig{
		Bucket:        bucket,
		Region:        region,
		KeyPrefix:     config.GetString(cfg, "S3_KEY_PREFIX", ""),
		PublicBaseURL: config.GetString(cfg, "S3_PUBLIC_BASE_URL", ""),
	})
}

func newNotifier(cfg map[string]string) services.ContactNotifier {
	var notifiers services.MultiNotifier

	resendKey := config.GetString(cfg, "RESEND_API_KEY", "")
	emailTo := config.GetList(cfg, "NOTIFY_EMAIL_TO")
	if resendKey != "" && len(emailTo) > 0 {
		from := config.GetString(cfg, "RESEND_FROM_EMAIL", "onboarding@resend.dev")
		notifiers = append(notifiers, services.NewResendNotifier(resendKey, from, emailTo))
	}

	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	smsFrom := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	smsTo := config.GetString(cfg, "NOTIFY_SMS_TO", "")
	if sid != "" && token != "" && smsFrom != "" && smsTo != "" {
		notifiers = append(notifiers, services.NewTwilioNotifier(sid, token, smsFrom, smsTo))
	}

	if len(notifiers) == 0 {
		log.Info().Msg("no contact notifier configured")
		return nil
	}
	return notifiers
}

func newLimiter(cfg map[string]string) api.RateLimiter {
	limit := config.GetInt(cfg, "RATE_LIMIT_MAX", api.DefaultRateLimitMax)
	window := api.DefaultRateLimitWindow
	if minutes := config.GetInt(cfg, "RATE_LIMIT_WINDOW_MINUTES", 0); minutes > 0 {
		window = time.Duration(minutes) * time.Minute
	}

	if addr := config.GetString(cfg, "REDIS_ADDR", ""); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.GetString(cfg, "REDIS_PASSWORD", ""),
		})
		return api.NewRedisRateLimiter(client, limit, window)
	}
	return api.NewMemoryRateLimiter(limit, window)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
