package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"AdvisoryAssistant/database/postgres"
	authHandler "AdvisoryAssistant/internal/api/auth/handler"
	authService "AdvisoryAssistant/internal/api/auth/service"
	assistantHandler "AdvisoryAssistant/internal/api/assistant/handler"
	assistantRepository "AdvisoryAssistant/internal/api/assistant/repository"
	assistantService "AdvisoryAssistant/internal/api/assistant/service"
	consultationHandler "AdvisoryAssistant/internal/api/consultation/handler"
	consultationRepository "AdvisoryAssistant/internal/api/consultation/repository"
	consultationService "AdvisoryAssistant/internal/api/consultation/service"
	"AdvisoryAssistant/internal/middleware"
	engine "AdvisoryAssistant/pkg/assistant"
	"AdvisoryAssistant/pkg/bcrypt"
	"AdvisoryAssistant/pkg/gemini"
	"AdvisoryAssistant/pkg/graph"
	"AdvisoryAssistant/pkg/knowledge"
	"AdvisoryAssistant/pkg/openai"
	"AdvisoryAssistant/pkg/redis"
	"AdvisoryAssistant/pkg/s3"
	"AdvisoryAssistant/pkg/smtp"
	"AdvisoryAssistant/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	bcryptUtils  bcrypt.IBcrypt
	handlers     []handler
	redisServer  redis.IRedis
	smtpMailer   smtp.ItfSmtp
	s3Client     s3.ItfS3
	graphClient  graph.ItfGraph
	source       knowledge.Source
	reloader     *knowledge.Reloader
	chatEngine   *engine.Engine
	responder    engine.Responder
	geminiClient gemini.IGemini
	typingDelay  time.Duration
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.responder == nil {
		return nil, fmt.Errorf("responder is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithS3Client archives invites only when AWS_BUCKET_NAME is set.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if os.Getenv("AWS_BUCKET_NAME") == "" {
			s.log.Info("AWS_BUCKET_NAME not set, invite archiving disabled")
			return nil
		}

		client, err := s3.New()
		if err != nil {
			s.log.Errorf("Failed to initialize S3 client: %v", err)
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGraphClient() ServerOption {
	return func(s *Server) error {
		cfg, ok := graph.ConfigFromEnv()
		if !ok {
			s.log.Info("GRAPH_* not set, consultations will be emailed")
			return nil
		}
		s.graphClient = graph.New(cfg)
		return nil
	}
}

// WithKnowledge serves the corpus at KNOWLEDGE_CORPUS_PATH with hot reload,
// or the built-in corpus when the variable is unset.
func WithKnowledge() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before knowledge")
		}

		weights := knowledge.WithWeights(weightsFromEnv())

		if path := os.Getenv("KNOWLEDGE_CORPUS_PATH"); path != "" {
			reloader, err := knowledge.NewReloader(path, s.log, weights)
			if err != nil {
				return fmt.Errorf("failed to load knowledge corpus: %w", err)
			}
			s.reloader = reloader
			s.source = reloader
			s.logWeights(reloader.Current().Weights())
			return nil
		}

		store, err := knowledge.NewStore(knowledge.DefaultCorpus(), weights)
		if err != nil {
			return fmt.Errorf("failed to build knowledge store: %w", err)
		}
		s.source = store
		s.logWeights(store.Weights())
		return nil
	}
}

func (s *Server) logWeights(w knowledge.Weights) {
	s.log.WithFields(logrus.Fields{
		"title":          w.Title,
		"description":    w.Description,
		"capability":     w.Capability,
		"benefit":        w.Benefit,
		"faq_question":   w.FAQQuestion,
		"faq_answer":     w.FAQAnswer,
		"differentiator": w.Differentiator,
	}).Info("Knowledge search weights")
}

// WithResponder builds the local engine and, per AI_PROVIDER, an optional
// remote model in front of it. Must come after WithKnowledge.
func WithResponder() ServerOption {
	return func(s *Server) error {
		if s.source == nil {
			return fmt.Errorf("knowledge must be initialized before responder")
		}

		s.chatEngine = engine.New(s.source)
		s.typingDelay = typingDelayFromEnv()

		var remote engine.RemoteResponder
		prompt := engine.KnowledgePrompt(s.source)

		switch provider := strings.ToLower(os.Getenv("AI_PROVIDER")); provider {
		case "", "openai":
			remote = openai.NewChat(prompt)
		case gemini.Provider:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			client, err := gemini.NewGeminiClient(ctx, prompt)
			if err != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.geminiClient = client
			remote = client
		case "local", "none":
		default:
			return fmt.Errorf("unsupported AI_PROVIDER %q", provider)
		}

		if remote != nil && remote.Configured() {
			s.log.WithField("provider", remote.Name()).Info("Remote responder enabled")
		}

		s.responder = engine.NewResponder(s.chatEngine, remote, s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Assistant Domain
	assistantRepo := assistantRepository.New(s.db, s.log)
	assistantServices := assistantService.NewAssistantService(s.log, assistantRepo, s.source, s.responder, s.typingDelay, s.redisServer, s.utils)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	// Consultation Domain
	consultationRepo := consultationRepository.New(s.db, s.log)
	consultationServices := consultationService.NewConsultationService(s.log, consultationRepo, s.source, s.delivery(), s.utils)
	consultationHandlers := consultationHandler.New(s.log, s.validator, s.middleware, consultationServices)

	// Auth Domain
	authServices := authService.NewAuthService(s.log, s.bcryptUtils, authService.AdminAccountFromEnv())
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, assistantHandlers, consultationHandlers, authHandlers)
}

func (s *Server) delivery() consultationService.Delivery {
	d := consultationService.Delivery{
		Graph:          s.graphClient,
		Mailer:         s.smtpMailer,
		Storage:        s.s3Client,
		OrganizerName:  os.Getenv("SMTP_FROM_NAME"),
		OrganizerEmail: os.Getenv("GRAPH_ORGANIZER_EMAIL"),
	}
	if d.OrganizerEmail == "" && s.smtpMailer != nil {
		d.OrganizerEmail = s.smtpMailer.Sender()
	}
	return d
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	s.log.Infof("Listening on :%s", port)
	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown drains in-flight requests, then releases the corpus watcher,
// the Gemini client and the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)

	if s.reloader != nil {
		if cerr := s.reloader.Close(); cerr != nil {
			s.log.Warnf("Failed to stop corpus watcher: %v", cerr)
		}
	}
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Warnf("Failed to close database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})

	s.engine.Get("/healthz", func(ctx *fiber.Ctx) error {
		c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{"database": "ok", "redis": "ok"}
		code := fiber.StatusOK

		if s.db == nil || s.db.PingContext(c) != nil {
			status["database"] = "unavailable"
			code = fiber.StatusServiceUnavailable
		}
		if s.redisServer == nil || s.redisServer.Ping(c) != nil {
			status["redis"] = "degraded"
		}

		return ctx.Status(code).JSON(status)
	})
}
