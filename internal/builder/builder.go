package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/memomaster/backend/internal/api"
	documentapi "github.com/memomaster/backend/internal/api/document"
	studyapi "github.com/memomaster/backend/internal/api/study"
	"github.com/memomaster/backend/internal/config"
	"github.com/memomaster/backend/internal/integration/llm"
	"github.com/memomaster/backend/internal/pkg/extractor"
	"github.com/memomaster/backend/internal/pkg/prompt"
	"github.com/memomaster/backend/internal/pkg/renderer"
	"github.com/memomaster/backend/internal/pkg/validator"
	"github.com/memomaster/backend/internal/repository"
	"github.com/memomaster/backend/internal/usecase/chat"
	"github.com/memomaster/backend/internal/usecase/sheet"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize session store
	sessionStore := repository.NewSessionStore(cfg.SessionCfg, logger)
	logger.Info("Session store initialized")

	// Initialize the generation service connector (with mock support)
	var completer sheet.Completer
	if cfg.EnableMocks {
		logger.Info("Using mock generation connector")
		completer = llm.NewMockConnector(logger)
	} else {
		logger.Info("Using OpenAI generation connector",
			zap.String("model", cfg.OpenAICfg.Model),
		)
		completer = llm.NewConnector(cfg.OpenAICfg, logger)
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)

	// Initialize use cases
	sheetUC := sheet.NewUsecase(
		extractor.New(logger),
		prompt.NewBuilder(cfg.SheetCfg.MaxContentRunes),
		renderer.New(cfg.SheetCfg.OutputDir, logger),
		completer,
		cfg.SheetCfg,
		logger,
	)
	chatUC := chat.NewUsecase(completer, cfg.ChatCfg, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	studyHandler := studyapi.NewHandler(
		sessionStore,
		sheetUC,
		chatUC,
		fileValidator,
		cfg.SheetCfg,
		cfg.OpenAICfg,
		cfg.FileUploadCfg,
	)
	documentHandler := documentapi.NewHandler(cfg.SheetCfg.OutputDir)

	// Setup router
	router := api.SetupRouter(studyHandler, documentHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
