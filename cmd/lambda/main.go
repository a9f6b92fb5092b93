package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/lambdafn"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/model"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/adapter/storage"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/config"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/infrastructure/logger"
	"github.com/Abdulsz/toxic-chat-classifier-api/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// AWS credentials and region come from the execution environment
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	store := storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket, cfg.Model.Prefix)
	loader := model.NewHugotLoader(log)
	provisioner := usecase.NewProvisioner(store, loader, cfg.Model.CacheDir, log)

	// No result cache on the Lambda path; every invocation is isolated.
	uc := usecase.NewToxicityUsecase(provisioner, nil, log)

	h := lambdafn.NewHandler(uc, log)

	lambda.Start(h.Handle)
	return nil
}
