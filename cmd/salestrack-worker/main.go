package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	var httpOpts *workerHTTPOpts
	if cfg.SalesTrack.WorkerHTTPAddr != "" {
		httpOpts = &workerHTTPOpts{
			httpAddr:    cfg.SalesTrack.WorkerHTTPAddr,
			swaggerPath: os.Getenv("workerSwaggerPath"),
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := RunWorker(ctx, cfg, defaultWorkerFactories(), log.Named("worker"), httpOpts); err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
