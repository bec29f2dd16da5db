package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"btc-signal-bot/internal/delivery/http"
	"btc-signal-bot/internal/delivery/telegram"
	"btc-signal-bot/internal/repository"
	"btc-signal-bot/internal/scheduler"
	"btc-signal-bot/internal/service"
	"btc-signal-bot/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the bitcoin buy-signal bot",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.log, appDep.cache)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.notifier)

	sched, err := scheduler.New(&appDep.cfg.Scheduler, appDep.log, services.SignalService)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	httpHandler := http.NewHttpAPIHandler(appDep.echo, services)
	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	telegramHandler := telegram.NewTelegramBotHandler(ctx, appDep.cfg, appDep.log, appDep.telegramBot, services)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sched.Run(gctx)
	})

	g.Go(func() error {
		telegramHandler.Start()
		return nil
	})

	<-gctx.Done()
	appDep.log.Info("Shutting down gracefully...")

	telegramHandler.Stop()

	if err := apiServer.Stop(); err != nil {
		appDep.log.Error("Failed to stop HTTP server", logger.ErrorField(err))
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Application error: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Printf("Failed to close app dependency: %v", err)
	}
}
