package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"btc-signal-bot/internal/repository"
	"btc-signal-bot/internal/service"
	"btc-signal-bot/pkg/logger"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check-and-notify cycle and exit",
	Run:   Check,
}

func Check(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo := repository.NewRepository(appDep.cfg, appDep.log, appDep.cache)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.notifier)

	if err := services.SignalService.CheckAndNotify(ctx); err != nil {
		appDep.log.Error("Check cycle failed", logger.ErrorField(err))
		os.Exit(1)
	}
}
