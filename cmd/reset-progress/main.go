// Command reset-progress deletes every progress row of one user and, with
// --erase-history, their review logs as well. Points are kept. Each deletion
// is recorded in the audit log.
//
// Flags:
//
//	--user           user ID (required)
//	--erase-history  also delete the user's review logs
//	--actor          ID of the operator running the command (optional)
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/memorypower/internal/app"
	"github.com/heartmarshall/memorypower/internal/config"
	"github.com/heartmarshall/memorypower/pkg/ctxutil"
)

func main() {
	userFlag := flag.String("user", "", "user ID whose progress is reset")
	eraseFlag := flag.Bool("erase-history", false, "also delete the user's review logs")
	actorFlag := flag.String("actor", "", "ID of the operator running the command")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --user %q: %v\n", *userFlag, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("reset-progress starting", slog.String("version", app.BuildVersion()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	if *actorFlag != "" {
		actor, err := uuid.Parse(*actorFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --actor %q: %v\n", *actorFlag, err)
			os.Exit(2)
		}
		ctx = ctxutil.WithActorID(ctx, actor)
	}

	c, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer c.Close()

	deleted, err := c.Progress.ResetUserProgress(ctx, userID)
	if err != nil {
		logger.Error("reset progress failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		c.Close()
		os.Exit(1)
	}

	erased := 0
	if *eraseFlag {
		erased, err = c.Progress.EraseUserHistory(ctx, userID)
		if err != nil {
			logger.Error("erase history failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			c.Close()
			os.Exit(1)
		}
	}

	logger.Info("reset-progress completed",
		slog.String("user_id", userID.String()),
		slog.Int("progress_deleted", deleted),
		slog.Int("logs_deleted", erased),
	)
}
