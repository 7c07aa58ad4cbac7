// Command replay feeds a sequence of answer qualities for a single item
// through the configured scheduling policy, backed by the in-memory store,
// and prints the result of each answer. It is used to tune the policy table.
//
// Flags:
//
//	--qualities  comma-separated qualities 0..5 (e.g. "4,4,5,1,1,1")
//	--delay      time between answers; 0 answers each one when it falls due
//	--start      RFC 3339 time of the first answer (default: now)
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/memorypower/internal/adapter/memstore"
	"github.com/heartmarshall/memorypower/internal/app"
	"github.com/heartmarshall/memorypower/internal/config"
	"github.com/heartmarshall/memorypower/internal/domain"
	"github.com/heartmarshall/memorypower/internal/service/progress"
)

func main() {
	qualitiesFlag := flag.String("qualities", "", "comma-separated qualities 0..5")
	delayFlag := flag.Duration("delay", 0, "time between answers; 0 answers each one when due")
	startFlag := flag.String("start", "", "RFC 3339 time of the first answer")
	flag.Parse()

	qualities, err := parseQualities(*qualitiesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --qualities: %v\n", err)
		os.Exit(2)
	}

	start := time.Now().UTC().Truncate(time.Minute)
	if *startFlag != "" {
		start, err = time.Parse(time.RFC3339, *startFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --start: %v\n", err)
			os.Exit(2)
		}
	}

	// Replays never touch a database.
	_ = os.Setenv("STORAGE_BACKEND", string(config.StorageMemory))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(config.LogConfig{Level: "warn", Format: cfg.Log.Format})

	scheduler, err := app.NewScheduler(cfg.Engine)
	if err != nil {
		log.Fatalf("create scheduler: %v", err)
	}

	svc, err := app.NewMemoryService(logger, memstore.New(), scheduler, cfg)
	if err != nil {
		log.Fatalf("create progress service: %v", err)
	}

	if err := replay(context.Background(), os.Stdout, svc, qualities, start, *delayFlag); err != nil {
		logger.Error("replay failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type answerer interface {
	Update(ctx context.Context, input progress.UpdateInput) (progress.AnswerResult, error)
}

// replay answers one item with each quality in turn and writes a table row
// per answer.
func replay(ctx context.Context, w io.Writer, svc answerer, qualities []domain.Quality, start time.Time, delay time.Duration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tANSWERED\tQ\tSTATUS\tNEXT\tMASTERY\tPOWER\tPOINTS\tEVENT")

	userID, itemID := uuid.New(), uuid.New()
	now := start

	for i, q := range qualities {
		res, err := svc.Update(ctx, progress.UpdateInput{
			UserID:  userID,
			ItemID:  itemID,
			Quality: q,
			Now:     now,
		})
		if err != nil {
			return fmt.Errorf("answer %d: %w", i+1, err)
		}

		next := "-"
		if res.NextReviewAt != nil {
			next = res.NextReviewAt.Sub(now).String()
		}

		event := ""
		switch {
		case res.Graduated:
			event = "graduated"
		case res.Lapsed:
			event = "lapsed"
		}

		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%.3f\t%.3f\t%d\t%s\n",
			i+1, now.Format(time.RFC3339), q, res.NewStatus, next,
			res.Mastery, res.MemoryPower, res.PointsAwarded, event)

		switch {
		case delay > 0:
			now = now.Add(delay)
		case res.NextReviewAt != nil:
			now = *res.NextReviewAt
		default:
			now = now.Add(time.Minute)
		}
	}

	return tw.Flush()
}

func parseQualities(raw string) ([]domain.Quality, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("at least one quality is required")
	}

	parts := strings.Split(raw, ",")
	out := make([]domain.Quality, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("quality %q: %w", p, err)
		}
		q := domain.Quality(v)
		if !q.IsValid() {
			return nil, fmt.Errorf("quality %d out of range 0..5", v)
		}
		out = append(out, q)
	}
	return out, nil
}
