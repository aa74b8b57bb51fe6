package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/repcoin/repcoin/internal/engine"
	"github.com/repcoin/repcoin/internal/models"
	"github.com/repcoin/repcoin/internal/track"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "RepCoin server URL (e.g. https://repcoin.tail1234.ts.net)")
	apiKey := flag.String("key", "", "API key for write endpoints")
	exercise := flag.String("exercise", "pushup", "exercise to track (pushup or situp)")
	recording := flag.String("recording", "", "path to a recorded sample CSV to replay")
	manual := flag.Bool("manual", false, "count taps from stdin, one line per rep")
	flushOnly := flag.Bool("flush-only", false, "deliver journaled reps and exit")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repcoin-track", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: repcoin-track -server <URL> -key <API key> -recording <CSV> [-exercise pushup|situp]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *recording == "" && !*manual && !*flushOnly {
		fmt.Fprintf(os.Stderr, "Error: -recording is required (or use -manual or -flush-only)\n")
		os.Exit(1)
	}

	kind, err := engine.ParseKind(*exercise)
	if err != nil {
		log.Error("invalid exercise", "error", err)
		os.Exit(1)
	}

	// Open journal
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	journal, err := track.OpenJournal(filepath.Join(homeDir, ".repcoin-track"))
	if err != nil {
		log.Error("failed to open journal", "error", err)
		os.Exit(1)
	}
	defer journal.Close()

	ctx := context.Background()
	client := track.NewClient(*serverURL, *apiKey)

	// Deliver anything left over from earlier offline runs
	if sent, err := journal.Flush(ctx, client); err != nil {
		log.Warn("journal flush incomplete", "sent", sent, "error", err)
	} else if sent > 0 {
		log.Info("journal flushed", "sent", sent)
	}

	if *flushOnly {
		return
	}

	var summary track.Summary
	if *manual {
		tracker, err := track.NewTracker(engine.Config{Kind: kind, Source: engine.SourceManual}, client, journal, log)
		if err != nil {
			log.Error("failed to create tracker", "error", err)
			os.Exit(1)
		}
		log.Info("manual mode: press Enter for each rep, Ctrl-D to finish")
		summary, err = tracker.RunManual(ctx, os.Stdin)
		if err != nil {
			log.Error("tracking failed", "error", err)
			printSummary(summary)
			os.Exit(1)
		}
	} else {
		rec, err := track.ReadRecordingFile(*recording)
		if err != nil {
			log.Error("failed to read recording", "error", err)
			os.Exit(1)
		}
		log.Info("recording loaded", "samples", len(rec.Raws), "source", rec.Source)

		tracker, err := track.NewTracker(engine.Config{Kind: kind, Source: rec.Source}, client, journal, log)
		if err != nil {
			log.Error("failed to create tracker", "error", err)
			os.Exit(1)
		}
		summary, err = tracker.Run(ctx, rec)
		if err != nil {
			log.Error("tracking failed", "error", err)
			printSummary(summary)
			os.Exit(1)
		}
	}

	// Record the workout session summary
	session := models.WorkoutSession{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	switch kind {
	case engine.KindPushup:
		session.Pushups = summary.Reps
	case engine.KindSitup:
		session.Situps = summary.Reps
	}
	session.TotalCoins = summary.Coins
	if err := client.PostSession(ctx, session); err != nil {
		log.Warn("session summary not recorded", "error", err)
	}

	printSummary(summary)
	log.Info("tracking complete")
}

func printSummary(s track.Summary) {
	fmt.Println()
	fmt.Println("=== Workout Summary ===")
	fmt.Printf("  Exercise:   %s\n", s.Exercise)
	fmt.Printf("  Reps:       %d\n", s.Reps)
	fmt.Printf("  Coins:      %d\n", s.Coins)
	fmt.Printf("  Journaled:  %d (pending delivery)\n", s.Journaled)
	fmt.Println()
	fmt.Printf("  Samples:    %d\n", s.Counters.Samples)
	fmt.Printf("  Invalid:    %d\n", s.Counters.Invalid)
	fmt.Printf("  Debounced:  %d\n", s.Counters.Debounced)
	fmt.Println()
}
