package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/application/service"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/config"
	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/csvexport"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob"
	fotmobclient "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/infrastructures/fotmob/http/client"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/lib/logger"
)

var (
	leagueURL = flag.String("url", "", "league page URL, e.g. https://www.fotmob.com/leagues/47/overview/premier-league")
	outPath   = flag.String("out", csvexport.FileName, "output CSV path, - for stdout")
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fotmobClient := fotmobclient.NewClient(
		cfg.Fotmob.BaseURL,
		cfg.Fotmob.CountryCode,
		&http.Client{Timeout: cfg.Fotmob.Timeout},
	)
	leagueService := service.NewLeagueService(log, fotmob.NewSource(fotmobClient), nil, nil, 0)

	if err := run(ctx, leagueService, strings.TrimSpace(*leagueURL), *outPath); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ %s\n", describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, svc *service.LeagueService, leagueURL, out string) error {
	if leagueURL == "" {
		return errors.New("please enter a URL (-url)")
	}

	result, err := svc.FetchLeagueTable(ctx, leagueURL)
	if result.LeagueID != "" {
		color.New(color.FgCyan).Fprintf(os.Stderr, "League ID extracted: %s\n", result.LeagueID)
	}
	if err != nil {
		return err
	}

	if result.Table.Empty() {
		color.New(color.FgYellow).Fprintln(os.Stderr, "No matches data available.")
		return nil
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := csvexport.Write(w, result.Table); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ wrote %d matches to %s\n", result.Table.Len(), out)
	return nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, derr.ErrInvalidInput):
		return "Invalid URL format"
	case errors.Is(err, derr.ErrTransport):
		return fmt.Sprintf("Error: %v", err)
	default:
		return err.Error()
	}
}
