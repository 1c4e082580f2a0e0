package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/olekukonko/tablewriter"

	"github.com/mixsplit/mixsplit/internal/config"
	"github.com/mixsplit/mixsplit/internal/fetch"
	"github.com/mixsplit/mixsplit/internal/ffmpeg"
	"github.com/mixsplit/mixsplit/internal/model"
	"github.com/mixsplit/mixsplit/internal/splitter"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := ffmpeg.NewDriver(cfg.FFmpegPath, cfg.FFprobePath)
	if err := driver.CheckAvailable(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "FFmpeg needs to be installed on this machine and able to be found on the PATH")
		os.Exit(1)
	}

	fetchDir := cfg.OutputDir
	if fetchDir == "" {
		fetchDir = "."
	}
	fetcher := fetch.NewFetcher(fetchDir)
	fetcher.SetUpdateCallback(func(p fetch.Progress) {
		fmt.Printf("\rFetching %s: %d%% (%s)", p.Title, p.Percent, p.Speed)
	})

	svc := splitter.NewService(driver, driver, fetcher, splitter.Options{
		OutputDir:    cfg.OutputDir,
		Workers:      cfg.Workers,
		BestEffort:   cfg.BestEffort,
		NumberTracks: cfg.NumberTracks,
		WriteTags:    cfg.WriteTags,
	})
	svc.SetUpdateCallback(func(job *model.SplitJob) {
		if job.Status == model.TaskStatusExtracting && job.Total > 0 {
			fmt.Printf("\rSplitting '%s': track %d/%d", job.GetDisplayName(), job.Done, job.Total)
		}
	})

	fmt.Printf("mixsplit v%s\n", version)

	failed := 0
	for _, timingPath := range cfg.TimingFiles {
		if err := runOne(ctx, svc, cfg, timingPath); err != nil {
			log.Printf("Error: %v", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// runOne processes one timing file end to end.
func runOne(ctx context.Context, svc *splitter.Service, cfg *config.Config, timingPath string) error {
	text, err := os.ReadFile(timingPath)
	if err != nil {
		return fmt.Errorf("reading timing file: %w", err)
	}

	p, err := svc.Prepare(ctx, splitter.PrepareRequest{
		TimingPath: timingPath,
		TimingText: string(text),
		Source:     cfg.Source,
	})
	if err != nil {
		return err
	}

	printPlan(p)
	if cfg.DryRun {
		return nil
	}

	if err := svc.Execute(ctx, p); err != nil {
		fmt.Println()
		return err
	}

	fmt.Printf("\nFinished splitting '%s' into %d tracks in %s\n",
		p.Job.GetDisplayName(), len(p.Segments), p.Job.OutputDir)
	return nil
}

// printPlan renders the validated plan before any extraction starts.
func printPlan(p *splitter.Plan) {
	fmt.Printf("Source: %s (%s)\n", p.Job.Source, model.FormatOffset(p.Total))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Start", "End", "Length", "Track", "Output"})
	table.SetRowLine(false)
	for i, seg := range p.Segments {
		table.Append([]string{
			fmt.Sprint(seg.TrackNumber()),
			model.FormatOffset(seg.Start),
			model.FormatOffset(seg.End),
			model.FormatOffset(seg.Duration()),
			seg.GetDisplayTitle(),
			filepath.Base(p.Outputs[i]),
		})
	}
	table.Render()
}
