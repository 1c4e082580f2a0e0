// Package fetch downloads source audio through yt-dlp. It is an acquisition
// collaborator: the split pipeline only ever sees the resulting file path.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Retry and progress constants
const (
	MaxRetries       = 1
	RetryBackoff     = 2 * time.Second
	ProgressInterval = 500 * time.Millisecond
)

// OutputTemplate names downloads after the source title.
const OutputTemplate = "%(title)s.%(ext)s"

// URL prefixes that select fetching over local file access
var urlPrefixes = []string{"http://", "https://"}

// Progress reports download state to the callback.
type Progress struct {
	Percent int
	Speed   string
	Title   string
}

// Fetcher downloads a single URL into a destination directory.
type Fetcher struct {
	destDir  string
	onUpdate func(Progress)
}

// NewFetcher creates a fetcher writing into destDir.
func NewFetcher(destDir string) *Fetcher {
	return &Fetcher{destDir: destDir}
}

// SetUpdateCallback sets the callback function for progress updates
func (f *Fetcher) SetUpdateCallback(callback func(Progress)) {
	f.onUpdate = callback
}

// IsURL reports whether the source argument needs fetching rather than being
// a local path.
func IsURL(source string) bool {
	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// Fetch downloads the URL and returns the local path of the audio file.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(f.destDir + "/" + OutputTemplate)

	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		f.notifyProgress(&update)
	})

	result, err := f.fetchWithRetry(ctx, dl, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 || info[0].Filename == nil {
		return "", fmt.Errorf("fetch of %s finished but produced no file info: %v", url, err)
	}
	return *info[0].Filename, nil
}

// fetchWithRetry attempts the download with backoff between attempts.
func (f *Fetcher) fetchWithRetry(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			log.Printf("Retrying fetch of %s, attempt %d", url, attempt+1)
		}

		result, err := dl.Run(ctx, url)
		if err == nil {
			return result, nil
		}

		lastErr = err
		log.Printf("Fetch attempt %d failed for %s: %v", attempt+1, url, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (f *Fetcher) notifyProgress(update *ytdlp.ProgressUpdate) {
	if f.onUpdate == nil {
		return
	}

	p := Progress{}
	if update.TotalBytes > 0 {
		p.Percent = int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
	}
	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			p.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		}
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}

	f.onUpdate(p)
}
