// Package tags applies track metadata to extracted files natively, for
// containers where ffmpeg's tag handling falls short. All operations are best
// effort: a tagging failure never fails the extraction that produced the file.
package tags

import (
	"context"
	"fmt"

	"github.com/simonhull/audiometa"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Apply opens an extracted track and fills in any tag that ffmpeg left empty
// or wrong. Unsupported formats return an error the caller is expected to
// log and ignore.
func Apply(ctx context.Context, path string, seg model.Segment, album string, trackCount int) error {
	f, err := audiometa.OpenContext(ctx, path)
	if err != nil {
		return fmt.Errorf("opening %s for tagging: %w", path, err)
	}
	defer f.Close()

	if !fill(&f.Tags, seg, album, trackCount) {
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("writing tags to %s: %w", path, err)
	}
	return nil
}

// fill sets the desired tags on t and reports whether anything changed.
func fill(t *audiometa.Tags, seg model.Segment, album string, trackCount int) bool {
	changed := false

	if t.Title != seg.Title {
		t.Title = seg.Title
		changed = true
	}
	if t.Artist != seg.Artist {
		t.Artist = seg.Artist
		changed = true
	}
	if album != "" && t.Album != album {
		t.Album = album
		changed = true
	}
	if t.TrackNumber != seg.TrackNumber() {
		t.TrackNumber = seg.TrackNumber()
		changed = true
	}
	if trackCount > 0 && t.TrackTotal != trackCount {
		t.TrackTotal = trackCount
		changed = true
	}

	return changed
}
