package tracklist

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mixsplit/mixsplit/internal/model"
)

// Parse reads the full text of a timing file and returns the tracklist it
// describes. Records are parsed in file order; blank lines and comment lines
// are skipped and counted for line numbering.
//
// The first non-skipped line may be a header naming the source audio file or
// URL instead of a record (its first field is then not a timestamp). File I/O
// is the caller's concern; Parse only ever sees text.
func Parse(text string) (*model.Tracklist, error) {
	tl := &model.Tracklist{}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	first := true
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if IsSkippable(line) {
			continue
		}

		// The first real line may be a header naming the source file instead
		// of a track. It is a header exactly when its first field is not a
		// timestamp; a line that starts with a valid timestamp but fails
		// later is a broken record and stays an error.
		if first && isHeaderLine(line) {
			tl.Source = strings.TrimSpace(line)
			first = false
			continue
		}
		first = false

		entry, err := ParseEntry(line, lineNum)
		if err != nil {
			return nil, err
		}

		tl.Entries = append(tl.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading timing file: %w", err)
	}

	if len(tl.Entries) == 0 {
		return nil, ErrEmptyTracklist
	}
	return tl, nil
}

// isHeaderLine reports whether a line's first field is not a timestamp, which
// makes the whole line a source path or URL rather than a track record.
func isHeaderLine(line string) bool {
	line = strings.TrimSpace(line)
	field := line
	if i := strings.Index(line, PipeSeparator); i >= 0 {
		field = line[:i]
	} else if i := strings.IndexByte(line, ' '); i >= 0 {
		field = line[:i]
	}
	_, err := ParseTimestamp(field)
	return err != nil
}
