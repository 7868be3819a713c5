package scrub

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/awslabs/interop/pkg/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single log line. Endpoint records carry base64 packet
// payloads, so lines far beyond bufio's default token size are routine.
const maxLineSize = 16 * 1024 * 1024

// Stats summarizes a scrub run.
type Stats struct {
	// Files is the number of files rewritten.
	Files int
	// Kept is the number of structured records retained.
	Kept int
	// Dropped is the number of lines discarded.
	Dropped int
}

func (s *Stats) add(other Stats) {
	s.Files += other.Files
	s.Kept += other.Kept
	s.Dropped += other.Dropped
}

// extractRecord returns the structured record embedded in a raw log line, if
// any. The record starts at the first brace and must span the rest of the
// line as one valid JSON document.
func extractRecord(line []byte) ([]byte, bool) {
	idx := bytes.IndexByte(line, '{')
	if idx < 0 {
		return nil, false
	}
	record := line[idx:]
	if !json.Valid(record) {
		return nil, false
	}
	return record, true
}

// File rewrites one log file in place, keeping only structured records.
func File(path string) (Stats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stats{}, err
	}
	in, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer in.Close()

	tmpPath := path + "." + uuid.NewString() + ".tmp"
	out, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return Stats{}, err
	}

	stats, err := filter(in, out)
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return Stats{}, err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return Stats{}, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return Stats{}, err
	}
	stats.Files = 1
	return stats, nil
}

func filter(in *os.File, out *os.File) (Stats, error) {
	var stats Stats
	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		record, ok := extractRecord(scanner.Bytes())
		if !ok {
			stats.Dropped++
			continue
		}
		if _, err := w.Write(record); err != nil {
			return Stats{}, err
		}
		if err := w.WriteByte('\n'); err != nil {
			return Stats{}, err
		}
		stats.Kept++
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, err
	}
	if err := w.Flush(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Files scrubs every path concurrently, at most workers files at a time.
// The first failure cancels the remaining work; files already renamed stay
// scrubbed.
func Files(ctx context.Context, paths []string, workers int) (Stats, error) {
	if workers < 1 {
		workers = 1
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	var mu sync.Mutex
	var total Stats
	for _, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			stats, err := File(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logging.Debug("scrub", "Scrubbed %s: kept %d record(s), dropped %d line(s)", path, stats.Kept, stats.Dropped)
			mu.Lock()
			total.add(stats)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return total, err
	}
	return total, nil
}
