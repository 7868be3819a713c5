package merge

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/awslabs/interop/internal/report"
	"github.com/awslabs/interop/pkg/logging"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPatterns resolves glob patterns (with ** support) to a concrete,
// ordered file list. Patterns keep their argument order and each pattern's
// matches are sorted, so last-write-wins folding is deterministic for the
// same inputs on every platform.
func ExpandPatterns(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if !hasGlobMeta(pattern) {
				return nil, &NoMatchError{Pattern: pattern}
			}
			logging.Debug("loader", "pattern %q matched no files", pattern)
			continue
		}
		sort.Strings(matches)
		logging.Debug("loader", "pattern %q matched %d files", pattern, len(matches))
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// LoadReport reads and decodes one report document, shard or baseline.
func LoadReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	doc, err := report.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
