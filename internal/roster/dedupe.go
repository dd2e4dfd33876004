package roster

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"autoban/pkg/logger"

	"go.uber.org/zap"
)

// DedupeStats describes what a RewriteIDDump call did to the file.
type DedupeStats struct {
	// Original is the token count before deduplication.
	Original int
	// Unique is the token count after deduplication.
	Unique int
	// Rewritten is true when the file content changed on disk.
	Rewritten bool
}

// RewriteIDDump normalizes the comma-separated ID dump in place: IDs are
// trimmed, blank tokens dropped, duplicates removed, and the result sorted
// and joined with commas. The file is left untouched when it is already in
// that form.
func RewriteIDDump(ctx context.Context, path string) (DedupeStats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return DedupeStats{}, fmt.Errorf("could not read ID dump file: %w", err)
	}

	tokens := splitIDs(string(b))
	if len(tokens) == 0 {
		logger.Info(ctx, "ID dump is empty, nothing to do", zap.String("path", path))

		return DedupeStats{}, nil
	}

	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	sort.Strings(unique)

	stats := DedupeStats{Original: len(tokens), Unique: len(unique)}

	normalized := strings.Join(unique, ",")
	if strings.TrimSpace(string(b)) == normalized {
		logger.Info(ctx, "ID dump already normalized",
			zap.String("path", path), zap.Int("count", stats.Unique))

		return stats, nil
	}

	if err := os.WriteFile(path, []byte(normalized), 0o644); err != nil {
		return stats, fmt.Errorf("could not rewrite ID dump file: %w", err)
	}
	stats.Rewritten = true

	logger.Info(ctx, "ID dump normalized",
		zap.String("path", path),
		zap.Int("original", stats.Original),
		zap.Int("unique", stats.Unique),
		zap.Int("removed", stats.Original-stats.Unique))

	return stats, nil
}
