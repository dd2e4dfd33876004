// Package roster loads the users to moderate from the operator-provided
// input files: a VRCX group-export JSON file and/or a comma-separated text
// dump of user IDs.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"autoban/pkg/domain"
	"autoban/pkg/logger"

	"go.uber.org/zap"
)

// DumpDisplayName is the placeholder display name given to users loaded from
// a bare ID dump, which carries no names.
const DumpDisplayName = "ID Dump User"

// Load merges the users from the export file and the ID dump, deduplicated by
// ID in first-seen order. Either file may be absent; a missing file is
// skipped with a warning. A present-but-malformed file is an error.
func Load(ctx context.Context, exportPath string, dumpPath string) ([]domain.User, error) {
	var users []domain.User

	exported, err := LoadExport(ctx, exportPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "export file not found, skipping", zap.String("path", exportPath))
	} else if err != nil {
		return nil, err
	}
	users = append(users, exported...)

	dumped, err := LoadIDDump(ctx, dumpPath)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn(ctx, "ID dump file not found, skipping", zap.String("path", dumpPath))
	} else if err != nil {
		return nil, err
	}
	users = append(users, dumped...)

	return Dedupe(users), nil
}

// LoadExport reads a VRCX group-export JSON file: an array of membership
// records, each carrying a nested user object. Records with incomplete user
// data are skipped with a warning.
func LoadExport(ctx context.Context, path string) ([]domain.User, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read export file: %w", err)
	}

	var members []struct {
		User struct {
			ID          string `json:"id"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
	}
	if err := json.Unmarshal(b, &members); err != nil {
		return nil, fmt.Errorf("could not parse export file %q: %w", path, err)
	}

	users := make([]domain.User, 0, len(members))
	for _, member := range members {
		if member.User.ID == "" || member.User.DisplayName == "" {
			logger.Warn(ctx, "skipping member with incomplete user data",
				zap.String("userID", member.User.ID))

			continue
		}
		if !domain.ValidUserID(member.User.ID) {
			logger.Warn(ctx, "skipping member with malformed user ID",
				zap.String("userID", member.User.ID))

			continue
		}
		users = append(users, domain.User{ID: member.User.ID, DisplayName: member.User.DisplayName})
	}

	logger.Info(ctx, "loaded users from export file",
		zap.String("path", path), zap.Int("count", len(users)))

	return users, nil
}

// LoadIDDump reads a comma-separated text file of user IDs. The file may
// contain newlines and stray whitespace around IDs; blank tokens are dropped
// and malformed usr_-prefixed tokens are skipped with a warning.
func LoadIDDump(ctx context.Context, path string) ([]domain.User, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ID dump file: %w", err)
	}

	var users []domain.User
	for _, token := range splitIDs(string(b)) {
		if !domain.ValidUserID(token) {
			logger.Warn(ctx, "skipping malformed user ID", zap.String("userID", token))

			continue
		}
		users = append(users, domain.User{ID: token, DisplayName: DumpDisplayName})
	}

	logger.Info(ctx, "loaded users from ID dump",
		zap.String("path", path), zap.Int("count", len(users)))

	return users, nil
}

// Dedupe removes duplicate users by ID, keeping the first occurrence so an
// export entry (which has a real display name) wins over a dump entry.
func Dedupe(users []domain.User) []domain.User {
	seen := make(map[string]struct{}, len(users))
	out := make([]domain.User, 0, len(users))
	for _, user := range users {
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		out = append(out, user)
	}

	return out
}

// splitIDs tokenizes comma-separated ID text, trimming whitespace (including
// newlines inside the list) and dropping blank tokens.
func splitIDs(content string) []string {
	var out []string
	for _, token := range strings.Split(content, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		out = append(out, token)
	}

	return out
}
