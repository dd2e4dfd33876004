package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"autoban/pkg/logger"
	"autoban/pkg/store"

	"go.uber.org/zap"
)

// ProcessedSet is a store.ProcessedSet backed by a JSON array file. The file
// holds the processed user IDs sorted, so diffs between runs stay readable.
type ProcessedSet struct {
	path string
	ids  map[string]struct{}
}

// NewProcessedSet constructs a ProcessedSet backed by the file at path.
// Call Load before use.
func NewProcessedSet(path string) *ProcessedSet {
	return &ProcessedSet{
		path: path,
		ids:  make(map[string]struct{}),
	}
}

// Load reads the persisted set. A missing file means a fresh start; a file
// that exists but does not parse is an error since overwriting it would throw
// away the only resumability record.
func (p *ProcessedSet) Load(ctx context.Context) error {
	b, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info(ctx, "processed set file not found, starting fresh", zap.String("path", p.path))

		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read processed set: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("could not parse processed set %q: %w", p.path, err)
	}

	p.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p.ids[id] = struct{}{}
	}

	return nil
}

// Contains reports whether the ID has already been processed.
func (p *ProcessedSet) Contains(id string) bool {
	_, ok := p.ids[id]

	return ok
}

// Add marks the ID as processed and persists the set immediately. Adding an
// ID that is already present does not rewrite the file.
func (p *ProcessedSet) Add(ctx context.Context, id string) error {
	if _, ok := p.ids[id]; ok {
		return nil
	}
	p.ids[id] = struct{}{}

	if err := p.save(); err != nil {
		return err
	}

	logger.Debug(ctx, "marked user as processed", zap.String("userID", id), zap.Int("total", len(p.ids)))

	return nil
}

// Len returns the number of processed IDs.
func (p *ProcessedSet) Len() int { return len(p.ids) }

func (p *ProcessedSet) save() error {
	ids := make([]string, 0, len(p.ids))
	for id := range p.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	b, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal processed set: %w", err)
	}

	if err := writeFileAtomic(p.path, b); err != nil {
		return fmt.Errorf("could not save processed set: %w", err)
	}

	return nil
}

// Ensure ProcessedSet conforms to the store.ProcessedSet interface at compile time.
var _ store.ProcessedSet = (*ProcessedSet)(nil)
