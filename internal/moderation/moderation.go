// Package moderation implements the sequential action loops: one pass over
// the roster per action type, skipping users already in the processed set,
// classifying remote failures into done-enough versus retry-later, and
// pausing between calls to stay under the API rate limit.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"autoban/internal/config"
	"autoban/pkg/domain"
	"autoban/pkg/logger"
	"autoban/pkg/serrors"
	"autoban/pkg/store"
	"autoban/pkg/vrc"

	"go.uber.org/zap"
)

// Options configure a moderation pass.
type Options struct {
	// GroupID is the group that ban actions target.
	GroupID string
	// ActionDelay is the fixed pause after every remote call, successful or
	// not. Zero disables the pause.
	ActionDelay time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		GroupID:     cfg.Group.ID,
		ActionDelay: cfg.API.ActionDelay,
	}
}

// Summary aggregates the outcomes of one moderation pass.
type Summary struct {
	// Total is the number of roster users considered.
	Total int
	// Done counts newly applied actions.
	Done int
	// Already counts actions the API reported as applied before; these users
	// are marked processed all the same.
	Already int
	// Skipped counts users found in the processed set.
	Skipped int
	// Failed counts hard failures; these users stay unprocessed so the next
	// invocation retries them.
	Failed int
}

// Moderator runs moderation passes against the API. It is strictly
// sequential; at most one remote call is in flight at any time.
type Moderator struct {
	client  vrc.Client
	options Options
}

// New creates a Moderator using the provided API client and options.
func New(client vrc.Client, options Options) *Moderator {
	return &Moderator{
		client:  client,
		options: options,
	}
}

// BanAll runs one group-ban pass over the roster. Hard per-user failures are
// logged and counted but do not stop the pass; the returned error is non-nil
// only for interruption or a processed-set persistence failure.
func (m *Moderator) BanAll(ctx context.Context, users []domain.User, processed store.ProcessedSet) (Summary, error) {
	summary := Summary{Total: len(users)}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("ban pass interrupted: %w", err)
		}

		status, err := m.banOne(ctx, user, processed)
		switch status {
		case domain.BanStatusNewlyBanned:
			summary.Done++
			logger.Info(ctx, "banned user from group",
				zap.String("displayName", user.DisplayName), zap.String("userID", user.ID))
		case domain.BanStatusAlreadyBanned:
			summary.Already++
			logger.Info(ctx, "user was already banned",
				zap.String("displayName", user.DisplayName), zap.String("userID", user.ID))
		case domain.BanStatusAlreadyProcessed:
			summary.Skipped++
			logger.Debug(ctx, "user already processed, skipping",
				zap.String("displayName", user.DisplayName), zap.String("userID", user.ID))
		case domain.BanStatusFailed:
			summary.Failed++
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// banOne applies the group ban to a single user. It returns the outcome
// status, plus a non-nil error only when the pass itself must stop.
func (m *Moderator) banOne(ctx context.Context, user domain.User, processed store.ProcessedSet) (domain.BanStatus, error) {
	if processed.Contains(user.ID) {
		return domain.BanStatusAlreadyProcessed, nil
	}

	err := m.client.BanGroupMember(ctx, m.options.GroupID, user.ID)
	switch {
	case err == nil:
		if err := processed.Add(ctx, user.ID); err != nil {
			return domain.BanStatusNewlyBanned, fmt.Errorf("could not mark user as processed: %w", err)
		}

		return domain.BanStatusNewlyBanned, m.wait(ctx)
	case errors.Is(err, serrors.ErrConflict):
		// The desired end state already holds; record it so the next run
		// does not resubmit.
		if err := processed.Add(ctx, user.ID); err != nil {
			return domain.BanStatusAlreadyBanned, fmt.Errorf("could not mark user as processed: %w", err)
		}

		return domain.BanStatusAlreadyBanned, m.wait(ctx)
	default:
		logger.Error(ctx, "could not ban user, leaving unprocessed for retry",
			zap.String("displayName", user.DisplayName),
			zap.String("userID", user.ID),
			zap.Error(err))

		return domain.BanStatusFailed, m.wait(ctx)
	}
}

// BlockAll runs one account-block pass over the roster, with the same
// failure semantics as BanAll.
func (m *Moderator) BlockAll(ctx context.Context, users []domain.User, processed store.ProcessedSet) (Summary, error) {
	summary := Summary{Total: len(users)}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("block pass interrupted: %w", err)
		}

		status, err := m.blockOne(ctx, user, processed)
		switch status {
		case domain.BlockStatusBlocked:
			summary.Done++
			logger.Info(ctx, "blocked user",
				zap.String("displayName", user.DisplayName), zap.String("userID", user.ID))
		case domain.BlockStatusAlreadyProcessed:
			summary.Skipped++
			logger.Debug(ctx, "user already processed, skipping",
				zap.String("displayName", user.DisplayName), zap.String("userID", user.ID))
		case domain.BlockStatusFailed:
			summary.Failed++
		}
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// blockOne applies the account block to a single user. Re-blocking an already
// blocked user is accepted by the API, so a conflict still counts as done.
func (m *Moderator) blockOne(ctx context.Context, user domain.User, processed store.ProcessedSet) (domain.BlockStatus, error) {
	if processed.Contains(user.ID) {
		return domain.BlockStatusAlreadyProcessed, nil
	}

	err := m.client.BlockUser(ctx, user.ID)
	switch {
	case err == nil, errors.Is(err, serrors.ErrConflict):
		if err := processed.Add(ctx, user.ID); err != nil {
			return domain.BlockStatusBlocked, fmt.Errorf("could not mark user as processed: %w", err)
		}

		return domain.BlockStatusBlocked, m.wait(ctx)
	default:
		logger.Error(ctx, "could not block user, leaving unprocessed for retry",
			zap.String("displayName", user.DisplayName),
			zap.String("userID", user.ID),
			zap.Error(err))

		return domain.BlockStatusFailed, m.wait(ctx)
	}
}

// wait pauses for the configured action delay, or returns early when the
// context is cancelled.
func (m *Moderator) wait(ctx context.Context) error {
	if m.options.ActionDelay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("interrupted while waiting for rate limit: %w", ctx.Err())
	case <-time.After(m.options.ActionDelay):
		return nil
	}
}
