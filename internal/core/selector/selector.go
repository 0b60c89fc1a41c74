// Package selector chooses a palette index for a workspace, honoring
// persisted overrides and the configured selection policy.
package selector

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/kv"
	"github.com/colonyops/tint/internal/core/palette"
	"github.com/colonyops/tint/internal/core/workspace"
)

// Namespace used for all persisted selector state. Overrides are stored
// per workspace root, the recent-use history is global.
const (
	stateNamespace = "agentColor"
	overrideKey    = "override:"
	historyKey     = "usedIndices"
)

// Assignment is the chosen palette slot for a workspace.
type Assignment struct {
	Index      int
	Entry      palette.Entry
	Overridden bool // explicit persisted override vs computed
}

// Selector computes palette indices. Not safe for concurrent use; tint
// operations are single-shot command invocations.
type Selector struct {
	overrides *kv.TypedKV[int]
	history   *kv.TypedKV[[]int]
	policy    config.Policy
	entries   []palette.Entry

	// randInt returns a uniform int in [0, n). Swapped out in tests.
	randInt func(n int) int
}

// New creates a Selector over the given palette entries. The store carries
// per-workspace overrides and the global recent-use history.
func New(store kv.KV, policy config.Policy, entries []palette.Entry) *Selector {
	return &Selector{
		overrides: kv.Scoped[int](store, stateNamespace),
		history:   kv.Scoped[[]int](store, stateNamespace),
		policy:    policy,
		entries:   entries,
		randInt:   rand.IntN,
	}
}

// Current returns the assignment for a workspace. An override always wins.
// Under the hash policy the index is computed from the workspace name and
// nothing is persisted; under the spread policy a first activation picks
// and persists a fresh index.
func (s *Selector) Current(ctx context.Context, ws workspace.Workspace) (Assignment, error) {
	idx, err := s.overrides.Get(ctx, overrideKey+ws.Root)
	switch {
	case err == nil:
		return s.assignment(idx, true), nil
	case !errors.Is(err, kv.ErrNotFound):
		return Assignment{}, fmt.Errorf("read override: %w", err)
	}

	if s.policy == config.PolicySpread {
		idx, err := s.pick(ctx)
		if err != nil {
			return Assignment{}, err
		}
		if err := s.overrides.Set(ctx, overrideKey+ws.Root, idx); err != nil {
			return Assignment{}, fmt.Errorf("persist assignment: %w", err)
		}
		return s.assignment(idx, true), nil
	}

	return s.assignment(palette.IndexFor(ws.Name, len(s.entries)), false), nil
}

// Reroll picks a new index for the workspace and persists it as an
// override. Under the hash policy the result is guaranteed to differ from
// the workspace's current index; under the spread policy the picker is
// simply re-invoked.
func (s *Selector) Reroll(ctx context.Context, ws workspace.Workspace) (Assignment, error) {
	var idx int

	switch s.policy {
	case config.PolicySpread:
		picked, err := s.pick(ctx)
		if err != nil {
			return Assignment{}, err
		}
		idx = picked
	default:
		cur, err := s.Current(ctx, ws)
		if err != nil {
			return Assignment{}, err
		}
		n := len(s.entries)
		offset := 1 + s.randInt(n-1) // [1, n-1], so the result always differs
		idx = (cur.Index + offset) % n
	}

	if err := s.overrides.Set(ctx, overrideKey+ws.Root, idx); err != nil {
		return Assignment{}, fmt.Errorf("persist override: %w", err)
	}

	return s.assignment(idx, true), nil
}

// Set persists an explicit index choice for the workspace, e.g. from the
// interactive picker.
func (s *Selector) Set(ctx context.Context, ws workspace.Workspace, idx int) (Assignment, error) {
	if idx < 0 || idx >= len(s.entries) {
		return Assignment{}, fmt.Errorf("index %d out of range [0, %d)", idx, len(s.entries))
	}
	if err := s.overrides.Set(ctx, overrideKey+ws.Root, idx); err != nil {
		return Assignment{}, fmt.Errorf("persist override: %w", err)
	}
	return s.assignment(idx, true), nil
}

// Clear removes the persisted override for a workspace. Clearing a
// workspace without an override is a no-op.
func (s *Selector) Clear(ctx context.Context, ws workspace.Workspace) error {
	if err := s.overrides.Delete(ctx, overrideKey+ws.Root); err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	return nil
}

// HasOverride reports whether the workspace has a persisted override.
func (s *Selector) HasOverride(ctx context.Context, ws workspace.Workspace) (bool, error) {
	return s.overrides.Has(ctx, overrideKey+ws.Root)
}

// pick selects a random index biased away from recently used ones, then
// records the pick in the bounded global history.
func (s *Selector) pick(ctx context.Context) (int, error) {
	n := len(s.entries)

	recent, err := s.history.Get(ctx, historyKey)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return 0, fmt.Errorf("read history: %w", err)
	}

	used := make(map[int]bool, len(recent))
	for _, i := range recent {
		used[i] = true
	}

	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !used[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		// Everything was used recently, fall back to the full range.
		for i := 0; i < n; i++ {
			candidates = append(candidates, i)
		}
	}

	idx := candidates[s.randInt(len(candidates))]

	recent = append(recent, idx)
	if bound := n * 3 / 4; len(recent) > bound {
		recent = recent[len(recent)-bound:]
	}
	if err := s.history.Set(ctx, historyKey, recent); err != nil {
		return 0, fmt.Errorf("persist history: %w", err)
	}

	return idx, nil
}

// assignment wraps an index, clamping overrides that predate a palette
// shrink back into range.
func (s *Selector) assignment(idx int, overridden bool) Assignment {
	idx = idx % len(s.entries)
	return Assignment{
		Index:      idx,
		Entry:      s.entries[idx],
		Overridden: overridden,
	}
}
