// Package tint orchestrates color selection, settings application, and
// git suppression for the command surface.
package tint

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/git"
	"github.com/colonyops/tint/internal/core/kv"
	"github.com/colonyops/tint/internal/core/palette"
	"github.com/colonyops/tint/internal/core/selector"
	"github.com/colonyops/tint/internal/core/settings"
	"github.com/colonyops/tint/internal/core/workspace"
)

// Service wires the selector, presentation applier, and git suppressor.
type Service struct {
	cfg   *config.Config
	store kv.KV
	gits  *git.Suppressor
	log   zerolog.Logger
}

// NewService creates the tint service.
func NewService(cfg *config.Config, store kv.KV, gits *git.Suppressor, logger zerolog.Logger) *Service {
	return &Service{
		cfg:   cfg,
		store: store,
		gits:  gits,
		log:   logger,
	}
}

// Result describes the effect of an apply-style operation.
type Result struct {
	Workspace  workspace.Workspace
	Assignment selector.Assignment
	Policy     config.Policy
	Targets    []config.Target
	Hide       git.Outcome
	HideTried  bool
}

// resolve returns the workspace-effective config and a selector over its
// palette.
func (s *Service) resolve(ws workspace.Workspace) (config.Resolved, *selector.Selector) {
	res := s.cfg.ForWorkspace(ws.Root)
	return res, selector.New(s.store, res.Policy, res.Palette)
}

// Apply computes the current assignment for the workspace and writes its
// style keys, then best-effort hides the settings file.
func (s *Service) Apply(ctx context.Context, ws workspace.Workspace) (Result, error) {
	res, sel := s.resolve(ws)

	asg, err := sel.Current(ctx, ws)
	if err != nil {
		return Result{}, err
	}

	return s.finish(ctx, ws, res, asg)
}

// Reroll picks a new color, persists it as the workspace override, and
// applies it.
func (s *Service) Reroll(ctx context.Context, ws workspace.Workspace) (Result, error) {
	res, sel := s.resolve(ws)

	asg, err := sel.Reroll(ctx, ws)
	if err != nil {
		return Result{}, err
	}

	return s.finish(ctx, ws, res, asg)
}

// SetIndex persists an explicit palette choice and applies it.
func (s *Service) SetIndex(ctx context.Context, ws workspace.Workspace, idx int) (Result, error) {
	res, sel := s.resolve(ws)

	asg, err := sel.Set(ctx, ws, idx)
	if err != nil {
		return Result{}, err
	}

	return s.finish(ctx, ws, res, asg)
}

// Clear removes the persisted override and strips the owned style keys.
// Safe to call when nothing was ever applied.
func (s *Service) Clear(ctx context.Context, ws workspace.Workspace) error {
	_, sel := s.resolve(ws)

	if err := sel.Clear(ctx, ws); err != nil {
		return err
	}

	if err := settings.Clear(ws.Root); err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}

	s.log.Info().Str("workspace", ws.Name).Msg("cleared color override")
	return nil
}

// Status reports the workspace's assignment without touching the settings
// file.
func (s *Service) Status(ctx context.Context, ws workspace.Workspace) (Result, error) {
	res, sel := s.resolve(ws)

	asg, err := sel.Current(ctx, ws)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Workspace:  ws,
		Assignment: asg,
		Policy:     res.Policy,
		Targets:    res.Targets,
	}, nil
}

// Palette returns the palette in effect for the workspace (the built-in
// table unless replaced in config).
func (s *Service) Palette(ws workspace.Workspace) []palette.Entry {
	res := s.cfg.ForWorkspace(ws.Root)
	return res.Palette
}

// finish applies the assignment's style keys and runs the suppressor.
func (s *Service) finish(ctx context.Context, ws workspace.Workspace, res config.Resolved, asg selector.Assignment) (Result, error) {
	if err := settings.Apply(ws.Root, asg.Entry, res.Targets); err != nil {
		return Result{}, fmt.Errorf("apply settings: %w", err)
	}

	out := Result{
		Workspace:  ws,
		Assignment: asg,
		Policy:     res.Policy,
		Targets:    res.Targets,
	}

	if res.HideFromGit {
		out.HideTried = true
		out.Hide = s.gits.Hide(ctx, ws.Root, settings.Path(ws.Root))

		evt := s.log.Debug()
		if out.Hide.Failed() {
			// Suppression failures never fail the operation; the color
			// itself already applied.
			evt = s.log.Warn().Err(out.Hide.Err)
		}
		evt.Str("workspace", ws.Name).Str("status", string(out.Hide.Status)).Msg("git suppression")
	}

	s.log.Info().
		Str("workspace", ws.Name).
		Int("index", asg.Index).
		Str("color", asg.Entry.Name).
		Msg("applied color")

	return out, nil
}
