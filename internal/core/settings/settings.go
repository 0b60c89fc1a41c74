// Package settings applies and clears color customizations in a
// workspace's .vscode/settings.json, treating the file as shared state:
// only the keys tint owns are ever touched.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/palette"
)

const (
	settingsDir       = ".vscode"
	settingsFile      = "settings.json"
	customizationsKey = "workbench.colorCustomizations"
)

// ownedKeys is every style key tint may ever write. Clear removes all of
// them so that switching targets never strands stale keys.
var ownedKeys = []string{
	"titleBar.activeBackground",
	"titleBar.activeForeground",
	"titleBar.inactiveBackground",
	"titleBar.inactiveForeground",
	"statusBar.background",
	"statusBar.foreground",
	"activityBar.background",
	"activityBar.foreground",
}

// Path returns the settings file path for a workspace root.
func Path(root string) string {
	return filepath.Join(root, settingsDir, settingsFile)
}

// Apply merges the color keys for the given targets into the workspace
// settings, replacing any previously owned keys and preserving everything
// else in the file.
func Apply(root string, entry palette.Entry, targets []config.Target) error {
	path := Path(root)

	doc, err := read(path)
	if err != nil {
		return err
	}

	cust := customizations(doc)
	for _, key := range ownedKeys {
		delete(cust, key)
	}

	for _, target := range targets {
		switch target {
		case config.TargetTitleBar:
			cust["titleBar.activeBackground"] = entry.Background
			cust["titleBar.activeForeground"] = entry.Foreground
			cust["titleBar.inactiveBackground"] = entry.InactiveBackground()
			cust["titleBar.inactiveForeground"] = entry.InactiveForeground()
		case config.TargetStatusBar:
			cust["statusBar.background"] = entry.Background
			cust["statusBar.foreground"] = entry.Foreground
		case config.TargetActivityBar:
			cust["activityBar.background"] = entry.Background
			cust["activityBar.foreground"] = entry.Foreground
		}
	}

	doc[customizationsKey] = cust

	return write(path, doc)
}

// Clear removes exactly the owned keys. The customizations map is dropped
// entirely when nothing else remains in it. Clearing a workspace that was
// never colored is a no-op.
func Clear(root string) error {
	path := Path(root)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	doc, err := read(path)
	if err != nil {
		return err
	}

	raw, ok := doc[customizationsKey]
	if !ok {
		return nil
	}

	cust, ok := raw.(map[string]any)
	if !ok {
		// Someone replaced the map with another type; leave it alone.
		return nil
	}

	changed := false
	for _, key := range ownedKeys {
		if _, present := cust[key]; present {
			delete(cust, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if len(cust) == 0 {
		delete(doc, customizationsKey)
	} else {
		doc[customizationsKey] = cust
	}

	return write(path, doc)
}

// customizations extracts the existing customizations map, tolerating a
// missing or malformed entry.
func customizations(doc map[string]any) map[string]any {
	if raw, ok := doc[customizationsKey]; ok {
		if m, ok := raw.(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}

// read loads the settings document. A missing file is an empty document.
func read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	doc := map[string]any{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	return doc, nil
}

// write stores the settings document atomically, creating .vscode/ if
// needed.
func write(path string, doc map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}
