package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tint/internal/core/config"
	"github.com/colonyops/tint/internal/core/palette"
)

var testEntry = palette.Entry{Name: "Cobalt", Background: "#274C8F", Foreground: "#E8EEFB"}

func readDoc(t *testing.T, root string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(Path(root))
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func custMap(t *testing.T, doc map[string]any) map[string]any {
	t.Helper()
	m, ok := doc[customizationsKey].(map[string]any)
	require.True(t, ok, "expected %s to be a map", customizationsKey)
	return m
}

func TestApply_CreatesSettingsFile(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar}))

	cust := custMap(t, readDoc(t, root))
	assert.Equal(t, "#274C8F", cust["titleBar.activeBackground"])
	assert.Equal(t, "#E8EEFB", cust["titleBar.activeForeground"])
	assert.Equal(t, "#274C8FCC", cust["titleBar.inactiveBackground"])
	assert.Equal(t, "#E8EEFBAA", cust["titleBar.inactiveForeground"])
}

func TestApply_PreservesUnrelatedKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, settingsDir), 0o755))
	existing := `{
  "editor.fontSize": 14,
  "workbench.colorCustomizations": {
    "editorCursor.foreground": "#FF0000"
  }
}`
	require.NoError(t, os.WriteFile(Path(root), []byte(existing), 0o644))

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar}))

	doc := readDoc(t, root)
	assert.Equal(t, float64(14), doc["editor.fontSize"])

	cust := custMap(t, doc)
	assert.Equal(t, "#FF0000", cust["editorCursor.foreground"])
	assert.Equal(t, "#274C8F", cust["titleBar.activeBackground"])
}

func TestApply_ReplacesOwnedKeys(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar, config.TargetStatusBar}))

	// Second apply with a different entry and narrower targets must leave
	// only the latest keys.
	next := palette.Entry{Name: "Teal", Background: "#1F8A8A", Foreground: "#06282A"}
	require.NoError(t, Apply(root, next, []config.Target{config.TargetTitleBar}))

	cust := custMap(t, readDoc(t, root))
	assert.Equal(t, "#1F8A8A", cust["titleBar.activeBackground"])
	assert.NotContains(t, cust, "statusBar.background")
	assert.NotContains(t, cust, "statusBar.foreground")
}

func TestApply_StatusAndActivityBar(t *testing.T) {
	root := t.TempDir()

	targets := []config.Target{config.TargetStatusBar, config.TargetActivityBar}
	require.NoError(t, Apply(root, testEntry, targets))

	cust := custMap(t, readDoc(t, root))
	assert.Equal(t, "#274C8F", cust["statusBar.background"])
	assert.Equal(t, "#274C8F", cust["activityBar.background"])
	assert.NotContains(t, cust, "titleBar.activeBackground")
}

func TestClear_RemovesOnlyOwnedKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, settingsDir), 0o755))
	existing := `{
  "editor.fontSize": 14,
  "workbench.colorCustomizations": {
    "editorCursor.foreground": "#FF0000"
  }
}`
	require.NoError(t, os.WriteFile(Path(root), []byte(existing), 0o644))

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar}))
	require.NoError(t, Clear(root))

	doc := readDoc(t, root)
	assert.Equal(t, float64(14), doc["editor.fontSize"])

	cust := custMap(t, doc)
	assert.Equal(t, "#FF0000", cust["editorCursor.foreground"])
	assert.NotContains(t, cust, "titleBar.activeBackground")
}

func TestClear_DropsEmptyCustomizationsMap(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar}))
	require.NoError(t, Clear(root))

	doc := readDoc(t, root)
	assert.NotContains(t, doc, customizationsKey)
}

func TestClear_NoSettingsFileIsNoop(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Clear(root))

	_, err := os.Stat(Path(root))
	assert.True(t, os.IsNotExist(err), "clear must not create the settings file")
}

func TestClear_Twice(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Apply(root, testEntry, []config.Target{config.TargetTitleBar}))
	require.NoError(t, Clear(root))
	require.NoError(t, Clear(root))
}
