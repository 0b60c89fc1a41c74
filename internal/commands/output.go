package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/colonyops/tint/internal/core/styles"
	"github.com/colonyops/tint/internal/tint"
)

// noWorkspaceMsg is printed when a command has nothing to act on.
const noWorkspaceMsg = "No workspace found; nothing to color"

// writeConfirmation prints the user-visible confirmation after an
// apply-style operation. Git suppression failures are surfaced as a
// warning but never change the exit code; the color itself applied.
func writeConfirmation(w io.Writer, res tint.Result, verb string) {
	entry := res.Assignment.Entry

	label := entry.Name
	if styles.IsTTY(os.Stdout) {
		verb = styles.SuccessStyle.Render(verb)
		label = styles.Swatch(entry.Name, entry.Background, entry.Foreground)
	}

	_, _ = fmt.Fprintf(w, "%s %s %s %s\n", verb, label, styles.MutedStyle.Render("for"), res.Workspace.Name)

	if res.HideTried && res.Hide.Failed() {
		msg := fmt.Sprintf("warning: could not hide settings file from git: %v", res.Hide.Err)
		if styles.IsTTY(os.Stderr) {
			msg = styles.WarnStyle.Render(msg)
		}
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
}
