package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(t *testing.T, body string, color bool) string {
	t.Helper()
	var sb strings.Builder
	assert.NoError(t, New(&sb, color).Print(body))
	return sb.String()
}

func TestPrintBanner(t *testing.T) {
	out := render(t, "No inconsistencies found.", false)

	assert.Equal(t, 2, strings.Count(out, strings.Repeat("=", 50)))
	assert.Contains(t, out, "AI Inconsistency Report")
	assert.Contains(t, out, "No inconsistencies found.")
}

func TestPrintStripsMarkupInPlainMode(t *testing.T) {
	body := "**Inconsistency Found:**\n\n- **Slides Involved:** Slide 2 and Slide 5\n- **Analysis:** figures conflict\n\n---\n\nNo further findings."
	out := render(t, body, false)

	assert.Contains(t, out, "Inconsistency Found:")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "- Slides Involved: Slide 2 and Slide 5")
	assert.Contains(t, out, "- Analysis: figures conflict")
	assert.Contains(t, out, strings.Repeat("-", 50))
	assert.Contains(t, out, "No further findings.")
	assert.NotContains(t, out, "\033[", "plain mode must not emit ANSI codes")
}

func TestPrintBoldsStrongSpansInColorMode(t *testing.T) {
	out := render(t, "**Inconsistency Found:** details", true)

	assert.Contains(t, out, "\033[1mInconsistency Found:\033[0m")
	assert.Contains(t, out, "details")
}

func TestPrintHeadings(t *testing.T) {
	out := render(t, "## Findings\n\nbody text", false)

	assert.Contains(t, out, "Findings")
	assert.NotContains(t, out, "##")
	assert.Less(t, strings.Index(out, "Findings"), strings.Index(out, "body text"))
}
