package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

const helpMarkdown = `# factorpad

Declare **variables**, group them into **factors**, then send the model
to the inference endpoint.

## Views

| Key | View |
|-----|------|
| F2 | Variables |
| F3 | Factors |
| F4 | Query |
| F1 | Help |

## Variables

- Enter adds the typed name; duplicates are ignored.
- Ctrl+X deletes the selected variable. Factors keep references to it.
- Ctrl+E cycles evidence: unset, true, false.
- Ctrl+R adds or removes the variable from the query set.

## Factors

- Enter on a variable creates the factor headed by it.
- Tab, then Enter opens a factor; Space toggles its variables.
- d deletes the selected factor.

## Query

- Ctrl+G composes the request from the model; the text stays editable.
- Ctrl+S sends it. A failed request shows Err.
- Ctrl+T switches between MAP and MPE.
- Ctrl+D compares the last two replies.
`

func renderMarkdown(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// replyDiff renders a unified diff between two replies.
func replyDiff(prev, cur string) string {
	if prev == cur {
		return "(replies are identical)"
	}
	edits := myers.ComputeEdits(span.URIFromPath("previous"), prev, cur)
	return fmt.Sprint(gotextdiff.ToUnified("previous", "current", prev, edits))
}
