package display

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"goalwatch/internal/nhl"
)

// TerminalRenderer writes the scoreboard as plain text, one game per line,
// with the favorite team's games marked. It renders to any io.Writer so
// tests can capture the output.
type TerminalRenderer struct {
	out      io.Writer
	favorite string
	loc      *time.Location
	nowFn    func() time.Time
}

// NewTerminalRenderer creates a TerminalRenderer. loc controls how scheduled
// start times are shown; nil means UTC.
func NewTerminalRenderer(out io.Writer, favorite string, loc *time.Location) *TerminalRenderer {
	return &TerminalRenderer{
		out:      out,
		favorite: favorite,
		loc:      loc,
		nowFn:    time.Now,
	}
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(_ context.Context, doc *nhl.ScoreboardDoc) error {
	divider := strings.Repeat("=", 60)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, divider)
	fmt.Fprintf(r.out, "NHL Scores - %s\n", r.nowFn().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(r.out, divider)

	if doc == nil || len(doc.Games) == 0 {
		fmt.Fprintln(r.out, "No games scheduled for today.")
		fmt.Fprintln(r.out, divider)
		return nil
	}

	for _, game := range doc.Games {
		marker := "    "
		if game.Involves(r.favorite) {
			marker = ">>> "
		}
		fmt.Fprintf(r.out, "%s[%9s] %s\n", marker, StateLabel(game), FormatGameLine(game, r.loc))
	}

	fmt.Fprintln(r.out, divider)
	return nil
}
