// Package display renders scoreboard snapshots for the passive surfaces:
// a terminal dashboard and an e-ink panel image. Renderers are variants of
// one interface so the refresh loop never depends on the presence of a
// terminal or panel hardware.
package display

import (
	"context"

	"goalwatch/internal/nhl"
)

// Renderer produces a visual or textual representation of a scoreboard
// snapshot.
type Renderer interface {
	Render(ctx context.Context, doc *nhl.ScoreboardDoc) error
}

// NopRenderer discards every snapshot. Used when no output surface is
// available (headless simulation).
type NopRenderer struct{}

// Render implements Renderer.
func (NopRenderer) Render(context.Context, *nhl.ScoreboardDoc) error {
	return nil
}
