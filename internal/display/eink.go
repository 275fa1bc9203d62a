package display

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"goalwatch/internal/nhl"
	"goalwatch/internal/types"
)

// Panel dimensions for the Inky Impression 7.3" (Spectra 6).
const (
	einkWidth  = 800
	einkHeight = 480
)

// rgb is a Spectra-6-safe color.
type rgb struct{ r, g, b int }

// The six colors the panel can show.
var (
	colorWhite  = rgb{255, 255, 255}
	colorBlack  = rgb{0, 0, 0}
	colorRed    = rgb{255, 0, 0}
	colorOrange = rgb{255, 140, 0}
	colorGreen  = rgb{0, 255, 0}
)

// ScheduleSource provides the favorite team's upcoming games for the lower
// panel section.
type ScheduleSource interface {
	ClubSchedule(ctx context.Context, team string) (*nhl.ScheduleDoc, error)
}

// EInkRenderer draws the scoreboard into an 800x480 PNG laid out for the
// e-ink panel: header, timestamp, per-game rows colored by state with the
// favorite team highlighted, an upcoming-games section for the favorite
// team, and a footer. The image is written to OutputPath; pushing it to the
// physical panel is left to the host (simulation mode).
type EInkRenderer struct {
	schedule   ScheduleSource
	favorite   string
	loc        *time.Location
	outputPath string
	maxGames   int
	logger     *slog.Logger
	nowFn      func() time.Time

	fontLarge  font.Face
	fontMedium font.Face
	fontSmall  font.Face
	fontTiny   font.Face
}

// EInkConfig holds the parameters for creating an EInkRenderer.
type EInkConfig struct {
	Schedule   ScheduleSource
	Favorite   string
	Location   *time.Location
	OutputPath string
	MaxGames   int
	Logger     *slog.Logger
}

// NewEInkRenderer creates the renderer and prepares the font faces from the
// embedded Go fonts, so no font files are required on the host.
func NewEInkRenderer(cfg EInkConfig) (*EInkRenderer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	maxGames := cfg.MaxGames
	if maxGames <= 0 {
		maxGames = 8
	}

	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeRenderFailed, "failed to parse bold font", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeRenderFailed, "failed to parse regular font", err)
	}

	r := &EInkRenderer{
		schedule:   cfg.Schedule,
		favorite:   cfg.Favorite,
		loc:        loc,
		outputPath: cfg.OutputPath,
		maxGames:   maxGames,
		logger:     logger,
		nowFn:      time.Now,
	}

	for _, f := range []struct {
		src  *opentype.Font
		size float64
		dst  *font.Face
	}{
		{bold, 32, &r.fontLarge},
		{regular, 24, &r.fontMedium},
		{regular, 18, &r.fontSmall},
		{regular, 14, &r.fontTiny},
	} {
		face, err := opentype.NewFace(f.src, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeRenderFailed, "failed to build font face", err)
		}
		*f.dst = face
	}

	return r, nil
}

// Render implements Renderer: draws the full layout and writes the PNG.
func (r *EInkRenderer) Render(ctx context.Context, doc *nhl.ScoreboardDoc) error {
	dc := gg.NewContext(einkWidth, einkHeight)
	setColor(dc, colorWhite)
	dc.Clear()

	y := 10.0

	dc.SetFontFace(r.fontLarge)
	setColor(dc, colorBlack)
	dc.DrawStringAnchored("NHL SCORES & SCHEDULE", einkWidth/2, y+16, 0.5, 0.5)
	y += 45

	dc.SetFontFace(r.fontSmall)
	dc.DrawStringAnchored(r.nowFn().In(r.loc).Format("2006-01-02 3:04 PM MST"), einkWidth/2, y+9, 0.5, 0.5)
	y += 30

	dc.SetLineWidth(2)
	dc.DrawLine(10, y, einkWidth-10, y)
	dc.Stroke()
	y += 15

	if doc == nil || len(doc.Games) == 0 {
		dc.SetFontFace(r.fontMedium)
		dc.DrawStringAnchored("No games scheduled today", einkWidth/2, y+50, 0.5, 0.5)
	} else {
		shown := 0
		for _, game := range doc.Games {
			if shown >= r.maxGames || y > 280 {
				// Leave room for the upcoming-games section.
				break
			}
			y = r.drawGame(dc, game, y)
			shown++
		}

		y = r.drawUpcoming(ctx, dc, y)
	}

	dc.SetFontFace(r.fontTiny)
	setColor(dc, colorBlack)
	dc.DrawStringAnchored("Updates every 2 minutes | Powered by NHL API", einkWidth/2, einkHeight-12, 0.5, 0.5)

	if err := dc.SavePNG(r.outputPath); err != nil {
		return types.NewAppError(types.ErrCodeRenderFailed,
			fmt.Sprintf("failed to write %s", r.outputPath), err)
	}

	r.logger.Info("e-ink image written", "path", r.outputPath)
	return nil
}

// drawGame draws one scoreboard row and returns the next y position.
func (r *EInkRenderer) drawGame(dc *gg.Context, game nhl.Game, y float64) float64 {
	color := colorBlack
	marker := ""
	if game.Involves(r.favorite) {
		color = colorRed
		marker = ">>> "
	} else {
		switch Classify(game) {
		case ClassLive:
			color = colorGreen
		case ClassScheduled:
			color = colorOrange
		}
	}

	dc.SetFontFace(r.fontSmall)
	setColor(dc, color)
	dc.DrawString(fmt.Sprintf("%s[%9s]", marker, StateLabel(game)), 20, y+14)
	dc.DrawString(FormatGameLine(game, r.loc), 170, y+14)

	return y + 28
}

// drawUpcoming draws the favorite team's upcoming games section. A schedule
// fetch failure skips the section; the scoreboard above is still useful.
func (r *EInkRenderer) drawUpcoming(ctx context.Context, dc *gg.Context, y float64) float64 {
	if r.schedule == nil || y >= 350 {
		return y
	}

	upcoming, err := r.schedule.ClubSchedule(ctx, r.favorite)
	if err != nil {
		r.logger.Warn("club schedule fetch failed", "team", r.favorite, "error", err)
		return y
	}

	y += 10
	setColor(dc, colorRed)
	dc.SetLineWidth(3)
	dc.DrawLine(10, y, einkWidth-10, y)
	dc.Stroke()
	y += 15

	dc.SetFontFace(r.fontMedium)
	dc.DrawStringAnchored(fmt.Sprintf("%s UPCOMING GAMES", r.favorite), einkWidth/2, y+12, 0.5, 0.5)
	y += 30

	dc.SetFontFace(r.fontSmall)
	count := 0
	for _, game := range upcoming.Games {
		if count >= 3 || y > einkHeight-40 {
			break
		}
		line := fmt.Sprintf("%s  %s", game.GameDate, FormatGameLine(game, r.loc))
		dc.DrawString(line, 20, y+14)
		y += 25
		count++
	}

	return y
}

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB255(c.r, c.g, c.b)
}
