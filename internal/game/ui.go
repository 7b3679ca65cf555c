package game

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	tileSize    = 40
	borderWidth = 16  // pixel gap between the window edge and the board
	panelWidth  = 400 // right-hand panel for stats and the log tail
	logTail     = 16  // log lines shown in the panel
)

var (
	colBackground = color.RGBA{R: 18, G: 20, B: 18, A: 255}
	colOpen       = color.RGBA{R: 52, G: 58, B: 48, A: 255}
	colHeavy      = color.RGBA{R: 84, G: 94, B: 60, A: 255}  // olive rubble
	colBlocking   = color.RGBA{R: 96, G: 96, B: 104, A: 255} // grey wall
	colGridLine   = color.RGBA{R: 30, G: 34, B: 30, A: 255}
	colBandA      = color.RGBA{R: 120, G: 40, B: 30, A: 40}
	colBandB      = color.RGBA{R: 30, G: 60, B: 130, A: 40}
	colTeamA      = color.RGBA{R: 200, G: 70, B: 50, A: 255}
	colTeamB      = color.RGBA{R: 60, G: 110, B: 220, A: 255}
	colActiveRing = color.RGBA{R: 255, G: 240, B: 60, A: 220}
	colLeaderRing = color.RGBA{R: 235, G: 235, B: 235, A: 200}
	colSuppressed = color.RGBA{R: 255, G: 160, B: 0, A: 255}
	colPanelText  = color.RGBA{R: 210, G: 215, B: 205, A: 255}
)

// actionKeys maps the number row to actions, in menu order.
var actionKeys = []struct {
	key  ebiten.Key
	kind ActionKind
}{
	{ebiten.Key1, ActionMove},
	{ebiten.Key2, ActionCharge},
	{ebiten.Key3, ActionShoot},
	{ebiten.Key4, ActionFight},
	{ebiten.Key5, ActionDisengage},
	{ebiten.Key6, ActionAim},
	{ebiten.Key7, ActionRecover},
}

// UI is the interactive hotseat front-end. It is also the battle's driving
// loop: each frame it watches for a completed round and opens the next one
// until the match is decided.
type UI struct {
	battle *Battle

	width  int
	height int
	face   *text.GoXFace

	status        string
	outcome       OutcomeReason
	decided       bool
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

// NewUI builds a seeded random skirmish and its window.
func NewUI(seed int64) *UI {
	b := NewSkirmish(seed)
	u := &UI{
		battle:   b,
		width:    borderWidth + b.Grid.Width*tileSize + borderWidth + panelWidth,
		height:   borderWidth + b.Grid.Height*tileSize + borderWidth,
		face:     text.NewGoXFace(basicfont.Face7x13),
		status:   "click a model to activate it",
		prevKeys: map[ebiten.Key]bool{},
	}
	return u
}

// Size returns the window dimensions in pixels.
func (u *UI) Size() (int, int) {
	return u.width, u.height
}

func (u *UI) Update() error {
	b := u.battle

	if b.Phase() == PhaseRoundComplete && !u.decided {
		out := b.DetermineOutcome()
		if out.Outcome != OutcomeInconclusive {
			u.outcome = out
			u.decided = true
			u.status = fmt.Sprintf("battle over: %s (%s)", out.Outcome, out.Description)
		} else {
			b.StartRound()
			u.status = fmt.Sprintf("round %d: team %s has the initiative", b.Round, b.ActiveTeam)
		}
	}

	u.handleKeys()
	u.handleMouse()
	return nil
}

// handleKeys processes the edge-triggered key bindings.
func (u *UI) handleKeys() {
	pressed := func(k ebiten.Key) bool {
		now := ebiten.IsKeyPressed(k)
		was := u.prevKeys[k]
		u.prevKeys[k] = now
		return now && !was
	}

	for _, ak := range actionKeys {
		if pressed(ak.key) && !u.decided {
			u.status = u.battle.SelectAction(ak.kind)
		}
	}
	if pressed(ebiten.KeyE) && !u.decided {
		u.status = u.battle.EndActivation()
	}
	if pressed(ebiten.KeyN) && !u.decided {
		u.status = u.battle.ForceNextRound()
	}
	if pressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(u.battle.BuildReport()); err != nil {
			u.status = fmt.Sprintf("clipboard copy failed: %v", err)
		} else {
			u.status = fmt.Sprintf("copied %d log lines to the clipboard", len(u.battle.Log.Entries()))
		}
	}
}

// handleMouse forwards edge-triggered clicks as tile selections.
func (u *UI) handleMouse() {
	now := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	was := u.prevMouseLeft
	u.prevMouseLeft = now
	if !now || was || u.decided {
		return
	}
	mx, my := ebiten.CursorPosition()
	tx := (mx - borderWidth) / tileSize
	ty := (my - borderWidth) / tileSize
	if mx < borderWidth || my < borderWidth || !u.battle.Grid.InBounds(tx, ty) {
		return
	}
	u.status = u.battle.ClickTile(tx, ty)
}

func (u *UI) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	u.drawBoard(screen)
	u.drawModels(screen)
	u.drawPanel(screen)
	ebitenutil.DebugPrintAt(screen, u.status, borderWidth, u.height-14)
}

func (u *UI) drawBoard(screen *ebiten.Image) {
	b := u.battle
	for y := 0; y < b.Grid.Height; y++ {
		for x := 0; x < b.Grid.Width; x++ {
			px := float32(borderWidth + x*tileSize)
			py := float32(borderWidth + y*tileSize)
			col := colOpen
			switch b.Grid.TileAt(x, y) {
			case TileHeavyCover:
				col = colHeavy
			case TileBlocking:
				col = colBlocking
			}
			vector.FillRect(screen, px, py, tileSize, tileSize, col, false)
			vector.StrokeRect(screen, px, py, tileSize, tileSize, 1, colGridLine, false)
		}
	}

	// Deployment band tints.
	for _, t := range []Team{TeamA, TeamB} {
		minX, maxX := b.deployBand(t)
		col := colBandA
		if t == TeamB {
			col = colBandB
		}
		px := float32(borderWidth + minX*tileSize)
		w := float32((maxX - minX + 1) * tileSize)
		vector.FillRect(screen, px, borderWidth, w, float32(b.Grid.Height*tileSize), col, false)
	}
}

func (u *UI) drawModels(screen *ebiten.Image) {
	b := u.battle
	r := float32(tileSize)/2 - 5
	for _, m := range b.Models {
		if m.Dead || !m.Deployed {
			continue
		}
		cx := float32(borderWidth + m.X*tileSize + tileSize/2)
		cy := float32(borderWidth + m.Y*tileSize + tileSize/2)
		col := colTeamA
		if m.Team == TeamB {
			col = colTeamB
		}
		vector.FillCircle(screen, cx, cy, r, col, true)
		if m.Leader {
			vector.StrokeCircle(screen, cx, cy, r+2, 1.5, colLeaderRing, true)
		}
		if m == b.Active {
			vector.StrokeCircle(screen, cx, cy, r+4, 2, colActiveRing, true)
		}
		if m.Suppressed {
			vector.StrokeCircle(screen, cx, cy, r-3, 1, colSuppressed, true)
		}
		ebitenutil.DebugPrintAt(screen, m.Label(), int(cx)-6, int(cy)-6)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", m.Wounds), int(cx)-3, int(cy)+6)
	}
}

// drawPanel renders the right-hand column: round header, the active model's
// stat block, the key legend, and the log tail.
func (u *UI) drawPanel(screen *ebiten.Image) {
	b := u.battle
	px := borderWidth + b.Grid.Width*tileSize + borderWidth
	y := borderWidth

	u.text(screen, px, y, fmt.Sprintf("Round %d — %s", b.Round, b.Phase()))
	y += 18
	u.text(screen, px, y, fmt.Sprintf("Team %s to act", b.ActiveTeam))
	y += 24

	if m := b.Active; m != nil {
		u.text(screen, px, y, fmt.Sprintf("%s  %s", m.Label(), m.Name))
		y += 16
		lines := []string{
			fmt.Sprintf("actions %d  wounds %d/%d", m.ActionsLeft, m.Wounds, m.WoundsMax()),
			fmt.Sprintf("AC %d  save %d+", m.ArmorClass(), m.SaveTarget()),
			fmt.Sprintf("horror %d  aim %d", m.Horror, m.AimStreak),
		}
		if m.Ranged != nil {
			lines = append(lines, fmt.Sprintf("ranged: %s", m.Ranged.Name))
		}
		lines = append(lines, fmt.Sprintf("melee: %s", m.MeleeWeapon().Name))
		if m.Suppressed {
			lines = append(lines, "SUPPRESSED")
		}
		for _, l := range lines {
			ebitenutil.DebugPrintAt(screen, l, px, y)
			y += 14
		}
	}
	y += 10

	legend := []string{
		"1 move  2 charge  3 shoot  4 fight",
		"5 disengage  6 aim  7 recover",
		"E end activation  N force round",
		"C copy battle report",
	}
	for _, l := range legend {
		ebitenutil.DebugPrintAt(screen, l, px, y)
		y += 14
	}
	y += 10

	if u.decided {
		u.text(screen, px, y, fmt.Sprintf("RESULT: %s", u.outcome.Outcome))
		y += 20
	}

	for _, line := range b.Log.Tail(logTail) {
		if len(line) > 58 {
			line = line[:58]
		}
		ebitenutil.DebugPrintAt(screen, line, px, y)
		y += 13
	}
}

// text draws a header line with the bitmap face, larger than the debug print.
func (u *UI) text(screen *ebiten.Image, x, y int, s string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(colPanelText)
	text.Draw(screen, s, u.face, op)
}

func (u *UI) Layout(_, _ int) (int, int) {
	return u.width, u.height
}
