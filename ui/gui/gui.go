package gui

import (
	"errors"
	"fmt"

	"clickchess/ui/gui/gbase"
	"clickchess/ui/gui/gctx"
	"clickchess/ui/gui/ghelper/gdialog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type GUIProcessing struct {
	ctx    *gctx.GUIGameContext
	frame  *ebiten.Image
	side   int // last layout size
	title  string
	halted error
}

func NewGUI(ctx *gctx.GUIGameContext) *GUIProcessing {
	return &GUIProcessing{ctx: ctx}
}

func (gp *GUIProcessing) Run() error {
	size := gp.ctx.Canvas.Size()
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle(gbase.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := gp.ctx.Session.Redraw(); err != nil {
		gp.fail(err)
		return err
	}
	gp.updateTitle()

	err := ebiten.RunGame(gp)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) fail(err error) {
	gp.halted = err
	gp.ctx.Logx.Errorf("gui stopped: %v", err)
	gdialog.ShowError(gbase.Title, fmt.Sprintf("The move engine failed, the game cannot continue.\n\n%v", err))
}

func (gp *GUIProcessing) updateTitle() {
	s := gp.ctx.Session
	title := fmt.Sprintf("%s - %v to move", gbase.Title, s.Turn())
	if st := s.Status(); st.Finished() {
		title = fmt.Sprintf("%s - %v", gbase.Title, st)
	}
	if title != gp.title {
		gp.title = title
		ebiten.SetWindowTitle(title)
	}
}

func (gp *GUIProcessing) Update() error {
	if gp.halted != nil {
		return gp.halted
	}
	s := gp.ctx.Session

	// resize: canvas first, the session redraws into it
	if gp.side > 0 && gp.side != s.Viewport() {
		gp.ctx.Canvas.Resize(gp.side)
		if err := s.SetViewport(gp.side); err != nil {
			gp.fail(err)
			return err
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		if err := s.ToggleFlip(); err != nil {
			gp.fail(err)
			return err
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if err := s.HandleClick(mx, my); err != nil {
			gp.fail(err)
			return err
		}
		gp.updateTitle()
	}
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	cv := gp.ctx.Canvas
	if cv.TakeDirty() || gp.frame == nil {
		img := cv.Image()
		b := img.Bounds()
		if gp.frame == nil || gp.frame.Bounds().Dx() != b.Dx() || gp.frame.Bounds().Dy() != b.Dy() {
			gp.frame = ebiten.NewImage(b.Dx(), b.Dy())
		}
		gp.frame.WritePixels(img.Pix)
	}
	screen.DrawImage(gp.frame, nil)

	if gp.ctx.Config.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f\n%s", ebiten.ActualTPS(), gp.ctx.Session.History().MovesAsPGN()))
	}
}

// Layout keeps the board square, following the shorter window side.
func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	side := outsideWidth
	if outsideHeight < side {
		side = outsideHeight
	}
	if side < gbase.MinViewport {
		side = gbase.MinViewport
	}
	gp.side = side
	return side, side
}
