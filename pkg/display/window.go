// Package display shows a finished frame in a desktop window.
package display

import (
	"fmt"

	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/hajimehoshi/ebiten/v2"
)

// frameGame draws a static frame. The pixels are uploaded to the GPU once.
type frameGame struct {
	fb       *renderer.Framebuffer
	pix      []byte
	img      *ebiten.Image
	uploaded bool
}

func newFrameGame(fb *renderer.Framebuffer) *frameGame {
	pix := make([]byte, fb.Width*fb.Height*4)
	fb.CopyRGBA(pix)
	return &frameGame{fb: fb, pix: pix}
}

func (g *frameGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (g *frameGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}
	if !g.uploaded {
		g.img.WritePixels(g.pix)
		g.uploaded = true
	}
	screen.DrawImage(g.img, nil)
}

func (g *frameGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}

// Show opens a window sized to the frame and blocks until it is closed with
// ESC or the window close button
func Show(fb *renderer.Framebuffer, title string) error {
	if fb.Width <= 0 || fb.Height <= 0 {
		return fmt.Errorf("display: empty frame %dx%d", fb.Width, fb.Height)
	}

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width, fb.Height)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(newFrameGame(fb)); err != nil && err != ebiten.Termination {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
