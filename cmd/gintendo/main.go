// Command gintendo is a thin ebiten front end over the nes package: it
// owns the window, polls the controller, blits the PPU's framebuffer,
// and optionally drops into a line-oriented debug REPL instead of
// opening a window at all.
package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/example/nesgo/nes"
)

var (
	romFile   = flag.String("nes_rom", "", "Path to NES ROM to run.")
	debug     = flag.String("debug", "", "Use with -debug=1 to drop into the single-step REPL instead of opening a window.")
	traceFile = flag.String("trace", "", "Path to write one CPU.Trace() line per MPU instruction, if set.")
)

const (
	screenWidth  = 256
	screenHeight = 240
)

// grayscale maps the PPU's raw 2-bit background pattern value to a
// displayable shade; SPEC_FULL's background-only renderer never folds
// in the attribute-table palette select, so this is a visualization
// convenience, not a decoded NES color.
var grayscale = [4]byte{0, 85, 170, 255}

func main() {
	flag.Parse()

	n := nes.New()
	if err := n.LoadROM(*romFile); err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			log.Fatalf("Couldn't open trace file: %v", err)
		}
		defer f.Close()
		n.AttachTraceSink(f)
	}

	if *debug != "" {
		runDebugREPL(context.Background(), n)
		return
	}

	game := &game{nes: n}
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("gintendo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// game adapts nes.NES to ebiten.Game: one NES frame per ebiten Update.
type game struct {
	nes *nes.NES
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *game) Update() error {
	g.nes.SetButtons(pollButtons())
	return g.nes.Frame()
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.nes.PPU.Framebuffer
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			v := grayscale[fb[y*screenWidth+x]&3]
			screen.Set(x, y, color.Gray{Y: v})
		}
	}
}

// buttons, as bits: A, B, Select, Start, Up, Down, Left, Right.
var keys = [8]ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyLeft,
	ebiten.KeyRight,
}

func pollButtons() uint8 {
	var mask uint8
	for i, k := range keys {
		if ebiten.IsKeyPressed(k) {
			mask |= 1 << i
		}
	}
	return mask
}
