//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	seen  bool
	lastX int
	lastY int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

var hostButtons = [...]struct {
	b  ebiten.MouseButton
	pb PointerButton
}{
	{ebiten.MouseButtonLeft, ButtonLeft},
	{ebiten.MouseButtonRight, ButtonRight},
	{ebiten.MouseButtonMiddle, ButtonMiddle},
}

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()
	if !p.seen || x != p.lastX || y != p.lastY {
		p.seen = true
		p.lastX, p.lastY = x, y
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}

	for _, m := range hostButtons {
		if inpututil.IsMouseButtonJustPressed(m.b) {
			p.emit(PointerEvent{Kind: PointerDown, Button: m.pb, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(m.b) {
			p.emit(PointerEvent{Kind: PointerUp, Button: m.pb, X: x, Y: y})
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, Wheel: dy})
	}
}
