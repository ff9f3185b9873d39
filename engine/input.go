package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/Carmen-Shannon/haunted-house/engine/window"
)

// InputSource emits window events. window.Window satisfies it.
type InputSource interface {
	SetResizeCallback(callback func(width, height int, contentScale float64))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode int, shift bool))
	SetMouseDownCallback(callback func(button window.MouseButton, x, y float32))
	SetMouseUpCallback(callback func(button window.MouseButton, x, y float32))
	SetMouseMoveCallback(callback func(x, y float32))
}

// PointerTarget consumes orbit input. camera.Rig satisfies it.
type PointerTarget interface {
	PointerDown(button camera.PointerButton, x, y float32)
	PointerMove(x, y float32)
	PointerUp()
	Scroll(offset float32)
}

// KeyHandler consumes key presses. tweak.KeyPanel satisfies it.
type KeyHandler interface {
	Press(key int, shift bool) bool
}

// BindInput routes window events: resizes to the viewport, left drag to orbit, right drag
// to pan, the wheel to dolly and key presses to the tweak panel. keys may be nil.
//
// Parameters:
//   - src: the event source
//   - v: the viewport receiving resizes
//   - pointer: the orbit camera input
//   - keys: the key handler, or nil
//   - logger: logs clamped resizes
func BindInput(src InputSource, v *viewport.Viewport, pointer PointerTarget, keys KeyHandler, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	src.SetResizeCallback(func(width, height int, contentScale float64) {
		if _, err := v.Resize(width, height, contentScale); err != nil {
			logger.Warn("viewport clamped", "width", width, "height", height, "error", err)
		}
	})

	src.SetMouseDownCallback(func(button window.MouseButton, x, y float32) {
		switch button {
		case window.MouseLeft:
			pointer.PointerDown(camera.PointerRotate, x, y)
		case window.MouseRight:
			pointer.PointerDown(camera.PointerPan, x, y)
		}
	})
	src.SetMouseUpCallback(func(button window.MouseButton, _, _ float32) {
		if button == window.MouseLeft || button == window.MouseRight {
			pointer.PointerUp()
		}
	})
	src.SetMouseMoveCallback(pointer.PointerMove)
	src.SetScrollCallback(pointer.Scroll)

	if keys != nil {
		src.SetKeyDownCallback(func(keyCode int, shift bool) {
			keys.Press(keyCode, shift)
		})
	}
}
