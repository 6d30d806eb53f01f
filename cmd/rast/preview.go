package main

import (
	"context"
	"fmt"
	"image"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/rast/pkg/render"
)

// previewSize fits a width × height frame into a terminal of cols × rows
// cells, two pixels per cell vertically, keeping the aspect ratio.
func previewSize(width, height, cols, rows int) (int, int) {
	maxW, maxH := cols, rows*2
	if width <= maxW && height <= maxH {
		return width, height
	}
	scale := min(float64(maxW)/float64(width), float64(maxH)/float64(height))
	return max(1, int(float64(width)*scale)), max(1, int(float64(height)*scale))
}

// preview shows fb in the alternate screen until a key is pressed or ctx
// is cancelled.
func preview(ctx context.Context, fb *render.Framebuffer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	draw := func() error {
		w, h := previewSize(fb.Width(), fb.Height(), cols, rows)
		frame := fb
		if w != fb.Width() || h != fb.Height() {
			frame = fb.Resized(w, h)
		}
		term.Erase()
		frame.Draw(term, uv.Rectangle(image.Rect(0, 0, cols, rows)))
		return term.Display()
	}
	if err := draw(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	events := make(chan any)
	go func() {
		defer close(events)
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Resize(cols, rows)
				if err := draw(); err != nil {
					return fmt.Errorf("display: %w", err)
				}
			case uv.KeyPressEvent:
				return nil
			}
		}
	}
}
