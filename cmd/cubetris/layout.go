package main

import "image"

const margin = 16

// screenLayout places the board on the left and the preview with the score panel on its right.
type screenLayout struct {
	board   image.Rectangle
	preview image.Rectangle
	panel   image.Point
}

func computeLayout(w, h int) screenLayout {
	side := max(min(w/4, h/4), 1)
	boardW := max(w-side-3*margin, 1)
	boardH := max(h-2*margin, 1)
	board := image.Rect(margin, margin, margin+boardW, margin+boardH)
	preview := image.Rect(board.Max.X+margin, margin, board.Max.X+margin+side, margin+side)
	return screenLayout{
		board:   board,
		preview: preview,
		panel:   image.Pt(preview.Min.X, preview.Max.Y+margin),
	}
}
