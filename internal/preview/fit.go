package preview

// Fit returns the largest rectangle with the image's aspect ratio that fits
// centred inside a winW x winH surface.
func Fit(imgW, imgH, winW, winH int) (x, y, w, h int) {
	if imgW <= 0 || imgH <= 0 || winW <= 0 || winH <= 0 {
		return 0, 0, 0, 0
	}

	// Compare imgW/imgH with winW/winH without floating point.
	if imgW*winH >= winW*imgH {
		w = winW
		h = imgH * winW / imgW
	} else {
		h = winH
		w = imgW * winH / imgH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return (winW - w) / 2, (winH - h) / 2, w, h
}
