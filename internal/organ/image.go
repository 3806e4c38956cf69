package organ

import "github.com/aidanlsb/odfkit/internal/ini"

// Image is a free-standing bitmap placed on a panel (GoImage).
type Image struct {
	// Image and Mask hold absolute paths when they resolve, the stored
	// reference otherwise.
	Image string
	Mask  string

	positionX   int
	positionY   int
	width       int
	height      int
	tileOffsetX int
	tileOffsetY int

	bitmapWidth  int
	bitmapHeight int
}

// NewImage returns an image for path with size taken from the bitmap.
func NewImage(path string, ctx *Context) *Image {
	img := &Image{Image: path}
	img.probe(ctx)
	img.width = img.bitmapWidth
	img.height = img.bitmapHeight
	return img
}

func (img *Image) probe(ctx *Context) {
	img.bitmapWidth, img.bitmapHeight = 1, 1
	if w, h, ok := ctx.imageSize(img.Image); ok {
		img.bitmapWidth, img.bitmapHeight = w, h
	}
}

// PositionX returns the left coordinate.
func (img *Image) PositionX() int { return img.positionX }

// PositionY returns the top coordinate.
func (img *Image) PositionY() int { return img.positionY }

// Width returns the drawn width.
func (img *Image) Width() int { return img.width }

// Height returns the drawn height.
func (img *Image) Height() int { return img.height }

// TileOffsetX returns the horizontal tiling offset.
func (img *Image) TileOffsetX() int { return img.tileOffsetX }

// TileOffsetY returns the vertical tiling offset.
func (img *Image) TileOffsetY() int { return img.tileOffsetY }

// SetPosition moves the image; coordinates outside the panel are ignored.
func (img *Image) SetPosition(x, y int, m *DisplayMetrics) {
	if x >= 0 && x <= m.ScreenSizeHoriz {
		img.positionX = x
	}
	if y >= 0 && y <= m.ScreenSizeVert {
		img.positionY = y
	}
}

// SetSize changes the drawn size; non-positive or oversized values are ignored.
func (img *Image) SetSize(w, h int, m *DisplayMetrics) {
	if w >= 1 && w <= m.ScreenSizeHoriz {
		img.width = w
	}
	if h >= 1 && h <= m.ScreenSizeVert {
		img.height = h
	}
}

// SetTileOffset changes the tiling offset; it must lie inside the bitmap.
func (img *Image) SetTileOffset(x, y int) {
	if x >= 0 && x < img.bitmapWidth {
		img.tileOffsetX = x
	}
	if y >= 0 && y < img.bitmapHeight {
		img.tileOffsetY = y
	}
}

// Read loads the image from s. Ranges depend on the panel metrics and the
// probed bitmap size.
func (img *Image) Read(s ini.Section, m *DisplayMetrics, ctx *Context) {
	img.Image = ctx.resolve(s.String("Image", ""))
	img.Mask = ctx.resolve(s.String("Mask", ""))
	img.probe(ctx)

	img.positionX = s.Int("PositionX", 0, m.ScreenSizeHoriz, 0)
	img.positionY = s.Int("PositionY", 0, m.ScreenSizeVert, 0)
	img.width = s.Int("Width", 1, m.ScreenSizeHoriz, img.bitmapWidth)
	img.height = s.Int("Height", 1, m.ScreenSizeVert, img.bitmapHeight)
	img.tileOffsetX = s.Int("TileOffsetX", 0, img.bitmapWidth-1, 0)
	img.tileOffsetY = s.Int("TileOffsetY", 0, img.bitmapHeight-1, 0)
}

// Write emits the image keys, omitting defaults.
func (img *Image) Write(w *ini.Writer, ctx *Context) {
	w.Set("Image", ctx.relative(img.Image))
	if img.Mask != "" {
		w.Set("Mask", ctx.relative(img.Mask))
	}
	writeIntIfNot(w, "PositionX", img.positionX, 0)
	writeIntIfNot(w, "PositionY", img.positionY, 0)
	writeIntIfNot(w, "Width", img.width, img.bitmapWidth)
	writeIntIfNot(w, "Height", img.height, img.bitmapHeight)
	writeIntIfNot(w, "TileOffsetX", img.tileOffsetX, 0)
	writeIntIfNot(w, "TileOffsetY", img.tileOffsetY, 0)
}

// Clone returns an independent copy.
func (img *Image) Clone() *Image {
	c := *img
	return &c
}
