package export

// Slide geometry in EMU for a 16:9 deck.
const (
	emuPerInch = 914400

	slideWidth  = int64(10.0 * emuPerInch)
	slideHeight = int64(5.625 * emuPerInch)

	marginX = int64(0.5 * emuPerInch)

	titleTop    = int64(0.3 * emuPerInch)
	titleHeight = int64(0.9 * emuPerInch)

	bodyTop    = int64(1.4 * emuPerInch)
	bodyHeight = int64(3.8 * emuPerInch)

	// Bullets take 90% of the width on their own and 45% beside an image,
	// which fills the right-hand 45%.
	bodyWidthFull = int64(9.0 * emuPerInch)
	bodyWidthHalf = int64(4.5 * emuPerInch)
	imageLeft     = int64(5.0 * emuPerInch)
	imageWidth    = int64(4.5 * emuPerInch)
)

// Frame positions a shape on the slide, in EMU.
type Frame struct {
	X, Y, W, H int64
}

var (
	titleFrame     = Frame{X: marginX, Y: titleTop, W: slideWidth - 2*marginX, H: titleHeight}
	bodyFrameFull  = Frame{X: marginX, Y: bodyTop, W: bodyWidthFull, H: bodyHeight}
	bodyFrameSplit = Frame{X: marginX, Y: bodyTop, W: bodyWidthHalf, H: bodyHeight}
	imageFrame     = Frame{X: imageLeft, Y: bodyTop, W: imageWidth, H: bodyHeight}
)

// Role selects the typography of a text block.
type Role int

const (
	RoleTitle Role = iota
	RoleBody
	RolePlaceholder
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleBody:
		return "body"
	case RolePlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Align is the horizontal paragraph alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// TextBlock is a text shape with one paragraph per line.
type TextBlock struct {
	Role  Role
	Frame Frame
	Lines []string
	Color string // "#rrggbb"
	Align Align
}

// DeckBuilder assembles a presentation document. Calls arrive in document
// order from a single goroutine: Begin, then NewSlide followed by that
// slide's shapes, repeated, then Bytes once.
type DeckBuilder interface {
	Begin(title string)
	NewSlide(background string)
	AddText(tb TextBlock)
	AddImage(img *Image, frame Frame)
	Bytes() ([]byte, error)
}

// fitFrame scales a w×h image to fit inside f, preserving aspect ratio, and
// centers it there. Unknown dimensions fill the frame.
func fitFrame(f Frame, w, h int) Frame {
	if w <= 0 || h <= 0 {
		return f
	}
	fw, fh := f.W, f.H
	// Compare aspect ratios without floating point: w/h > fw/fh.
	if int64(w)*fh > fw*int64(h) {
		fh = fw * int64(h) / int64(w)
	} else {
		fw = fh * int64(w) / int64(h)
	}
	return Frame{
		X: f.X + (f.W-fw)/2,
		Y: f.Y + (f.H-fh)/2,
		W: fw,
		H: fh,
	}
}
