package export

import (
	"bytes"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

// Font sizes in points.
const (
	fontTitle       = 32
	fontBody        = 18
	fontPlaceholder = 14
)

// pptBuilder renders a deck with GoPPT.
type pptBuilder struct {
	p      *ppt.Presentation
	slide  *ppt.Slide
	slides int
}

// NewGoPPTBuilder returns a DeckBuilder producing PowerPoint 2007+ output.
func NewGoPPTBuilder() DeckBuilder {
	return &pptBuilder{p: ppt.New()}
}

func (b *pptBuilder) Begin(title string) {
	props := b.p.GetDocumentProperties()
	props.Title = title
	props.Creator = "Slidecraft"
}

func (b *pptBuilder) NewSlide(background string) {
	// A new document already holds one empty slide.
	if b.slides == 0 {
		b.slide = b.p.GetActiveSlide()
	} else {
		b.slide = b.p.CreateSlide()
	}
	b.slides++

	bg := b.slide.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(slideWidth).SetHeight(slideHeight)
	bg.SetFill(solidFill(background))
}

func (b *pptBuilder) AddText(tb TextBlock) {
	shape := b.slide.CreateRichTextShape()
	shape.SetOffsetX(tb.Frame.X).SetOffsetY(tb.Frame.Y)
	shape.SetWidth(tb.Frame.W).SetHeight(tb.Frame.H)

	color := ppt.NewColor(argb(tb.Color))
	for i, line := range tb.Lines {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(line)
		switch tb.Role {
		case RoleTitle:
			tr.GetFont().SetSize(fontTitle).SetBold(true).SetColor(color)
		case RolePlaceholder:
			tr.GetFont().SetSize(fontPlaceholder).SetColor(color)
		default:
			tr.GetFont().SetSize(fontBody).SetColor(color)
		}
		if tb.Align == AlignCenter {
			shape.GetActiveParagraph().SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		}
	}
}

func (b *pptBuilder) AddImage(img *Image, frame Frame) {
	f := fitFrame(frame, img.Width, img.Height)
	shape := b.slide.CreateDrawingShape()
	shape.SetImageData(img.Data, img.MIME)
	shape.SetOffsetX(f.X).SetOffsetY(f.Y)
	shape.SetWidth(f.W).SetHeight(f.H)
}

func (b *pptBuilder) Bytes() ([]byte, error) {
	w, err := ppt.NewWriter(b.p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("create writer: %w", err)
	}
	pw, ok := w.(*ppt.PPTXWriter)
	if !ok {
		return nil, fmt.Errorf("unexpected writer type %T", w)
	}
	var buf bytes.Buffer
	if err := pw.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func solidFill(hex string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb(hex)))
}

// argb converts "#rrggbb" to the opaque "FFRRGGBB" form GoPPT expects.
func argb(hex string) string {
	return "FF" + strings.ToUpper(strings.TrimPrefix(hex, "#"))
}
