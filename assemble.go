package pitchdeck

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const pdfCreator = "go-pitchdeck"

// pageAssembler combines slide images into one document, one page per image.
type pageAssembler interface {
	Assemble(title string, pages [][]byte) ([]byte, error)
}

var _ pageAssembler = (*gofpdfAssembler)(nil)

// gofpdfAssembler builds a landscape PDF whose pages measure SlideWidth x
// SlideHeight points. Each image fills its page edge to edge, so a
// RasterScale image keeps its extra resolution.
type gofpdfAssembler struct {
	now func() time.Time
}

func newGofpdfAssembler() *gofpdfAssembler {
	return &gofpdfAssembler{now: time.Now}
}

func (a *gofpdfAssembler) Assemble(title string, pages [][]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrPDFAssembly)
	}

	// Landscape swaps the portrait size, giving SlideWidth x SlideHeight.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: SlideHeight, Ht: SlideWidth},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.SetCreationDate(a.now())

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, img := range pages {
		name := fmt.Sprintf("slide-%02d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, SlideWidth, SlideHeight, false, opts, 0, "")
		if pdf.Err() {
			return nil, fmt.Errorf("%w: page %d: %v", ErrPDFAssembly, i+1, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFAssembly, err)
	}
	return buf.Bytes(), nil
}
