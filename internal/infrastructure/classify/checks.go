package classify

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tna76874/docdepot/internal/domain/classify"
)

// pdfHeader is the magic prefix every PDF starts with, followed by the
// version digits, e.g. "%PDF-1.7".
var pdfHeader = []byte("%PDF-")

// pdfTrailer must appear within the final bytes of a well-formed PDF.
var pdfTrailer = []byte("%%EOF")

// trailerWindow bounds how far from the end the %%EOF marker may sit.
// Incremental updates append bytes after the marker, so a small slack
// is allowed.
const trailerWindow = 1024

// sizeCheck rejects empty uploads and uploads above the configured
// ceiling.
type sizeCheck struct {
	maxBytes int64
}

// NewSizeCheck creates the size check. maxBytes <= 0 disables the
// upper bound.
func NewSizeCheck(maxBytes int64) classify.Check {
	return &sizeCheck{maxBytes: maxBytes}
}

func (c *sizeCheck) Name() string { return "size" }

func (c *sizeCheck) Run(_ context.Context, artifact *classify.Artifact) classify.CheckResult {
	size := int64(len(artifact.Data))
	if size == 0 {
		return classify.CheckResult{Name: c.Name(), Passed: false, Detail: "file is empty"}
	}
	if c.maxBytes > 0 && size > c.maxBytes {
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("file size %d exceeds limit of %d bytes", size, c.maxBytes),
		}
	}
	return classify.CheckResult{Name: c.Name(), Passed: true, Detail: fmt.Sprintf("%d bytes", size)}
}

// contentTypeCheck verifies the sniffed content type against the
// accepted set. The declared filename plays no role; only the leading
// bytes count.
type contentTypeCheck struct {
	accepted []string
}

// NewContentTypeCheck creates the content sniffing check.
func NewContentTypeCheck(accepted []string) classify.Check {
	return &contentTypeCheck{accepted: accepted}
}

func (c *contentTypeCheck) Name() string { return "content-type" }

func (c *contentTypeCheck) Run(_ context.Context, artifact *classify.Artifact) classify.CheckResult {
	for _, accept := range c.accepted {
		if artifact.ContentType == accept {
			return classify.CheckResult{Name: c.Name(), Passed: true, Detail: artifact.ContentType}
		}
	}
	return classify.CheckResult{
		Name:   c.Name(),
		Passed: false,
		Detail: fmt.Sprintf("unsupported content type %s", artifact.ContentType),
	}
}

// pdfStructureCheck applies cheap structural heuristics to PDFs:
// header with version digits and an %%EOF trailer near the end.
// Non-PDF artifacts pass untouched.
type pdfStructureCheck struct{}

// NewPDFStructureCheck creates the PDF structure check.
func NewPDFStructureCheck() classify.Check {
	return &pdfStructureCheck{}
}

func (c *pdfStructureCheck) Name() string { return "pdf-structure" }

func (c *pdfStructureCheck) Run(_ context.Context, artifact *classify.Artifact) classify.CheckResult {
	if !artifact.IsPDF() {
		return classify.CheckResult{Name: c.Name(), Passed: true, Detail: "not a pdf, skipped"}
	}

	data := artifact.Data
	if !bytes.HasPrefix(data, pdfHeader) || len(data) < len(pdfHeader)+3 {
		return classify.CheckResult{Name: c.Name(), Passed: false, Detail: "missing %PDF header"}
	}

	version := data[len(pdfHeader) : len(pdfHeader)+3]
	if version[1] != '.' || version[0] < '1' || version[0] > '9' {
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("malformed version marker %q", version),
		}
	}

	tail := data
	if len(tail) > trailerWindow {
		tail = tail[len(tail)-trailerWindow:]
	}
	if !bytes.Contains(tail, pdfTrailer) {
		return classify.CheckResult{Name: c.Name(), Passed: false, Detail: "missing %%EOF trailer"}
	}

	return classify.CheckResult{Name: c.Name(), Passed: true, Detail: "pdf " + string(version)}
}

// imageDimensionCheck decodes the image header and requires both edges
// to reach a minimum pixel count. Non-image artifacts pass untouched.
type imageDimensionCheck struct {
	minEdge int
}

// NewImageDimensionCheck creates the dimension check. The classifier
// model downstream resizes to 150x150, so anything smaller carries no
// usable signal.
func NewImageDimensionCheck(minEdge int) classify.Check {
	return &imageDimensionCheck{minEdge: minEdge}
}

func (c *imageDimensionCheck) Name() string { return "image-dimensions" }

func (c *imageDimensionCheck) Run(_ context.Context, artifact *classify.Artifact) classify.CheckResult {
	if !artifact.IsImage() {
		return classify.CheckResult{Name: c.Name(), Passed: true, Detail: "not an image, skipped"}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(artifact.Data))
	if err != nil {
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("undecodable image: %v", err),
		}
	}

	if cfg.Width < c.minEdge || cfg.Height < c.minEdge {
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("%s %dx%d below minimum edge of %dpx", format, cfg.Width, cfg.Height, c.minEdge),
		}
	}

	return classify.CheckResult{
		Name:   c.Name(),
		Passed: true,
		Detail: fmt.Sprintf("%s %dx%d", format, cfg.Width, cfg.Height),
	}
}
