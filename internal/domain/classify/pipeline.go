package classify

import (
	"context"
	"net/http"
)

// Artifact is the upload under inspection. ContentType is sniffed once
// from the leading bytes so checks do not have to repeat it.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewArtifact builds an Artifact and sniffs its content type.
func NewArtifact(filename string, data []byte) *Artifact {
	return &Artifact{
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
}

// IsPDF reports whether the sniffed content type is a PDF.
func (a *Artifact) IsPDF() bool {
	return a.ContentType == "application/pdf"
}

// IsImage reports whether the sniffed content type is a raster image
// the service accepts.
func (a *Artifact) IsImage() bool {
	return a.ContentType == "image/png" || a.ContentType == "image/jpeg"
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Report is the ordered list of all check results of one run.
type Report []CheckResult

// Passed reports whether every check in the report passed.
func (r Report) Passed() bool {
	for _, result := range r {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Check inspects an artifact and reports a single result. A check must
// not mutate the artifact.
type Check interface {
	Name() string
	Run(ctx context.Context, artifact *Artifact) CheckResult
}

// Pipeline runs checks in order. Failures never abort the run; the
// report always contains one result per configured check, in
// configuration order.
type Pipeline struct {
	checks []Check
}

// NewPipeline creates a Pipeline over the given checks.
func NewPipeline(checks ...Check) *Pipeline {
	return &Pipeline{checks: checks}
}

// Run executes every check against the artifact.
func (p *Pipeline) Run(ctx context.Context, artifact *Artifact) Report {
	report := make(Report, 0, len(p.checks))
	for _, check := range p.checks {
		report = append(report, check.Run(ctx, artifact))
	}
	return report
}
