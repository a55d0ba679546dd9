package classify

import (
	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/pkg/config"
	"github.com/tna76874/docdepot/internal/pkg/logger"
)

// NewDefaultPipeline wires the standard check sequence for uploads:
// size, content sniffing, PDF heuristics, image heuristics and the
// optional remote classifier, in that order.
func NewDefaultPipeline(uploadSettings *config.UploadSettings, classifierSettings *config.ClassifierSettings, logger logger.Logger) *classify.Pipeline {
	return classify.NewPipeline(
		NewSizeCheck(uploadSettings.MaxSizeBytes),
		NewContentTypeCheck(uploadSettings.AcceptedContentTypes),
		NewPDFStructureCheck(),
		NewImageDimensionCheck(uploadSettings.MinImageEdge),
		NewRemoteClassifierCheck(classifierSettings, logger),
	)
}
