package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/pkg/config"
	"github.com/tna76874/docdepot/internal/pkg/logger"
)

// classifyResponse is the wire format of the classifier microservice.
type classifyResponse struct {
	Prediction float64 `json:"prediction"`
}

// remoteClassifierCheck sends image uploads to the external classifier
// service and passes when the prediction stays below the threshold.
// PDFs and other non-image uploads are skipped. An unreachable service
// fails the check but never blocks the deposition, since the report is
// advisory.
type remoteClassifierCheck struct {
	settings *config.ClassifierSettings
	client   *http.Client
	logger   logger.Logger
}

// NewRemoteClassifierCheck creates the remote classifier check.
func NewRemoteClassifierCheck(settings *config.ClassifierSettings, logger logger.Logger) classify.Check {
	return &remoteClassifierCheck{
		settings: settings,
		client:   &http.Client{Timeout: time.Duration(settings.TimeoutSeconds) * time.Second},
		logger:   logger,
	}
}

func (c *remoteClassifierCheck) Name() string { return "remote-classifier" }

func (c *remoteClassifierCheck) Run(ctx context.Context, artifact *classify.Artifact) classify.CheckResult {
	if !c.settings.Enabled {
		return classify.CheckResult{Name: c.Name(), Passed: true, Detail: "classifier disabled, skipped"}
	}
	if !artifact.IsImage() {
		return classify.CheckResult{Name: c.Name(), Passed: true, Detail: "not an image, skipped"}
	}

	prediction, err := c.classify(ctx, artifact)
	if err != nil {
		c.logger.Warn("classifier service unreachable: ", err)
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("classifier unavailable: %v", err),
		}
	}

	if prediction >= c.settings.Threshold {
		return classify.CheckResult{
			Name:   c.Name(),
			Passed: false,
			Detail: fmt.Sprintf("prediction %.2f at or above threshold %.2f", prediction, c.settings.Threshold),
		}
	}

	return classify.CheckResult{
		Name:   c.Name(),
		Passed: true,
		Detail: fmt.Sprintf("prediction %.2f", prediction),
	}
}

// classify posts the image as a multipart upload and decodes the
// prediction score.
func (c *remoteClassifierCheck) classify(ctx context.Context, artifact *classify.Artifact) (float64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", artifact.Filename)
	if err != nil {
		return 0, fmt.Errorf("failed to build classifier request: %w", err)
	}
	if _, err := part.Write(artifact.Data); err != nil {
		return 0, fmt.Errorf("failed to build classifier request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to build classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.settings.URL+"/classify", &body)
	if err != nil {
		return 0, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", c.settings.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("classifier request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close classifier response body: ", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var payload classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode classifier response: %w", err)
	}

	return payload.Prediction, nil
}
