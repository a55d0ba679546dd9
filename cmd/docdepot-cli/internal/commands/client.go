package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	v1 "github.com/tna76874/docdepot/internal/api/rest/v1"
	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/joho/godotenv"
)

// Client talks to a DocDepot server. The API key travels as the raw
// Authorization header value.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClientFromEnv builds a Client from the environment. A .env file in
// the working directory is honored when present. DOCDEPOT_HOST selects
// the server, DOCDEPOT_API_KEY or DOCDEPOT_API_KEY_FILE the key.
func NewClientFromEnv(loggerInstance logger.Logger) (*Client, error) {
	_ = godotenv.Load()

	host := os.Getenv("DOCDEPOT_HOST")
	if host == "" {
		host = "http://localhost:5000"
	}

	apiKey := os.Getenv("DOCDEPOT_API_KEY")
	if apiKey == "" {
		if keyFile := os.Getenv("DOCDEPOT_API_KEY_FILE"); keyFile != "" {
			data, err := os.ReadFile(filepath.Clean(keyFile))
			if err != nil {
				return nil, fmt.Errorf("failed to read api key file: %w", err)
			}
			apiKey = strings.TrimSpace(string(data))
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no api key configured, set DOCDEPOT_API_KEY or DOCDEPOT_API_KEY_FILE")
	}

	return &Client{
		baseURL:    strings.TrimRight(host, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     loggerInstance,
	}, nil
}

// CheckVersion verifies the server speaks the protocol version this
// client was built against. Every command runs it before acting.
func (c *Client) CheckVersion(ctx context.Context) error {
	var versionResponse v1.VersionResponse
	if err := c.doJSON(ctx, http.MethodGet, v1.BasePath+"/version", nil, &versionResponse); err != nil {
		return fmt.Errorf("failed to query server version: %w", err)
	}

	if versionResponse.Version != v1.ClientProtocolVersion {
		return fmt.Errorf("server protocol version %s does not match client version %s", versionResponse.Version, v1.ClientProtocolVersion)
	}

	return nil
}

// UploadDocument deposits a file and returns the server receipt. The
// checksum is computed client-side and verified by the server.
func (c *Client) UploadDocument(ctx context.Context, filePath, title, filename, userUID, checksum string) (*v1.UploadDocumentResponse, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	if filename == "" {
		filename = filepath.Base(filePath)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"title":    title,
		"filename": filename,
		"user_uid": userUID,
		"checksum": checksum,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fileWriter.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+v1.BasePath+"/documents", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", c.apiKey)

	var uploadResponse v1.UploadDocumentResponse
	if err := c.send(req, &uploadResponse); err != nil {
		return nil, err
	}
	return &uploadResponse, nil
}

// IssueToken requests an additional token for an existing document.
func (c *Client) IssueToken(ctx context.Context, documentID string) (string, error) {
	request := v1.IssueTokenRequest{DID: documentID}
	var tokenResponse v1.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, v1.BasePath+"/tokens", request, &tokenResponse); err != nil {
		return "", err
	}
	return tokenResponse.Token, nil
}

// DeleteToken removes a token and its recorded accesses.
func (c *Client) DeleteToken(ctx context.Context, value string) error {
	return c.doJSON(ctx, http.MethodDelete, v1.BasePath+"/tokens/"+value, nil, nil)
}

// UpdateTokenValidity moves the expiry date of a token.
func (c *Client) UpdateTokenValidity(ctx context.Context, value, validUntil string) error {
	request := v1.UpdateValidityRequest{ValidUntil: validUntil}
	return c.doJSON(ctx, http.MethodPut, v1.BasePath+"/tokens/"+value+"/validity", request, nil)
}

// CheckTokenValidity reports validity per token value.
func (c *Client) CheckTokenValidity(ctx context.Context, values []string) (map[string]bool, error) {
	request := v1.CheckValidityRequest{TokenList: values}
	var response v1.CheckValidityResponse
	if err := c.doJSON(ctx, http.MethodPost, v1.BasePath+"/tokens/validity", request, &response); err != nil {
		return nil, err
	}
	return response.TokenValidity, nil
}

// DeleteUser removes a user with all documents, tokens and events.
func (c *Client) DeleteUser(ctx context.Context, uid string) error {
	return c.doJSON(ctx, http.MethodDelete, v1.BasePath+"/users/"+uid, nil, nil)
}

// AverageTimes fetches the per-user average response times in seconds.
// Users without any access map to null.
func (c *Client) AverageTimes(ctx context.Context) (map[string]*float64, error) {
	var response map[string]*float64
	if err := c.doJSON(ctx, http.MethodGet, v1.BasePath+"/stats/average-times", nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// doJSON performs an authenticated JSON round trip. A nil out skips
// body decoding.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", c.apiKey)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body ", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errorResponse v1.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResponse); err == nil && errorResponse.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, errorResponse.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
