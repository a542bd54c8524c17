package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

type Cloudinary struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	MaxBytes     int64
	HTTP         *http.Client
}

func NewCloudinary(baseURL, cloudName, preset string, maxBytes int64, timeout time.Duration) *Cloudinary {
	return &Cloudinary{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		CloudName:    cloudName,
		UploadPreset: preset,
		MaxBytes:     maxBytes,
		HTTP:         &http.Client{Timeout: timeout},
	}
}

type uploadResp struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	if f.Empty() {
		return "", ErrEmptyFile
	}
	if c.MaxBytes > 0 && f.Size > c.MaxBytes {
		return "", ErrTooLarge
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", f.Filename)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return "", fmt.Errorf("upload: read file: %w", err)
	}
	if err := mw.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer res.Body.Close()

	var out uploadResp
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response (status %d): %w", res.StatusCode, err)
	}
	if res.StatusCode/100 != 2 {
		msg := res.Status
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("upload: host rejected: %s", msg)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("upload: response without secure_url")
	}
	return out.SecureURL, nil
}
