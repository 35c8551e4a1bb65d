// Package objectstore uploads user files (report photos, claim proof
// documents, profile images) to a Supabase-compatible storage HTTP API and
// hands back public URLs.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client talks to one storage project. Uploads go to Bucket first and fall
// back to FallbackBucket when the primary bucket rejects the write.
type Client struct {
	BaseURL        string
	Key            string
	Bucket         string
	FallbackBucket string

	HTTP *http.Client
}

func NewClient(baseURL, key, bucket, fallbackBucket string) *Client {
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		Key:            key,
		Bucket:         bucket,
		FallbackBucket: fallbackBucket,
		HTTP:           &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the client is configured. A disabled client makes
// the upload endpoints return an error instead of panicking at boot.
func (c *Client) Enabled() bool {
	return c != nil && c.BaseURL != "" && c.Key != ""
}

// Upload stores the file under a random name in the given folder and
// returns its public URL. The original filename only contributes its
// extension.
func (c *Client) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	objectPath := path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))

	url, err := c.uploadTo(ctx, c.Bucket, objectPath, contentType, data)
	if err == nil {
		return url, nil
	}
	if c.FallbackBucket == "" || c.FallbackBucket == c.Bucket {
		return "", err
	}
	zap.S().Warnw("primary bucket upload failed, trying fallback",
		"bucket", c.Bucket, "fallback", c.FallbackBucket, "err", err)
	return c.uploadTo(ctx, c.FallbackBucket, objectPath, contentType, data)
}

func (c *Client) uploadTo(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.BaseURL, bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.Key)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload to bucket %s failed: %s: %s", bucket, resp.Status, strings.TrimSpace(string(body)))
	}
	return c.PublicURL(bucket, objectPath), nil
}

// PublicURL builds the unauthenticated download URL for a stored object.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.BaseURL, bucket, objectPath)
}
