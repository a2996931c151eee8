// Package netx holds small HTTP helpers.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxErrBody caps how much of a failed response body ends up in the error.
const maxErrBody = 1024

// UploadToPresignedURL PUTs body to a presigned object-store URL. Any status
// other than 200 is reported together with the start of the response body.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url, contentType string, body []byte) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
