package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"slate-cli/internal/model"

	"github.com/google/uuid"
)

// Upload sends a file (thumbnail, reference media) for an entity as
// multipart/form-data and returns the stored file's URL.
//
// Form fields: entity_id, type (discriminator, e.g. "thumbnail"), file.
func (c *Client) Upload(ctx context.Context, kind model.Kind, id int64, typ, filename string, r io.Reader) (string, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", ErrNoBaseURL
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := func() error {
			if err := mw.WriteField("entity_id", fmt.Sprintf("%d", id)); err != nil {
				return err
			}
			if err := mw.WriteField("type", typ); err != nil {
				return err
			}
			fw, err := mw.CreateFormFile("file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(fw, r); err != nil {
				return err
			}
			return mw.Close()
		}()
		_ = pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/"+kindPath(kind)+"/upload", pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.ActorEmail != "" {
		req.Header.Set("X-Actor-Email", c.ActorEmail)
	}

	httpc := c.HTTPClient
	if httpc == nil {
		httpc = http.DefaultClient
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", readAPIError(resp)
	}

	var out struct {
		File struct {
			FileURL string `json:"fileUrl"`
		} `json:"file"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.File.FileURL, nil
}
