package client

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

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// UploadProfileImage uploads an image file as multipart form data and
// returns the URL the server stored it under. When showProgress is true a
// progress bar tracks the file being read into the request.
func (c *Client) UploadProfileImage(ctx context.Context, filePath string, showProgress bool) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close image file")
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat image file: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}

	dst := io.Writer(part)
	if showProgress {
		bar := progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetDescription("Uploading "+filepath.Base(filePath)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		dst = io.MultiWriter(part, bar)
	}
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	data, err := c.Do(ctx, http.MethodPost, "/profile/image", buf.Bytes(), form.FormDataContentType())
	if err != nil {
		return "", err
	}

	var result struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &DecodeError{Err: err}
	}

	log.Info().Str("url", result.Data.URL).Msg("Profile image uploaded")
	return result.Data.URL, nil
}
