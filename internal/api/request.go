package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvfile"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/utils"
)

const (
	contentTypeJSON = "application/json"
	acceptEncoding  = "gzip"
	requestIDHeader = "X-Request-ID"
	maxLogBody      = 300
)

// formField is a plain multipart field. Order matters for the server logs only.
type formField struct {
	Name  string
	Value string
}

// formFile is a file multipart field.
type formFile struct {
	Name string
	File *cvfile.File
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentTypeJSON)

	return c.do(req, path, target)
}

func (c *Client) postMultipart(ctx context.Context, path string, fields []formField, files []formFile, target any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, f := range files {
		if f.File == nil {
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Name), escapeQuotes(f.File.Name)))
		h.Set("Content-Type", f.File.ContentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.File.Data); err != nil {
			return err
		}
	}

	for _, f := range fields {
		field, err := w.CreateFormField(f.Name)
		if err != nil {
			return err
		}

		if _, err = io.Copy(field, strings.NewReader(f.Value)); err != nil {
			return err
		}
	}
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, path, target)
}

func (c *Client) do(req *http.Request, path string, target any) error {
	requestID := uuid.NewString()
	c.setHeaders(req, requestID)

	log := logger.WithRequest(c.logger, path, requestID)
	log.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Debug("got error response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", utils.TruncateForLog(string(data), maxLogBody)),
		)
		return parseAPIError(resp.StatusCode, data)
	}

	log.Debug("got response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(data)))

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Accept-Encoding", acceptEncoding)
	req.Header.Set(requestIDHeader, requestID)
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(reader)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
