// Package upload pushes favorite-profile images to the image host and records
// the returned URL in the form.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/fekuna/perfume-order-service/client/form"
	"github.com/fekuna/perfume-order-service/internal/model"
	"github.com/fekuna/perfume-order-service/pkg/i18n"
	"github.com/fekuna/perfume-order-service/pkg/logger"
	"go.uber.org/zap"
)

// DefaultMaxBytes is the image size limit used when Config.MaxBytes is unset.
const DefaultMaxBytes = 10 << 20

var (
	ErrTooLarge     = errors.New("image exceeds size limit")
	ErrNotImage     = errors.New("file is not an image")
	ErrLimitReached = errors.New("image limit reached")
	ErrMissingURL   = errors.New("upload reply has no secure_url")
	ErrRejected     = errors.New("image host rejected upload")
)

type Config struct {
	Endpoint string
	Preset   string
	MaxBytes int64
}

// File is one image picked by the customer.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type uploadReply struct {
	SecureURL string `json:"secure_url"`
}

type Uploader struct {
	cfg    Config
	client *http.Client
	logger logger.ZapLogger
}

func NewUploader(cfg Config, client *http.Client, log logger.ZapLogger) *Uploader {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return &Uploader{cfg: cfg, client: client, logger: log}
}

// Upload checks f, reserves an image slot in h, and fills it with the hosted URL.
// On any failure the slot is released and previously uploaded URLs are untouched.
func (u *Uploader) Upload(ctx context.Context, h *form.Holder, f File) (string, error) {
	if f.Size > u.cfg.MaxBytes {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", ErrNotImage
	}

	slot, err := h.ReserveImageSlot()
	if err != nil {
		if errors.Is(err, form.ErrImageLimit) {
			return "", ErrLimitReached
		}
		return "", err
	}

	url, err := u.post(ctx, f)
	if err != nil {
		h.ReleaseImageSlot(slot)
		u.logger.Warn("image upload failed", zap.String("file", f.Name), zap.Error(err))
		return "", err
	}
	if err := h.FillImageSlot(slot, url); err != nil {
		return "", err
	}

	u.logger.Info("image uploaded", zap.String("file", f.Name), zap.String("url", url))
	return url, nil
}

func (u *Uploader) post(ctx context.Context, f File) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	hdr.Set("Content-Type", f.ContentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", err
	}
	// f.Size is caller-supplied; the body is capped before anything is sent.
	n, err := io.Copy(part, io.LimitReader(f.Body, u.cfg.MaxBytes+1))
	if err != nil {
		return "", err
	}
	if n > u.cfg.MaxBytes {
		return "", ErrTooLarge
	}
	if err := mw.WriteField("upload_preset", u.cfg.Preset); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.cfg.Endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var reply uploadReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("decode upload reply: %w", err)
	}
	if reply.SecureURL == "" {
		return "", ErrMissingURL
	}
	return reply.SecureURL, nil
}

// Message localizes an Upload error for the customer.
func (u *Uploader) Message(tr *i18n.Translator, lang string, err error) string {
	switch {
	case errors.Is(err, ErrTooLarge):
		return tr.T(lang, "upload.too_large", map[string]interface{}{"MaxMB": u.cfg.MaxBytes >> 20})
	case errors.Is(err, ErrNotImage):
		return tr.T(lang, "upload.not_image", nil)
	case errors.Is(err, ErrLimitReached):
		return tr.T(lang, "upload.limit", map[string]interface{}{"Max": model.MaxImageURLs})
	}
	return tr.T(lang, "upload.failed", nil)
}
