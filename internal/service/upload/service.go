// Package upload validates signed-URL requests for identity-document
// images and derives the randomized storage keys the grants are issued
// against.
package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// Validation errors surfaced to the caller as 4xx responses.
var (
	// ErrUnsupportedType is returned for content types outside the image
	// allow-list.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrInvalidSide is returned when the document side is neither "front"
	// nor "back".
	ErrInvalidSide = errors.New("invalid document side")

	// ErrMissingKey is returned when a download is requested without a key.
	ErrMissingKey = errors.New("missing object key")
)

// allowedMIME maps each accepted content type to the extension used in the
// derived storage key.
var allowedMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

// Signer is the slice of the object-store client the service depends on.
type Signer interface {
	SignUpload(ctx context.Context, key, contentType, side string) (string, error)
	SignDownload(ctx context.Context, key string) (string, error)
}

// Grant is one issued upload credential: the presigned URL plus the key
// the caller must echo back in the enrollment submission. Grants are never
// stored; each is minted fresh per request.
type Grant struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// Service issues upload and download grants.
type Service struct {
	signer Signer
}

// NewService creates an upload service around the given signer.
func NewService(signer Signer) *Service {
	return &Service{signer: signer}
}

// IssueUpload validates the content type and side, derives a randomized
// key namespaced by side (dni/<side>/<hex>.<ext>), and returns a
// write-scoped grant for it.
func (s *Service) IssueUpload(ctx context.Context, contentType, side string) (*Grant, error) {
	ext, ok := allowedMIME[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if side != "front" && side != "back" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	key := fmt.Sprintf("dni/%s/%s.%s", side, randomHex(8), ext)

	uploadURL, err := s.signer.SignUpload(ctx, key, contentType, side)
	if err != nil {
		return nil, fmt.Errorf("sign upload: %w", err)
	}

	return &Grant{UploadURL: uploadURL, Key: key}, nil
}

// ResolveDownload returns a read-scoped signed URL for a previously issued
// key.
func (s *Service) ResolveDownload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrMissingKey
	}
	signed, err := s.signer.SignDownload(ctx, key)
	if err != nil {
		return "", fmt.Errorf("sign download: %w", err)
	}
	return signed, nil
}

// randomHex returns n random bytes hex-encoded. crypto/rand.Read only
// fails when the platform entropy source is broken, in which case there is
// nothing sensible to fall back to.
func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
