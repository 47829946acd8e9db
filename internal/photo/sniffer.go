package photo

import (
	"bytes"
	"errors"
	"mime/multipart"
	"strings"
)

// Format is a supported contact-photo format.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatWEBP Format = "webp"
)

var ErrUnsupportedFormat = errors.New("unsupported photo format")

type Result struct {
	Format Format
	MIME   string
}

// Detect identifies the photo format from the first bytes of the file.
func Detect(head []byte) (Result, error) {
	if len(head) == 0 {
		return Result{}, ErrUnsupportedFormat
	}

	if isJPEG(head) {
		return Result{Format: FormatJPEG, MIME: "image/jpeg"}, nil
	}
	if isPNG(head) {
		return Result{Format: FormatPNG, MIME: "image/png"}, nil
	}
	if isGIF(head) {
		return Result{Format: FormatGIF, MIME: "image/gif"}, nil
	}
	if isWEBP(head) {
		return Result{Format: FormatWEBP, MIME: "image/webp"}, nil
	}

	return Result{}, ErrUnsupportedFormat
}

func isJPEG(head []byte) bool {
	return len(head) > 3 &&
		head[0] == 0xff &&
		head[1] == 0xd8 &&
		head[2] == 0xff
}

func isPNG(head []byte) bool {
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return len(head) >= len(pngMagic) && bytes.Equal(head[:len(pngMagic)], pngMagic)
}

func isGIF(head []byte) bool {
	return len(head) >= 6 && (bytes.Equal(head[:6], []byte("GIF87a")) || bytes.Equal(head[:6], []byte("GIF89a")))
}

func isWEBP(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WEBP"))
}

// DeclaredMIME returns the content type the upload declared, without
// parameters. Empty when the header is absent.
func DeclaredMIME(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	contentType := header.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}
