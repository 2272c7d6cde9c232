// Package upload turns an uploaded file into analyzable content.
package upload

import (
	"encoding/base64"
	"errors"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/brandalign/brandalign/internal/governance"
)

const (
	// FormatWarning is shown for files the model can not read.
	FormatWarning = "For deep analysis, please upload a PDF version or paste the text content directly. " +
		"The AI cannot natively read .docx or .pptx files yet."
	// ConvertMessage is shown when an unreadable file is submitted for analysis.
	ConvertMessage = "Please convert this file to PDF or paste the text content to proceed."

	mimePDF         = "application/pdf"
	mimeOctetStream = "application/octet-stream"
)

var (
	// ErrEmptyFile is returned for zero byte uploads.
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrFileTooLarge is returned when the upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("uploaded file is too large")
	// ErrUnsupportedFormat is returned when a file without readable content is submitted.
	ErrUnsupportedFormat = errors.New(ConvertMessage)
	// ErrNothingToAnalyze is returned when neither text nor a file was given.
	ErrNothingToAnalyze = errors.New("nothing to analyze")
)

// binary formats the model reads natively.
var supportedBinaryTypes = []string{ //nolint:gochecknoglobals
	mimePDF,
	"image/png", "image/jpeg", "image/webp",
	"audio/mpeg", "audio/wav", "audio/mp3", "audio/x-m4a",
	"video/mp4", "video/mpeg", "video/quicktime",
}

var textExtensions = map[string]bool{"txt": true, "md": true, "csv": true, "json": true} //nolint:gochecknoglobals

// Kind is how an upload is handled.
type Kind int

// Kind values.
const (
	// KindBinary files are sent inline to the model.
	KindBinary Kind = iota
	// KindText files become the text input.
	KindText
	// KindUnsupported files carry no readable content.
	KindUnsupported
)

// Result is the outcome of Intake.
type Result struct {
	Kind      Kind
	AssetType governance.AssetType
	MIMEType  string
	Data      []byte
	Text      string
}

// AssetTypeForExtension maps a file extension to the asset type it most likely is.
func AssetTypeForExtension(filename string) governance.AssetType {
	switch extension(filename) {
	case "jpg", "jpeg", "png", "webp", "gif":
		return governance.AssetImage
	case "mp4", "mov", "avi", "webm":
		return governance.AssetVideo
	case "ppt", "pptx", "key":
		return governance.AssetPresentation
	case "mp3", "wav", "m4a":
		return governance.AssetPodcast
	default:
		return governance.AssetDocument
	}
}

// Intake classifies an uploaded file. declaredMIME is the content type sent by the
// client, when it is missing the type is sniffed from the content.
// maxSize of zero disables the size check.
func Intake(filename, declaredMIME string, data []byte, maxSize int64) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyFile
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return Result{}, ErrFileTooLarge
	}

	ext := extension(filename)
	mimeType := declaredMIME

	if mimeType == "" || mimeType == mimeOctetStream {
		mimeType = mimetype.Detect(data).String()
	}

	res := Result{
		AssetType: AssetTypeForExtension(filename),
		MIMEType:  baseType(mimeType),
	}

	switch {
	case isSupportedBinary(mimeType) || ext == "pdf":
		res.Kind = KindBinary
		res.Data = data

		if ext == "pdf" && !isSupportedBinary(mimeType) {
			res.MIMEType = mimePDF
		}
	case strings.HasPrefix(mimeType, "text/") || textExtensions[ext]:
		res.Kind = KindText
		res.Text = toValidUTF8(data)
	default:
		res.Kind = KindUnsupported
	}

	return res, nil
}

// Apply stores the intake result in the upload draft.
// The draft keeps its purpose, region and context, the file related fields are replaced.
func Apply(state *governance.UploadState, filename string, res Result) {
	state.Filename = filename
	state.AssetType = res.AssetType
	state.MIMEType = res.MIMEType
	state.TextInput = ""
	state.FileBase64 = ""
	state.FormatWarning = ""
	state.DetectedConfidence = 0

	switch res.Kind {
	case KindBinary:
		state.FileBase64 = base64.StdEncoding.EncodeToString(res.Data)
	case KindText:
		state.TextInput = res.Text
	case KindUnsupported:
		state.FormatWarning = FormatWarning
	}
}

// Content builds the analysis content of a draft.
func Content(state *governance.UploadState) (governance.Content, error) {
	c := governance.Content{Text: state.TextInput}

	if state.FileBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(state.FileBase64)
		if err != nil {
			return c, err
		}

		c.Data = data
		c.MIMEType = state.MIMEType
	}

	if c.Empty() {
		if state.Filename != "" {
			return c, ErrUnsupportedFormat
		}

		return c, ErrNothingToAnalyze
	}

	return c, nil
}

func isSupportedBinary(mimeType string) bool {
	for _, t := range supportedBinaryTypes {
		if strings.Contains(mimeType, t) {
			return true
		}
	}

	return false
}

func extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

func baseType(mimeType string) string {
	if t, _, err := mime.ParseMediaType(mimeType); err == nil {
		return t
	}

	return mimeType
}

func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strings.ToValidUTF8(string(data), "�")
}
