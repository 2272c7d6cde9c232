package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
)

// ValidationMessages turns validator errors into messages for the form.
func ValidationMessages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, len(validationErrors))
	for i, ve := range validationErrors {
		messages[i] = "Field '" + ve.Field() + "' failed validation tag '" + ve.Tag() + "'"
	}

	return messages
}

// ReadFile reads an uploaded multipart file.
func ReadFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(f)
}
