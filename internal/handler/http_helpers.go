package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"
)

const (
	// multipartSlack covers form fields and part headers on top of the file.
	multipartSlack int64 = 1 << 20
	maxMemory      int64 = 32 << 20
)

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps err to its status code. Internal errors are logged and
// their cause is not exposed.
func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		logger.Error("Unhandled error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if appErr.Type == apperrors.ErrorTypeInternal {
		logger.Error("Request failed", err)
		writeJSON(w, appErr.StatusCode, map[string]string{"error": appErr.Message, "type": string(appErr.Type)})
		return
	}
	body := map[string]string{"error": appErr.UserMessage(), "type": string(appErr.Type)}
	writeJSON(w, appErr.StatusCode, body)
}

// limitBody caps the request body so multipart parsing cannot exceed the
// upload limit.
func limitBody(w http.ResponseWriter, r *http.Request, maxFileSize int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+multipartSlack)
}

// parseForm parses multipart and urlencoded bodies alike.
func parseForm(r *http.Request, maxFileSize int64) error {
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		appErr := apperrors.NewTooLargeError("File too large", maxFileSize)
		appErr.Cause = domain.ErrFileTooLarge
		return appErr
	}
	return apperrors.NewValidationError("Invalid form data", err.Error())
}

// readUpload reads the "file" part of an already parsed multipart form.
// Only .pdf files up to maxFileSize bytes are accepted.
func readUpload(r *http.Request, maxFileSize int64) (*domain.UploadedFile, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		missing := apperrors.NewValidationError("File is required", `send the PDF in the "file" form field`)
		missing.Cause = domain.ErrFileRequired
		return nil, missing
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	name := strings.TrimSpace(filepath.Base(header.Filename))
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		invalid := apperrors.NewValidationError("Unsupported file type", "only PDF (.pdf) files are accepted")
		invalid.Cause = domain.ErrInvalidFile
		return nil, invalid
	}

	tooLarge := apperrors.NewTooLargeError("File too large", maxFileSize)
	tooLarge.Cause = domain.ErrFileTooLarge
	if header.Size > maxFileSize {
		return nil, tooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxFileSize+1))
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to read file", err.Error())
	}
	if int64(len(data)) > maxFileSize {
		return nil, tooLarge
	}
	return &domain.UploadedFile{Filename: name, Data: data}, nil
}

// parseRenderParameters reads the settings fields, falling back to defaults
// for fields that are absent.
func parseRenderParameters(r *http.Request, defaults domain.RenderParameters) (domain.RenderParameters, error) {
	params := defaults
	ints := []struct {
		field string
		dst   *int
	}{
		{"max_words", &params.MaxWords},
		{"width", &params.Width},
		{"height", &params.Height},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(r.FormValue(f.field))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return params, &domain.ValidationError{Field: f.field, Message: "must be an integer"}
		}
		*f.dst = n
	}

	if raw := r.FormValue("background"); raw != "" {
		bg, err := domain.ParseBackgroundColor(raw)
		if err != nil {
			return params, err
		}
		params.Background = bg
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}

func formBool(r *http.Request, field string) bool {
	b, _ := strconv.ParseBool(r.FormValue(field))
	return b
}
