package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bumblebee/internal/filetype"
	"bumblebee/pkg/types"
)

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"message": message})
}

func (s *Service) badRequest(w http.ResponseWriter, message string) {
	s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

func (s *Service) notFound(w http.ResponseWriter, message string) {
	s.respondJSON(w, http.StatusNotFound, map[string]string{"error": message})
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// respondStoreError maps the store's sentinel not-found errors to 404 and
// everything else to a logged 500 with a generic body.
func (s *Service) respondStoreError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrCompanyNotFound),
		errors.Is(err, types.ErrFundingRequestNotFound),
		errors.Is(err, types.ErrDocumentNotFound),
		errors.Is(err, types.ErrDonationNotFound),
		errors.Is(err, types.ErrAttachmentNotFound):
		s.notFound(w, err.Error())
	default:
		s.logger.WithError(err).Error(context)
		s.internalServerError(w)
	}
}

// serveFile writes a stored payload back to the client. The content type
// always comes from sniffing the payload bytes; the declared type is only a
// hint and loses to the signature check. Filenames without an extension get
// the sniffed one appended.
func (s *Service) serveFile(w http.ResponseWriter, content []byte, fileName, declaredType string) {
	detected := filetype.Detect(content)

	contentType := detected.ContentType
	if detected == filetype.Binary && declaredType != "" {
		contentType = declaredType
	}

	if !strings.Contains(fileName, ".") {
		fileName += detected.Extension
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		s.logger.WithError(err).Error("failed to write file response")
	}
}

// pathID parses the named route parameter as an integer identity.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
