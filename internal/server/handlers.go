package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/broker"
	"github.com/supercpe/cpe-tracker/internal/entity"
	"github.com/supercpe/cpe-tracker/internal/repository"
)

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  s.submissions != nil,
	})
}

func (s *Service) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"fields_of_study": constants.FieldsOfStudyStrings(),
	})
}

// extractRequest is the upload layer's hand-off: OCR has already happened,
// segments are the raw text blocks it produced.
type extractRequest struct {
	Filename     string   `json:"filename" validate:"required"`
	ContentSHA   string   `json:"content_sha"`
	Segments     []string `json:"segments" validate:"required,min=1"`
	BuildPayload bool     `json:"build_payload"`
}

type extractResponse struct {
	DocumentID string                   `json:"document_id"`
	Filename   string                   `json:"filename"`
	Record     *entity.VerifiedRecord   `json:"record,omitempty"`
	Payload    *entity.BrokerPayload    `json:"payload,omitempty"`
	Issues     []entity.ValidationIssue `json:"issues,omitempty"`
}

func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	if s.submissions != nil && req.ContentSHA != "" {
		existing, err := s.submissions.FindByHash(ctx, req.ContentSHA)
		if err != nil {
			s.logger.Error("extract.dedupe.failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "submission history unavailable")
			return
		}
		if existing != nil {
			s.writeJSON(w, http.StatusConflict, map[string]any{
				"status":        string(constants.SubmissionStatusDuplicate),
				"submission_id": existing.ID,
				"filename":      existing.Filename,
			})
			return
		}
	}

	doc := entity.NewDocument(req.Filename)
	doc.ContentSHA = req.ContentSHA

	record, issues := s.pipeline.Extract(doc, req.Segments)
	if len(issues) > 0 {
		s.writeJSON(w, http.StatusUnprocessableEntity, extractResponse{
			DocumentID: doc.ID.String(),
			Filename:   doc.Filename,
			Issues:     issues,
		})
		return
	}

	resp := extractResponse{
		DocumentID: doc.ID.String(),
		Filename:   doc.Filename,
		Record:     record,
	}

	if req.BuildPayload {
		brokerCtx := s.brokerCtx
		brokerCtx.CertificateFilename = doc.Filename
		payload, err := s.builder.Build(*record, brokerCtx)
		if err != nil {
			if errors.Is(err, broker.ErrConfigIncomplete) {
				s.logger.Error("extract.payload.config", "error", err)
				s.writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			s.logger.Error("extract.payload.failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "payload build failed")
			return
		}
		resp.Payload = &payload

		if s.submissions != nil {
			if _, err := s.submissions.Record(ctx, repository.Submission{
				DocumentID:     doc.ID,
				Filename:       doc.Filename,
				ContentSHA:     doc.ContentSHA,
				Status:         constants.SubmissionStatusReady,
				Payload:        payload,
				CompletionDate: record.CompletionDate,
			}); err != nil {
				s.logger.Error("extract.history.failed", "error", err)
				s.writeError(w, http.StatusInternalServerError, "failed to record submission")
				return
			}
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	if s.submissions == nil {
		s.writeError(w, http.StatusNotFound, "submission history is not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	subs, err := s.submissions.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("submissions.list.failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func (s *Service) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if s.submissions == nil {
		s.writeError(w, http.StatusNotFound, "submission history is not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	subs, err := s.submissions.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("export.list.failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}

	payloads := make([]entity.BrokerPayload, len(subs))
	for i, sub := range subs {
		payloads[i] = sub.Payload
	}
	data, err := s.exporter.BrokerWorksheetXLSX(payloads)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to build worksheet")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ce-broker-worksheet.xlsx"`)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("export.xlsx.write", "error", err)
	}
}
