package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/broker"
	"github.com/supercpe/cpe-tracker/internal/export"
	"github.com/supercpe/cpe-tracker/internal/pipeline"
	"github.com/supercpe/cpe-tracker/internal/repository"
)

// memoryRepo is an in-memory SubmissionRepository for handler tests.
type memoryRepo struct {
	subs []repository.Submission
}

func (m *memoryRepo) Record(_ context.Context, sub repository.Submission) (uuid.UUID, error) {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	sub.CreatedAt = time.Now().UTC()
	m.subs = append(m.subs, sub)
	return sub.ID, nil
}

func (m *memoryRepo) FindByHash(_ context.Context, contentSHA string) (*repository.Submission, error) {
	for i := range m.subs {
		if m.subs[i].ContentSHA == contentSHA {
			return &m.subs[i], nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) List(_ context.Context, limit int) ([]repository.Submission, error) {
	if limit <= 0 || limit > len(m.subs) {
		limit = len(m.subs)
	}
	return m.subs[:limit], nil
}

func (m *memoryRepo) SetStatus(_ context.Context, id uuid.UUID, status constants.SubmissionStatus) error {
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs[i].Status = status
			return nil
		}
	}
	return nil
}

func testService(repo repository.SubmissionRepository) *Service {
	cfg := pipeline.DefaultConfig()
	cfg.Validator.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	}
	return NewService(
		nil,
		pipeline.New(cfg, nil),
		broker.NewBuilder(nil),
		broker.Context{OrganizationID: "4641", FormVersion: "2024.1"},
		export.NewService(nil),
		repo,
	)
}

var extractBody = map[string]any{
	"filename": "cert.pdf",
	"segments": []string{
		"Course Name: Debt: Selected Debt Related Issues",
		"Course Code: M116-2025-01-SSDL",
		"Field of Study: Taxes",
		"CPE Credits: 2.0",
		"Completion Date: 2025-06-06",
	},
}

func postExtract(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleExtractVerified(t *testing.T) {
	t.Parallel()

	rr := postExtract(t, testService(nil).Router(), extractBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}

	var resp struct {
		DocumentID string          `json:"document_id"`
		Record     json.RawMessage `json:"record"`
		Issues     []any           `json:"issues"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DocumentID == "" || len(resp.Record) == 0 {
		t.Fatalf("response = %s", rr.Body)
	}
	if len(resp.Issues) != 0 {
		t.Fatalf("issues = %v", resp.Issues)
	}
}

func TestHandleExtractBuildsPayload(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	body := map[string]any{}
	for k, v := range extractBody {
		body[k] = v
	}
	body["build_payload"] = true
	body["content_sha"] = strings.Repeat("ab", 32)

	rr := postExtract(t, testService(repo).Router(), body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}

	var resp struct {
		Payload *struct {
			Category       string `json:"category"`
			CompletionDate string `json:"completion_date"`
			Hours          string `json:"hours"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Payload == nil {
		t.Fatalf("no payload in response: %s", rr.Body)
	}
	if resp.Payload.CompletionDate != "06/06/2025" || resp.Payload.Hours != "2.0" {
		t.Errorf("payload = %+v", resp.Payload)
	}

	// the submission landed in history as READY
	if len(repo.subs) != 1 || repo.subs[0].Status != constants.SubmissionStatusReady {
		t.Fatalf("history = %+v", repo.subs)
	}
}

func TestHandleExtractDuplicate(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	body := map[string]any{}
	for k, v := range extractBody {
		body[k] = v
	}
	body["build_payload"] = true
	body["content_sha"] = strings.Repeat("cd", 32)

	router := testService(repo).Router()
	if rr := postExtract(t, router, body); rr.Code != http.StatusOK {
		t.Fatalf("first extract status = %d", rr.Code)
	}
	rr := postExtract(t, router, body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second extract status = %d, want 409", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), string(constants.SubmissionStatusDuplicate)) {
		t.Errorf("body = %s", rr.Body)
	}
}

func TestHandleExtractBlocked(t *testing.T) {
	t.Parallel()

	rr := postExtract(t, testService(nil).Router(), map[string]any{
		"filename": "cert.pdf",
		"segments": []string{"Course Name: Something", "Credits: 2.0"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}
	var resp struct {
		Issues []struct {
			Field string `json:"field"`
			Kind  string `json:"kind"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Issues) == 0 {
		t.Fatalf("no issues in response: %s", rr.Body)
	}
}

func TestHandleExtractBadRequests(t *testing.T) {
	t.Parallel()

	router := testService(nil).Router()

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("malformed JSON status = %d", rr.Code)
	}

	// filename and at least one segment are required
	if rr := postExtract(t, router, map[string]any{"segments": []string{"x"}}); rr.Code != http.StatusBadRequest {
		t.Errorf("missing filename status = %d", rr.Code)
	}
	if rr := postExtract(t, router, map[string]any{"filename": "a.pdf", "segments": []string{}}); rr.Code != http.StatusBadRequest {
		t.Errorf("empty segments status = %d", rr.Code)
	}
}

func TestHandleConfigIncomplete(t *testing.T) {
	t.Parallel()

	cfg := pipeline.DefaultConfig()
	cfg.Validator.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	}
	svc := NewService(nil, pipeline.New(cfg, nil), broker.NewBuilder(nil),
		broker.Context{}, export.NewService(nil), nil)

	body := map[string]any{}
	for k, v := range extractBody {
		body[k] = v
	}
	body["build_payload"] = true

	rr := postExtract(t, svc.Router(), body)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "CONFIG_INCOMPLETE") {
		t.Errorf("body = %s", rr.Body)
	}
}

func TestHandleHealthAndCategories(t *testing.T) {
	t.Parallel()

	router := testService(nil).Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("categories status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), string(constants.Taxes)) {
		t.Errorf("body = %s", rr.Body)
	}
}

func TestHandleSubmissionsWithoutDatabase(t *testing.T) {
	t.Parallel()

	router := testService(nil).Router()
	for _, path := range []string{"/v1/submissions", "/v1/export.xlsx"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s status = %d, want 404", path, rr.Code)
		}
	}
}

func TestHandleExportXLSX(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	body := map[string]any{}
	for k, v := range extractBody {
		body[k] = v
	}
	body["build_payload"] = true
	router := testService(repo).Router()
	if rr := postExtract(t, router, body); rr.Code != http.StatusOK {
		t.Fatalf("extract status = %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/export.xlsx", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	if rr.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
