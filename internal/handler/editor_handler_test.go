package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hrdesk/review-api/internal/dto"
	"github.com/hrdesk/review-api/internal/middleware"
	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
	"github.com/hrdesk/review-api/pkg/export"
)

type fakeEditorSrv struct {
	snapshotResp *dto.SnapshotResponse
	snapshotErr  error
	lastRefresh  bool
	editsResp    *dto.BatchEditResponse
	editsErr     error
	lastActor    string
	pendingResp  *dto.PendingResponse
	resetCalled  bool
	commitResp   *models.CommitResult
	commitErr    error
	dataset      export.Dataset
	datasetErr   error
}

func (f *fakeEditorSrv) Snapshot(_ context.Context, actor string, refresh bool) (*dto.SnapshotResponse, error) {
	f.lastActor = actor
	f.lastRefresh = refresh
	return f.snapshotResp, f.snapshotErr
}

func (f *fakeEditorSrv) RecordEdits(_ context.Context, actor string, _ dto.BatchEditRequest) (*dto.BatchEditResponse, error) {
	f.lastActor = actor
	return f.editsResp, f.editsErr
}

func (f *fakeEditorSrv) Pending(actor string) *dto.PendingResponse {
	f.lastActor = actor
	return f.pendingResp
}

func (f *fakeEditorSrv) Reset(actor string) {
	f.lastActor = actor
	f.resetCalled = true
}

func (f *fakeEditorSrv) Commit(_ context.Context, actor string) (*models.CommitResult, error) {
	f.lastActor = actor
	return f.commitResp, f.commitErr
}

func (f *fakeEditorSrv) SnapshotDataset(_ context.Context, actor string) (export.Dataset, error) {
	f.lastActor = actor
	return f.dataset, f.datasetErr
}

func testContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if body != "" {
		c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "operator"})
	return c, rec
}

func TestEditorHandlerSnapshot(t *testing.T) {
	service := &fakeEditorSrv{snapshotResp: &dto.SnapshotResponse{}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees", "")
	handler.Snapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operator", service.lastActor)
	assert.False(t, service.lastRefresh)
}

func TestEditorHandlerSnapshotRefresh(t *testing.T) {
	service := &fakeEditorSrv{snapshotResp: &dto.SnapshotResponse{}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees?refresh=true", "")
	handler.Snapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.lastRefresh)
}

func TestEditorHandlerSnapshotUnavailable(t *testing.T) {
	service := &fakeEditorSrv{snapshotErr: appErrors.ErrStoreUnavailable}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees", "")
	handler.Snapshot(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, envelope.Error["code"])
}

func TestEditorHandlerRecordEditsInvalidPayload(t *testing.T) {
	handler := NewEditorHandler(&fakeEditorSrv{})

	c, rec := testContext(http.MethodPost, "/employees/edits", "{not json")
	handler.RecordEdits(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditorHandlerRecordEdits(t *testing.T) {
	service := &fakeEditorSrv{editsResp: &dto.BatchEditResponse{Accepted: 1}}
	handler := NewEditorHandler(service)

	body := `{"edits":[{"empId":101,"field":"salary","value":75000}]}`
	c, rec := testContext(http.MethodPost, "/employees/edits", body)
	handler.RecordEdits(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operator", service.lastActor)
}

func TestEditorHandlerPending(t *testing.T) {
	service := &fakeEditorSrv{pendingResp: &dto.PendingResponse{}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees/edits", "")
	handler.Pending(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditorHandlerReset(t *testing.T) {
	service := &fakeEditorSrv{}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodDelete, "/employees/edits", "")
	handler.Reset(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.resetCalled)
}

func TestEditorHandlerCommit(t *testing.T) {
	service := &fakeEditorSrv{commitResp: &models.CommitResult{AppliedCount: 2, Message: "2 record(s) updated"}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodPost, "/employees/commit", "")
	handler.Commit(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "2 record(s) updated", envelope.Data["message"])
}

func TestEditorHandlerCommitConflict(t *testing.T) {
	service := &fakeEditorSrv{commitErr: appErrors.ErrPartialFailure}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodPost, "/employees/commit", "")
	handler.Commit(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEditorHandlerExportCSV(t *testing.T) {
	service := &fakeEditorSrv{dataset: export.Dataset{
		Headers: []string{"emp_id", "emp_name"},
		Rows:    []map[string]string{{"emp_id": "101", "emp_name": "Asha"}},
	}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees/export.csv", "")
	handler.ExportCSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "emp_id,emp_name")
	assert.Contains(t, rec.Body.String(), "101,Asha")
}

func TestEditorHandlerExportPDF(t *testing.T) {
	service := &fakeEditorSrv{dataset: export.Dataset{
		Headers: []string{"emp_id"},
		Rows:    []map[string]string{{"emp_id": "101"}},
	}}
	handler := NewEditorHandler(service)

	c, rec := testContext(http.MethodGet, "/employees/export.pdf", "")
	handler.ExportPDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}
