package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"residual-hub.backend/internal/usecases"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// pipelineFixture wires the full handler stack over in-memory stubs
type pipelineFixture struct {
	merchantRepo   *merchantRepoStub
	recordRepo     *recordRepoStub
	roleRepo       *roleRepoStub
	assignmentRepo *assignmentRepoStub
	issueRepo      *issueRepoStub

	metricsUsecase *usecases.MetricsUsecase

	uploadHandler     *UploadHandler
	assignmentHandler *AssignmentHandler
	auditHandler      *AuditHandler
	reportHandler     *ReportHandler
	merchantHandler   *MerchantHandler

	router *gin.Engine
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		merchantRepo:   newMerchantRepoStub(),
		recordRepo:     &recordRepoStub{},
		roleRepo:       newRoleRepoStub(),
		assignmentRepo: newAssignmentRepoStub(),
		issueRepo:      newIssueRepoStub(),
	}

	rules, err := usecases.LoadRuleConfig(5000, "clearent", "jv")
	require.NoError(t, err)

	uow := uowStub{}
	uploadUsecase := usecases.NewUploadUsecase(f.recordRepo, f.merchantRepo, uow)
	assignmentUsecase := usecases.NewAssignmentUsecase(f.recordRepo, f.roleRepo, f.assignmentRepo, uow, rules)
	auditUsecase := usecases.NewAuditUsecase(f.recordRepo, f.assignmentRepo, f.merchantRepo, f.issueRepo, uow)
	f.metricsUsecase = usecases.NewMetricsUsecase(f.recordRepo, 5)

	f.uploadHandler = NewUploadHandler(uploadUsecase)
	f.assignmentHandler = NewAssignmentHandler(assignmentUsecase, f.assignmentRepo)
	f.auditHandler = NewAuditHandler(auditUsecase)
	f.reportHandler = NewReportHandler(f.metricsUsecase, nil)
	f.merchantHandler = NewMerchantHandler(f.merchantRepo)

	f.rebuildRouter()
	return f
}

// rebuildRouter re-registers the routes, picking up any handler a test
// swapped in after construction.
func (f *pipelineFixture) rebuildRouter() {
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/uploads", f.uploadHandler.Upload)
	v1.POST("/assignments/resolve", f.assignmentHandler.Resolve)
	v1.GET("/assignments", f.assignmentHandler.List)
	v1.POST("/audits/run", f.auditHandler.Run)
	v1.PUT("/audit-issues/:id/resolve", f.auditHandler.ResolveIssue)
	v1.GET("/audit-issues", f.auditHandler.ListIssues)
	v1.GET("/reports/monthly", f.reportHandler.Monthly)
	v1.GET("/merchants", f.merchantHandler.List)
	v1.GET("/merchants/:merchantId", f.merchantHandler.Get)
	f.router = r
}

func (f *pipelineFixture) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *pipelineFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *pipelineFixture) put(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// uploadMonth loads a clean batch for the given processor and month
func (f *pipelineFixture) uploadMonth(t *testing.T, processor, month string, rows []map[string]string) {
	t.Helper()
	w := f.postJSON(t, "/api/v1/uploads", gin.H{
		"processorName": processor,
		"month":         month,
		"rows":          rows,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	require.Equal(t, true, body["accepted"], w.Body.String())
}
