package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/contractdesk-dev/contractdesk/db"
	"github.com/contractdesk-dev/contractdesk/internal/analysis"
	"github.com/contractdesk-dev/contractdesk/internal/auth"
	"github.com/contractdesk-dev/contractdesk/internal/handlers"
	"github.com/contractdesk-dev/contractdesk/internal/llm"
	"github.com/contractdesk-dev/contractdesk/internal/models"
	"github.com/contractdesk-dev/contractdesk/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func setupTest(t *testing.T) (*gin.Engine, *fakeLLM) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		t.Fatalf("init jwt secret: %v", err)
	}

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// A :memory: database exists per connection; keep the pool at one so
	// the schema and the pragma apply to every query.
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := testDB.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := testDB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Issue{},
		&models.Report{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = testDB

	fake := &fakeLLM{response: "generated"}
	handlers.Analysis = analysis.NewService(fake)

	return router.NewRouter(), fake
}

func authToken(t *testing.T, email string) (uint, string) {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, PasswordHash: "x"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return user.ID, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bridgeWorksBody() map[string]interface{} {
	return map[string]interface{}{
		"projectDetails": map[string]string{
			"projectName":        "Bridge Works",
			"projectDescription": "Overbridge replacement",
			"formOfContract":     "NEC4",
			"organizationRole":   "Contractor",
		},
		"issues": []map[string]string{
			{"description": "Late payment notice", "actionTaken": ""},
		},
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r, _ := setupTest(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/projects"},
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects?projectId=1"},
		{http.MethodDelete, "/api/projects?projectId=1"},
		{http.MethodGet, "/api/project?projectId=1"},
	} {
		w := doJSON(t, r, route.method, route.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestCreateAndGetProject(t *testing.T) {
	r, _ := setupTest(t)
	_, token := authToken(t, "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, bridgeWorksBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Message   string `json:"message"`
		ProjectID uint   `json:"projectId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ProjectID == 0 {
		t.Fatal("expected non-zero projectId")
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/project?projectId=%d", created.ProjectID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		ProjectDetails struct {
			ProjectName      string `json:"projectName"`
			FormOfContract   string `json:"formOfContract"`
			OrganizationRole string `json:"organizationRole"`
		} `json:"projectDetails"`
		Issues []struct {
			ID          uint   `json:"id"`
			Description string `json:"description"`
			ActionTaken string `json:"actionTaken"`
		} `json:"issues"`
		Report *string `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get response: %v", err)
	}

	if got.ProjectDetails.ProjectName != "Bridge Works" || got.ProjectDetails.FormOfContract != "NEC4" {
		t.Errorf("unexpected project details: %+v", got.ProjectDetails)
	}
	if len(got.Issues) != 1 || got.Issues[0].Description != "Late payment notice" || got.Issues[0].ActionTaken != "" {
		t.Errorf("unexpected issues: %+v", got.Issues)
	}
	if got.Report != nil {
		t.Errorf("expected null report, got %v", *got.Report)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	r, _ := setupTest(t)
	_, token := authToken(t, "owner@example.com")

	body := bridgeWorksBody()
	body["issues"] = []map[string]string{}

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty issues, got %d", w.Code)
	}
}

func TestListProjectsScopedToUser(t *testing.T) {
	r, _ := setupTest(t)
	_, ownerToken := authToken(t, "owner@example.com")
	_, otherToken := authToken(t, "other@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", ownerToken, bridgeWorksBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects", otherToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var got struct {
		Projects []models.Project `json:"projects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(got.Projects) != 0 {
		t.Errorf("expected empty list for other user, got %d projects", len(got.Projects))
	}
}

func TestUpdateRequiresProjectID(t *testing.T) {
	r, _ := setupTest(t)
	_, token := authToken(t, "owner@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/projects", token, bridgeWorksBody())
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without projectId, got %d", w.Code)
	}
}

func TestMutationOfForeignProject(t *testing.T) {
	r, _ := setupTest(t)
	_, ownerToken := authToken(t, "owner@example.com")
	_, otherToken := authToken(t, "other@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", ownerToken, bridgeWorksBody())
	var created struct {
		ProjectID uint `json:"projectId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	path := fmt.Sprintf("/api/projects?projectId=%d", created.ProjectID)

	w = doJSON(t, r, http.MethodPut, path, otherToken, bridgeWorksBody())
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign update: expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, path, otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign delete: expected 404, got %d", w.Code)
	}
}

func TestDeleteProject(t *testing.T) {
	r, _ := setupTest(t)
	_, token := authToken(t, "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, bridgeWorksBody())
	var created struct {
		ProjectID uint `json:"projectId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/projects?projectId=%d", created.ProjectID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/project?projectId=%d", created.ProjectID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestGenerateReport(t *testing.T) {
	r, fake := setupTest(t)
	fake.response = "Detailed clause analysis"

	body := map[string]interface{}{
		"projectDetails": bridgeWorksBody()["projectDetails"],
		"issues":         bridgeWorksBody()["issues"],
	}

	w := doJSON(t, r, http.MethodPost, "/api/generateReport", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		Report string `json:"report"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Report != "Detailed clause analysis" {
		t.Errorf("expected provider text verbatim, got %q", got.Report)
	}
}

func TestGenerateReportEmptyIssues(t *testing.T) {
	r, fake := setupTest(t)

	body := map[string]interface{}{
		"projectDetails": bridgeWorksBody()["projectDetails"],
		"issues":         []map[string]string{},
	}

	w := doJSON(t, r, http.MethodPost, "/api/generateReport", "", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty issues, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("provider called %d times on invalid input, expected 0", fake.calls)
	}
}

func TestGenerateReportMethodNotAllowed(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/generateReport", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET, got %d", w.Code)
	}
}

func TestGenerateDraftCommunication(t *testing.T) {
	r, fake := setupTest(t)
	fake.response = "Dear Sirs, further to our letter..."

	body := map[string]interface{}{
		"projectDetails": bridgeWorksBody()["projectDetails"],
		"issues":         bridgeWorksBody()["issues"],
		"report":         "The analysis determined clause 10.1 applies.",
	}

	w := doJSON(t, r, http.MethodPost, "/api/generateDraftCommunication", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got struct {
		DraftCommunication string `json:"draftCommunication"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.DraftCommunication == "" {
		t.Error("expected draft communication text")
	}
}

func TestGenerateDraftCommunicationMissingReport(t *testing.T) {
	r, fake := setupTest(t)

	body := map[string]interface{}{
		"projectDetails": bridgeWorksBody()["projectDetails"],
		"issues":         bridgeWorksBody()["issues"],
	}

	w := doJSON(t, r, http.MethodPost, "/api/generateDraftCommunication", "", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without report, got %d", w.Code)
	}
	if fake.calls != 0 {
		t.Errorf("provider called %d times on invalid input, expected 0", fake.calls)
	}
}

func TestGenerateFailureSurfacesGenerically(t *testing.T) {
	r, fake := setupTest(t)
	fake.err = fmt.Errorf("connection reset by provider")

	body := map[string]interface{}{
		"projectDetails": bridgeWorksBody()["projectDetails"],
		"issues":         bridgeWorksBody()["issues"],
	}

	w := doJSON(t, r, http.MethodPost, "/api/generateReport", "", body)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var got struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Error != "Failed to generate report" {
		t.Errorf("expected generic error message, got %q", got.Error)
	}
}

func TestAuthRegisterLoginMe(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" {
		t.Fatal("expected token in login response")
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	var logout struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &logout); err != nil {
		t.Fatalf("decode logout response: %v", err)
	}
	if logout.Message != "Logged out successfully" {
		t.Errorf("unexpected logout message %q", logout.Message)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("logout without token: expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad login: expected 400, got %d", w.Code)
	}
}
