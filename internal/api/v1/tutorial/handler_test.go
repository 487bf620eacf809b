package tutorial_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"drawing-tutor-backend/config"
	"drawing-tutor-backend/internal/api/v1/tutorial"
	"drawing-tutor-backend/internal/database"
	"drawing-tutor-backend/internal/models"
	"drawing-tutor-backend/internal/services"
	"drawing-tutor-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *database.Store {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.Tutorial{})
	if err := db.AutoMigrate(&models.Tutorial{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return database.NewStore(db)
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()

	cfg := &config.Config{
		UploadDir:        filepath.Join(dir, "uploads"),
		TutorialDir:      filepath.Join(dir, "tutorials"),
		GridTemplatePath: filepath.Join(dir, "grid_template.png"),
		MaxUploadSize:    5 * 1024 * 1024,
	}

	if err := os.WriteFile(cfg.GridTemplatePath, testPNG(t), 0o644); err != nil {
		t.Fatalf("failed to write grid template: %v", err)
	}
	return cfg
}

func testPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

type stubModelClient struct {
	Subject string
}

func (s *stubModelClient) ExtractSubject(ctx context.Context, imageBytes []byte, apiKeyOverride string) (string, error) {
	return s.Subject, nil
}

func (s *stubModelClient) GenerateTutorialImage(ctx context.Context, prompt string, gridBytes []byte, model, apiKeyOverride string) ([]byte, string, error) {
	return []byte("generated image"), "tutorial_stub.png", nil
}

func newTestHandler(t *testing.T, store *database.Store) (*tutorial.Handler, *config.Config) {
	cfg := testConfig(t)
	database.RedisClient = nil
	service := services.NewTutorialService(store, &stubModelClient{Subject: "a red fox"}, cfg)
	return tutorial.NewHandler(service, cfg.MaxUploadSize), cfg
}

func postJSON(handler func(*gin.Context), body interface{}) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/tutorials/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)
	return w
}

func TestGenerateTutorialValidation(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedDetail string
	}{
		{
			name:           "topic input without topic",
			body:           map[string]interface{}{"input_type": "topic"},
			expectedDetail: "Topic is required for topic input type",
		},
		{
			name:           "image input without image",
			body:           map[string]interface{}{"input_type": "image"},
			expectedDetail: "Image is required for image input type",
		},
		{
			name:           "image not base64",
			body:           map[string]interface{}{"input_type": "image", "image": "not-base64!!!"},
			expectedDetail: "Image must be valid base64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(handler.GenerateTutorial, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			json.Unmarshal(w.Body.Bytes(), &resp)
			assert.Equal(t, tt.expectedDetail, resp["detail"])
		})
	}

	// Unknown input_type fails binding
	w := postJSON(handler.GenerateTutorial, map[string]interface{}{"input_type": "video"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(handler.GenerateTutorial, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTutorialSizeBoundary(t *testing.T) {
	store := setupTestDB(t)
	cfg := testConfig(t)
	database.RedisClient = nil
	service := services.NewTutorialService(store, &stubModelClient{Subject: "a red fox"}, cfg)

	imageBytes := testPNG(t)
	body := map[string]interface{}{
		"input_type": "image",
		"image":      base64.StdEncoding.EncodeToString(imageBytes),
	}

	// Exactly at the ceiling: accepted
	handler := tutorial.NewHandler(service, int64(len(imageBytes)))
	w := postJSON(handler.GenerateTutorial, body)
	assert.Equal(t, http.StatusOK, w.Code)

	// One byte over: rejected
	handler = tutorial.NewHandler(service, int64(len(imageBytes))-1)
	w = postJSON(handler.GenerateTutorial, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateTutorialTopicSuccess(t *testing.T) {
	store := setupTestDB(t)
	handler, _ := newTestHandler(t, store)

	w := postJSON(handler.GenerateTutorial, map[string]interface{}{
		"input_type": "topic",
		"topic":      "a sleeping cat",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tutorial.TutorialResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TutorialID)
	assert.Equal(t, "a sleeping cat", resp.Subject)
	assert.Contains(t, resp.TutorialImageURL, "/static/tutorials/")
	assert.Len(t, resp.Steps, 4)
	for i, step := range resp.Steps {
		assert.Equal(t, i+1, step.StepNumber)
	}
}

func TestGenerateTutorialDegradedStore(t *testing.T) {
	handler, _ := newTestHandler(t, database.NewStore(nil))

	w := postJSON(handler.GenerateTutorial, map[string]interface{}{
		"input_type": "topic",
		"topic":      "bowl of fruit",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tutorial.TutorialResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.TutorialID)
	assert.Len(t, resp.Steps, 4)
}

func getRequest(handler func(*gin.Context), target string, params gin.Params) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, _ := http.NewRequest("GET", target, nil)
	c.Request = req
	c.Params = params

	handler(c)
	return w
}

func TestGetTutorialsValidation(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	badQueries := []string{
		"?page=0",
		"?page=abc",
		"?limit=0",
		"?limit=51",
		"?limit=abc",
	}
	for _, q := range badQueries {
		w := getRequest(handler.GetTutorials, "/api/tutorials"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
}

func TestGetTutorialsPagination(t *testing.T) {
	store := setupTestDB(t)
	handler, _ := newTestHandler(t, store)

	for i := 0; i < 3; i++ {
		w := postJSON(handler.GenerateTutorial, map[string]interface{}{
			"input_type": "topic",
			"topic":      fmt.Sprintf("subject %d", i),
		})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := getRequest(handler.GetTutorials, "/api/tutorials?page=1&limit=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tutorial.TutorialListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 2, resp.Pages)
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Tutorials, 2)

	// Past the last page
	w = getRequest(handler.GetTutorials, "/api/tutorials?page=5&limit=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Tutorials, 0)
}

func TestGetTutorialsDegradedStore(t *testing.T) {
	handler, _ := newTestHandler(t, database.NewStore(nil))

	w := getRequest(handler.GetTutorials, "/api/tutorials?page=2&limit=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tutorial.TutorialListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Total)
	assert.Equal(t, 0, resp.Pages)
	assert.Equal(t, 2, resp.Page)
	assert.Len(t, resp.Tutorials, 0)
}

func TestGetTutorialByID(t *testing.T) {
	store := setupTestDB(t)
	handler, _ := newTestHandler(t, store)

	w := postJSON(handler.GenerateTutorial, map[string]interface{}{
		"input_type": "topic",
		"topic":      "vintage car",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var created tutorial.TutorialResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = getRequest(handler.GetTutorial, "/api/tutorials/"+created.TutorialID,
		gin.Params{{Key: "id", Value: created.TutorialID}})
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched tutorial.TutorialResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.Subject, fetched.Subject)
	assert.Equal(t, created.TutorialImageURL, fetched.TutorialImageURL)
	assert.Equal(t, created.Steps, fetched.Steps)
}

func TestGetTutorialNotFound(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	w := getRequest(handler.GetTutorial, "/api/tutorials/missing",
		gin.Params{{Key: "id", Value: "missing"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Tutorial not found", resp["detail"])
}

func multipartUpload(t *testing.T, contentType string, content []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func postUpload(handler func(*gin.Context), body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, _ := http.NewRequest("POST", "/api/tutorials/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler(c)
	return w
}

func TestUploadImage(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	imageBytes := testPNG(t)
	body, contentType := multipartUpload(t, "image/png", imageBytes)

	w := postUpload(handler.UploadImage, body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tutorial.UploadImageResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	decoded, err := base64.StdEncoding.DecodeString(resp.Image)
	assert.NoError(t, err)
	assert.Equal(t, imageBytes, decoded)
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	// Declared type is wrong
	body, contentType := multipartUpload(t, "text/plain", []byte("hello"))
	w := postUpload(handler.UploadImage, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Declared type lies about the content
	body, contentType = multipartUpload(t, "image/png", []byte("plain text pretending"))
	w = postUpload(handler.UploadImage, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageSizeBoundary(t *testing.T) {
	store := setupTestDB(t)
	cfg := testConfig(t)
	database.RedisClient = nil
	service := services.NewTutorialService(store, &stubModelClient{}, cfg)

	imageBytes := testPNG(t)

	handler := tutorial.NewHandler(service, int64(len(imageBytes)))
	body, contentType := multipartUpload(t, "image/png", imageBytes)
	w := postUpload(handler.UploadImage, body, contentType)
	assert.Equal(t, http.StatusOK, w.Code)

	handler = tutorial.NewHandler(service, int64(len(imageBytes))-1)
	body, contentType = multipartUpload(t, "image/png", imageBytes)
	w = postUpload(handler.UploadImage, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageMissingFile(t *testing.T) {
	handler, _ := newTestHandler(t, setupTestDB(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("POST", "/api/tutorials/upload-image", nil)
	c.Request = req

	handler.UploadImage(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
