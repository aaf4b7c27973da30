package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/m-wu/order-reports/internal/config"
)

const testExport = "Name,Fulfillment Status,Shipping Name,Shipping Phone,Notes,Taxes,Shipping,Total,Lineitem name,Lineitem price,Lineitem quantity,Shipping Method,Shipping Street,Shipping City\n" +
	"#1001,fulfilled,张三,4251234567,不要辣,1.00,2.00,13.00,酸辣粉 Hot and Sour Noodles,5.00,2,Standard,500 Pine St,Seattle\n"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	schedulePath := filepath.Join(dir, "weekly_schedule.tsv")
	pickupPath := filepath.Join(dir, "pickup_locations.csv")
	if err := os.WriteFile(schedulePath, []byte("City\tSaturday\nSeattle\tEdmonds\n"), 0644); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	if err := os.WriteFile(pickupPath, []byte("pickup_shipping_method,branch,street_address,city\n"), 0644); err != nil {
		t.Fatalf("seed pickups: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Data.SchedulePath = schedulePath
	cfg.Data.PickupPath = pickupPath
	cfg.Data.OutputDir = filepath.Join(dir, "output")
	cfg.Data.Archive = false

	router := gin.New()
	NewHandler(cfg, nil).RegisterRoutes(router.Group("/api"))
	return router
}

func multipartExport(t *testing.T, weekday string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "orders_export_0418.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(testExport)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.WriteField("weekday", weekday); err != nil {
		t.Fatalf("write weekday: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
}

func TestProcess_Upload(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	body, contentType := multipartExport(t, "Saturday")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d: %s", w.Code, w.Body.String())
	}

	var summary struct {
		OrderCount int      `json:"order_count"`
		RowCount   int      `json:"row_count"`
		Warnings   []string `json:"warnings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	if summary.OrderCount != 1 || summary.RowCount != 1 {
		t.Fatalf("counts want 1/1 got %d/%d", summary.OrderCount, summary.RowCount)
	}
	if len(summary.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", summary.Warnings)
	}
}

func TestProcess_InvalidWeekday(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	body, contentType := multipartExport(t, "Caturday")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestProcess_MissingFile(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/process", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}
