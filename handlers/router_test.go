package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripsplit-backend/config"
	"tripsplit-backend/database"
	"tripsplit-backend/routes"
)

// setupRouter wires the full router against a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	// Unique shared-cache DSN so the connection pool sees one database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	database.DB = db
	database.Redis = nil

	return routes.Setup(), db
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		// Raw token, no "Bearer " prefix
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func register(t *testing.T, r *gin.Engine, username, password string) {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, want 201", username, rec.Code)
	}
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: got status %d, want 200", username, rec.Code)
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &body)
	if body.Token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return body.Token
}

func createTrip(t *testing.T, r *gin.Engine, token, username, destination string) uint {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, "/api/users/"+username+"/trips", token, gin.H{
		"destination": destination,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create trip: got status %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var trip struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &trip)
	return trip.ID
}

func addPerson(t *testing.T, r *gin.Engine, token string, tripID uint, first, last string) uint {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/trips/%d/people", tripID), token, gin.H{
		"first_name": first,
		"last_name":  last,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add person: got status %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &body)
	return body.ID
}

func addExpense(t *testing.T, r *gin.Engine, token string, tripID, personID uint, name string, amount float64) uint {
	t.Helper()
	rec := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/trips/%d/expenses", tripID), token, gin.H{
		"name":      name,
		"amount":    amount,
		"person_id": personID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add expense: got status %d, want 201 (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		ID uint `json:"id"`
	}
	decodeBody(t, rec, &body)
	return body.ID
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, rec, &body)
	return body.Code
}
