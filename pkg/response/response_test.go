package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"title": "Projekt"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		code    int
		message string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "invalid input") }, 400, 400, "invalid input"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "token expired") }, 401, 401, "token expired"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "faculty only") }, 403, 403, "faculty only"},
		{"not found", func(c *gin.Context) { NotFound(c, "project not found") }, 404, 404, "project not found"},
		{"server error", func(c *gin.Context) { ServerError(c, "internal error") }, 500, 500, "internal error"},
	}

	for _, tc := range cases {
		w := performRequest(tc.handler)
		if w.Code != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.name, tc.status, w.Code)
		}
		resp := parseResponse(t, w)
		if resp.Code != tc.code {
			t.Errorf("%s: expected code %d, got %d", tc.name, tc.code, resp.Code)
		}
		if resp.Message != tc.message {
			t.Errorf("%s: expected message %q, got %q", tc.name, tc.message, resp.Message)
		}
	}
}

func TestError_WithAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewConflict("you have already applied to this project"))
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 409 {
		t.Errorf("expected code 409, got %d", resp.Code)
	}
	if resp.Message != "you have already applied to this project" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestError_WithGenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("something went wrong"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 500 {
		t.Errorf("expected code 500, got %d", resp.Code)
	}
}

func TestAppError_ErrorInterface(t *testing.T) {
	err := NewNotFound("faculty profile not found")
	if err.Error() != "faculty profile not found" {
		t.Errorf("expected 'faculty profile not found', got %q", err.Error())
	}
}
