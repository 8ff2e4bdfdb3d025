package constants

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseListParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{name: "Defaults", query: "", wantSkip: DefaultSkip, wantLimit: DefaultLimit},
		{name: "Explicit values", query: "skip=20&limit=10", wantSkip: 20, wantLimit: 10},
		{name: "Negative skip", query: "skip=-5", wantSkip: DefaultSkip, wantLimit: DefaultLimit},
		{name: "Zero limit", query: "limit=0", wantSkip: DefaultSkip, wantLimit: DefaultLimit},
		{name: "Limit above cap", query: "limit=10000", wantSkip: DefaultSkip, wantLimit: MaxLimit},
		{name: "Garbage", query: "skip=abc&limit=xyz", wantSkip: DefaultSkip, wantLimit: DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			params := ParseListParams(c)
			if params.Skip != tt.wantSkip {
				t.Errorf("Expected skip %d, got %d", tt.wantSkip, params.Skip)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, params.Limit)
			}
		})
	}
}
