package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careerpath-backend/internal/pkg/ctxutil"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name      string
		requestID string
		keep      bool
	}{
		{"caller id kept", "req-123", true},
		{"generated when missing", "", false},
		{"too long replaced", strings.Repeat("a", maxIDLen+1), false},
		{"control chars replaced", "bad\tid", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.requestID != "" {
				req.Header.Set(headerRequestID, tc.requestID)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(headerRequestID)
			if got == "" || seen == nil || seen.RequestID != got {
				t.Fatalf("request id: header=%q ctx=%+v", got, seen)
			}
			if tc.keep && got != tc.requestID {
				t.Fatalf("request id: want=%q got=%q", tc.requestID, got)
			}
			if !tc.keep && got == tc.requestID {
				t.Fatalf("request id should have been regenerated")
			}
			if w.Header().Get(headerTraceID) == "" {
				t.Fatalf("missing trace id header")
			}
		})
	}
}
