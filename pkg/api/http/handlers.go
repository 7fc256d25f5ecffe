package http

import (
	"net/http"
	"strconv"

	"github.com/aescanero/infoapi/internal/info"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	checkBodyText = []byte("OK")
	checkBodyJSON = []byte(`{"status":"ok"}`)
)

// handleCheck answers liveness checks
func (s *Server) handleCheck(c *gin.Context) {
	contentType, body := contentTypeText, checkBodyText
	if s.routes.CheckBody == info.CheckBodyJSON {
		contentType, body = contentTypeJSON, checkBodyJSON
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentType)
		c.Header("Content-Length", strconv.Itoa(len(body)))
		c.Status(http.StatusOK)
		return
	}

	c.Data(http.StatusOK, contentType, body)
}

// handleInfo serves the instance metadata document
func (s *Server) handleInfo(c *gin.Context) {
	c.Header("ETag", s.document.ETag())
	c.Header("Cache-Control", "no-cache")

	if s.document.Matches(c.GetHeader("If-None-Match")) {
		c.Status(http.StatusNotModified)
		return
	}

	if c.Request.Method == http.MethodHead {
		c.Header("Content-Type", contentTypeJSON)
		c.Header("Content-Length", strconv.Itoa(s.document.Len()))
		c.Status(http.StatusOK)
		return
	}

	c.Data(http.StatusOK, contentTypeJSON, s.document.Bytes())
}

// handleNotFound handles requests for unknown paths
func (s *Server) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "No route for " + c.Request.URL.Path,
		},
	})
}

// handleMethodNotAllowed handles known paths requested with an unsupported method
func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	if allow, ok := s.allowed[c.Request.URL.Path]; ok {
		c.Header("Allow", allow)
	}

	s.logger.Debug("method not allowed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path))

	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error: ErrorDetail{
			Code:    "METHOD_NOT_ALLOWED",
			Message: c.Request.Method + " is not allowed on " + c.Request.URL.Path,
		},
	})
}
