package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

func newRawRequest(method, path, body, contentType string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}
