package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

const MaxUploadBytes = 5 * 1024 * 1024

var uploadTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".json":     "application/json",
}

func isMultipart(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(ctx.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// parseUpload fills req from a multipart form whose "file" part is a text,
// markdown or JSON file. Form fields override what the file implies.
func parseUpload(ctx *fiber.Ctx, req *dto.CreateDocumentRequest) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return apperror.Validation(apperror.CodeInvalidBody, "Invalid multipart form")
	}

	req.Title = formValue(form, "title")
	req.WorkspaceId = formValue(form, "workspaceId")
	req.Tags = formTags(form)

	files := form.File["file"]
	if len(files) == 0 {
		req.Content = formValue(form, "content")
		return serverutils.ValidateRequest(req)
	}

	header := files[0]
	content, fileType, err := extractText(header)
	if err != nil {
		return err
	}

	req.Content = content
	req.FileName = filepath.Base(header.Filename)
	req.FileType = fileType
	req.FileSize = header.Size
	if req.Title == "" {
		req.Title = strings.TrimSuffix(req.FileName, filepath.Ext(req.FileName))
	}
	return serverutils.ValidateRequest(req)
}

func extractText(header *multipart.FileHeader) (string, string, error) {
	if header.Size > MaxUploadBytes {
		return "", "", apperror.Validation("", "File is larger than 5MB")
	}
	fileType, ok := uploadTypes[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		return "", "", apperror.Validation("", "Only .txt, .md and .json files are supported")
	}

	f, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return "", "", err
	}
	if len(raw) > MaxUploadBytes {
		return "", "", apperror.Validation("", "File is larger than 5MB")
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		return "", "", apperror.Validation("", "File is not valid UTF-8 text")
	}

	if fileType == "application/json" {
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return "", "", apperror.Validation("", "File is not valid JSON")
		}
		return out.String(), fileType, nil
	}
	return string(raw), fileType, nil
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// formTags accepts repeated "tags" fields, comma separated values, or both.
func formTags(form *multipart.Form) []string {
	var tags []string
	for _, value := range form.Value["tags"] {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
