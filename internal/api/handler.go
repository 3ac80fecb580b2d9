package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/lenslate/lenslate/internal/media"
	"github.com/lenslate/lenslate/internal/translate"
)

// ImageTranslator is the core operation the request layer drives.
type ImageTranslator interface {
	Translate(ctx context.Context, req translate.Request) ([]byte, error)
}

// Handler handles API requests
type Handler struct {
	translator  ImageTranslator
	debugErrors bool
	validate    *validator.Validate
}

// NewHandler creates a new handler
func NewHandler(translator ImageTranslator, debugErrors bool) *Handler {
	return &Handler{
		translator:  translator,
		debugErrors: debugErrors,
		validate:    validator.New(),
	}
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorHandler is the custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(Response{
		Success: false,
		Error:   err.Error(),
	})
}

// HealthCheck returns health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(Response{
		Success: true,
		Data: map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// TranslateJSONRequest is the JSON body alternative to a multipart upload.
type TranslateJSONRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	TimeoutMS   int    `json:"timeout_ms" validate:"omitempty,gte=0"`
	OutputPath  string `json:"output_path,omitempty"`
}

// Translate accepts an image (multipart "file" field, or a JSON body with
// image_base64), drives the translate UI, and returns the translated image
// bytes.
func (h *Handler) Translate(c *fiber.Ctx) error {
	var (
		req          translate.Request
		originalName string
	)

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		if len(data) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
		}

		req.ImageBytes = data
		originalName = fileHeader.Filename

		if v := c.FormValue("timeout_ms"); v != "" {
			ms, err := strconv.Atoi(v)
			if err != nil || ms < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid timeout_ms")
			}
			req.Timeout = time.Duration(ms) * time.Millisecond
		}
	} else {
		var body TranslateJSONRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Provide a file or image_base64")
		}
		if err := h.validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Provide a file or image_base64")
		}

		req.ImageBase64 = body.ImageBase64
		req.Timeout = time.Duration(body.TimeoutMS) * time.Millisecond
		req.OutputPath = body.OutputPath
	}

	output, err := h.translator.Translate(c.UserContext(), req)
	if err != nil {
		return h.mapTranslateError(err)
	}

	c.Set(fiber.HeaderContentType, media.ContentType(output))
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, media.OutputFilename(originalName, output)))
	return c.Send(output)
}

// mapTranslateError maps the core error taxonomy onto HTTP statuses: bad
// input 400, UI-reported failures 422, everything else (navigation, upload,
// extraction, timeout) 500.
func (h *Handler) mapTranslateError(err error) error {
	var inputErr *translate.InputError
	if errors.As(err, &inputErr) {
		return fiber.NewError(fiber.StatusBadRequest, inputErr.Error())
	}

	var uiErr *translate.UIError
	if errors.As(err, &uiErr) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, uiErr.Error())
	}

	log.Printf("Translate failed: %v", err)
	detail := err.Error()
	if h.debugErrors {
		detail = fmt.Sprintf("%+v", err)
	}
	return fiber.NewError(fiber.StatusInternalServerError, detail)
}
