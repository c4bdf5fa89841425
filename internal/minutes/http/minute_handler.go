// Package http provides HTTP handlers for meeting minutes.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/httputil"
	"github.com/allisson/staffdocs/internal/minutes/domain"
	"github.com/allisson/staffdocs/internal/minutes/http/dto"
	minutesUseCase "github.com/allisson/staffdocs/internal/minutes/usecase"
	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// maxAttachmentSize caps multipart uploads at 32 MiB.
const maxAttachmentSize = 32 << 20

// MinuteHandler handles HTTP requests for meeting minutes.
type MinuteHandler struct {
	minuteUseCase minutesUseCase.MinuteUseCase
	logger        *slog.Logger
}

// NewMinuteHandler creates a new minute handler with required dependencies.
func NewMinuteHandler(useCase minutesUseCase.MinuteUseCase, logger *slog.Logger) *MinuteHandler {
	return &MinuteHandler{
		minuteUseCase: useCase,
		logger:        logger,
	}
}

func (h *MinuteHandler) principal(c *gin.Context) (authDomain.Principal, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return principal, ok
}

func (h *MinuteHandler) minuteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *MinuteHandler) handleError(c *gin.Context, err error, role authDomain.Role) {
	authHTTP.HandleForbiddenGin(c, err, role, h.logger)
}

// CreateMinuteHandler records a meeting minute with its attachment.
// POST /api/minutes (multipart/form-data) - Any authenticated principal.
func (h *MinuteHandler) CreateMinuteHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentSize)

	var form dto.CreateMinuteForm
	if err := c.ShouldBind(&form); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := form.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrAttachmentRequired, h.logger)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	defer file.Close()

	// Form fields were validated above; these parses cannot fail.
	meetingDate, _ := time.Parse(dto.MeetingDateLayout, form.MeetingDate)
	areaID := uuid.MustParse(form.AreaID)
	documentTypeID := uuid.MustParse(form.DocumentTypeID)

	input := &domain.CreateMinuteInput{
		Title:          form.Title,
		MeetingDate:    meetingDate,
		AreaID:         areaID,
		DocumentTypeID: documentTypeID,
		AttachmentName: fileHeader.Filename,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		Attachment:     file,
	}

	minute, err := h.minuteUseCase.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMinuteResponse(minute))
}

// GetMinuteHandler retrieves a meeting minute.
// GET /api/minutes/:id - Any authenticated principal.
func (h *MinuteHandler) GetMinuteHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.minuteID(c)
	if !ok {
		return
	}

	minute, err := h.minuteUseCase.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewMinuteResponse(minute))
}

// ListMinutesHandler pages through meeting minutes.
// GET /api/minutes - Any authenticated principal.
func (h *MinuteHandler) ListMinutesHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	minutes, err := h.minuteUseCase.List(c.Request.Context(), principal, offset, limit)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewMinuteListResponse(minutes, offset, limit))
}

// DownloadAttachmentHandler streams the stored attachment back to the client.
// GET /api/minutes/:id/attachment - Any authenticated principal.
func (h *MinuteHandler) DownloadAttachmentHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.minuteID(c)
	if !ok {
		return
	}

	minute, reader, err := h.minuteUseCase.DownloadAttachment(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", minute.AttachmentName))
	c.Header("Content-Type", minute.ContentType)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("failed to stream attachment",
			slog.String("minute_id", minute.ID.String()),
			slog.Any("error", err),
		)
	}
}

// DeleteMinuteHandler removes a meeting minute and its attachment.
// DELETE /api/minutes/:id - Admin only.
func (h *MinuteHandler) DeleteMinuteHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.minuteID(c)
	if !ok {
		return
	}

	if err := h.minuteUseCase.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.Status(http.StatusNoContent)
}
