package detectionHandler

import (
	"PoultryScan/internal/api/detection"
	contextPkg "PoultryScan/pkg/context"
	"PoultryScan/pkg/log"
	"PoultryScan/pkg/response"
	"bytes"
	"context"
	"mime"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

func (h *DetectionHandler) Upload(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	file, err := uploadedFile(ctx)
	if err != nil {
		return h.errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_upload")
	}

	h.log.WithFields(log.Fields{
		log.RequestIDKey: requestID,
		"path":           ctx.Path(),
		"file_name":      file.Filename,
		"file_size":      file.Size,
	}).Debug("Processing file upload")

	data, err := h.utils.ReadFile(file)
	if err != nil {
		return h.errHandler.Handle(ctx, requestID, response.Wrap(detection.ErrReadFile, err), ctx.Path(), "read_file")
	}

	res, err := h.detectionService.Detect(c, detection.UploadRequest{
		Filename:  file.Filename,
		Size:      file.Size,
		ImageData: data,
	})
	if err != nil {
		return h.errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect")
	}

	return h.errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

// uploadedFile returns the "file" part of a multipart request. Parts with
// an empty filename land in the form values together with plain text fields,
// so the raw part headers decide between the two errors.
func uploadedFile(ctx *fiber.Ctx) (*multipart.FileHeader, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, detection.ErrNoFilePart
	}

	files := form.File[detection.UploadField]
	if len(files) == 0 {
		if _, ok := form.Value[detection.UploadField]; ok && hasFilenameParam(ctx) {
			return nil, detection.ErrNoSelectedFile
		}
		return nil, detection.ErrNoFilePart
	}

	if files[0].Filename == "" {
		return nil, detection.ErrNoSelectedFile
	}

	return files[0], nil
}

// hasFilenameParam reports whether an upload field part carries a filename
// parameter in its Content-Disposition, even an empty one.
func hasFilenameParam(ctx *fiber.Ctx) bool {
	boundary := string(ctx.Request().Header.MultipartFormBoundary())
	if boundary == "" {
		return false
	}

	reader := multipart.NewReader(bytes.NewReader(ctx.Request().Body()), boundary)
	for {
		part, err := reader.NextPart()
		if err != nil {
			return false
		}

		if part.FormName() == detection.UploadField {
			_, params, err := mime.ParseMediaType(part.Header.Get(fiber.HeaderContentDisposition))
			if err == nil {
				if _, ok := params["filename"]; ok {
					part.Close()
					return true
				}
			}
		}
		part.Close()
	}
}
