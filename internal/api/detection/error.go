package detection

import (
	"PoultryScan/pkg/response"
	"net/http"
)

var (
	ErrNoFilePart          = response.NewError(http.StatusBadRequest, "No file part")
	ErrNoSelectedFile      = response.NewError(http.StatusBadRequest, "No selected file")
	ErrReadFile            = response.NewError(http.StatusInternalServerError, "failed to read uploaded file")
	ErrDecodeImage         = response.NewError(http.StatusInternalServerError, "failed to decode image")
	ErrInference           = response.NewError(http.StatusInternalServerError, "failed to run detection")
	ErrRender              = response.NewError(http.StatusInternalServerError, "failed to render detections")
	ErrEncodeImage         = response.NewError(http.StatusInternalServerError, "failed to encode image")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
