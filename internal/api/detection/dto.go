package detection

import "PoultryScan/internal/entity"

const UploadField = "file"

type UploadRequest struct {
	Filename  string
	Size      int64
	ImageData []byte
}

type UploadResponse struct {
	Detections []entity.Detection `json:"detections"`
	Image      string             `json:"image"`
}
