package detectionService

import (
	"PoultryScan/internal/api/detection"
	"PoultryScan/internal/entity"
	"PoultryScan/pkg/log"
	"PoultryScan/pkg/response"
	"context"
	"time"
)

func (s *detectionService) Detect(ctx context.Context, req detection.UploadRequest) (*detection.UploadResponse, error) {
	logger := log.WithRequestID(s.log, ctx)

	img, format, err := s.utils.DecodeImage(req.ImageData)
	if err != nil {
		return nil, response.Wrap(detection.ErrDecodeImage, err)
	}

	bounds := img.Bounds()
	logger.WithFields(log.Fields{
		"file_name": req.Filename,
		"format":    format,
		"width":     bounds.Dx(),
		"height":    bounds.Dy(),
	}).Debug("Image decoded")

	start := time.Now()
	raw, err := s.detector.Detect(ctx, img, s.confidence)
	if err != nil {
		return nil, response.Wrap(detection.ErrInference, err)
	}

	detections := s.normalize(ctx, raw)

	logger.WithFields(log.Fields{
		"detections":   len(detections),
		"confidence":   s.confidence,
		"inference_ms": time.Since(start).Milliseconds(),
	}).Info("Inference finished")

	annotated, err := s.renderer.Render(img, detections)
	if err != nil {
		return nil, response.Wrap(detection.ErrRender, err)
	}

	encoded, err := s.utils.EncodeJPEGBase64(annotated)
	if err != nil {
		return nil, response.Wrap(detection.ErrEncodeImage, err)
	}

	return &detection.UploadResponse{
		Detections: detections,
		Image:      encoded,
	}, nil
}

func (s *detectionService) ProcessFrame(ctx context.Context, frame []byte) (*detection.UploadResponse, error) {
	return s.Detect(ctx, detection.UploadRequest{
		Filename:  "frame",
		Size:      int64(len(frame)),
		ImageData: frame,
	})
}

func (s *detectionService) normalize(ctx context.Context, raw []entity.RawDetection) []entity.Detection {
	detections := make([]entity.Detection, 0, len(raw))
	for _, r := range raw {
		if !entity.IsKnownClass(r.ClassIndex) {
			log.WithRequestID(s.log, ctx).WithField("class_index", r.ClassIndex).
				Warn("Class index outside the trained label set, labelling as salmo")
		}
		detections = append(detections, entity.NewDetection(r))
	}
	return detections
}
