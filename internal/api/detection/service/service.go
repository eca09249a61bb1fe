package detectionService

import (
	"PoultryScan/internal/api/detection"
	"PoultryScan/pkg/overlay"
	"PoultryScan/pkg/utils"
	"PoultryScan/pkg/yolo"
	"context"

	"github.com/sirupsen/logrus"
)

type IDetectionService interface {
	Detect(ctx context.Context, req detection.UploadRequest) (*detection.UploadResponse, error)
	ProcessFrame(ctx context.Context, frame []byte) (*detection.UploadResponse, error)
}

type detectionService struct {
	log        *logrus.Logger
	detector   yolo.IDetector
	renderer   overlay.IRenderer
	utils      utils.IUtils
	confidence float64
}

func NewDetectionService(
	log *logrus.Logger,
	detector yolo.IDetector,
	renderer overlay.IRenderer,
	utils utils.IUtils,
	confidence float64,
) IDetectionService {
	return &detectionService{
		log:        log,
		detector:   detector,
		renderer:   renderer,
		utils:      utils,
		confidence: confidence,
	}
}
