// Package yolo runs a YOLOv8-style ONNX export through ONNX Runtime.
package yolo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"

	"PoultryScan/internal/entity"
)

const (
	inputName            = "images"
	outputName           = "output0"
	DefaultInputSize     = 640
	DefaultIOUThreshold  = 0.7
	DefaultMaxDetections = 300
)

var (
	ErrModelClosed = errors.New("model is closed")
	ErrNilImage    = errors.New("nil image")
)

type IDetector interface {
	Detect(ctx context.Context, img image.Image, confidence float64) ([]entity.RawDetection, error)
}

type Config struct {
	ModelPath         string
	SharedLibraryPath string
	InputSize         int
	NumClasses        int
	IOUThreshold      float64
	MaxDetections     int
	PoolSize          int
	IntraOpThreads    int
}

type session struct {
	run    *ort.AdvancedSession
	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]
}

func (s *session) destroy() {
	if s.run != nil {
		s.run.Destroy()
	}
	if s.input != nil {
		s.input.Destroy()
	}
	if s.output != nil {
		s.output.Destroy()
	}
}

// Model owns a fixed pool of sessions over the same weights. Sessions are
// never shared by two concurrent Detect calls.
type Model struct {
	cfg      Config
	anchors  int
	sessions chan *session
	created  int
	log      *logrus.Logger
	once     sync.Once
}

var envMu sync.Mutex

func initEnvironment(libPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if ort.IsInitialized() {
		return nil
	}
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	return ort.InitializeEnvironment()
}

func New(cfg Config, log *logrus.Logger) (*Model, error) {
	if cfg.InputSize <= 0 {
		cfg.InputSize = DefaultInputSize
	}
	if cfg.IOUThreshold <= 0 {
		cfg.IOUThreshold = DefaultIOUThreshold
	}
	if cfg.MaxDetections <= 0 {
		cfg.MaxDetections = DefaultMaxDetections
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.NumClasses <= 0 {
		cfg.NumClasses = entity.TrainedClassCount
	}

	if err := initEnvironment(cfg.SharedLibraryPath); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime environment: %w", err)
	}

	m := &Model{
		cfg:      cfg,
		anchors:  anchorCount(cfg.InputSize),
		sessions: make(chan *session, cfg.PoolSize),
		log:      log,
	}

	for i := 0; i < cfg.PoolSize; i++ {
		s, err := m.createSession()
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to create model session %d: %w", i, err)
		}
		if err := warmUp(s); err != nil {
			log.Errorf("Warmup error for session %d: %v", i, err)
		}
		m.sessions <- s
		m.created++
	}

	log.WithFields(logrus.Fields{
		"model":      cfg.ModelPath,
		"pool_size":  cfg.PoolSize,
		"input_size": cfg.InputSize,
		"classes":    cfg.NumClasses,
	}).Info("Model loaded")

	return m, nil
}

func (m *Model) createSession() (*session, error) {
	size := int64(m.cfg.InputSize)
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 3, size, size), make([]float32, 3*size*size))
	if err != nil {
		return nil, err
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+m.cfg.NumClasses), int64(m.anchors)))
	if err != nil {
		inputTensor.Destroy()
		return nil, err
	}

	s := &session{input: inputTensor, output: outputTensor}

	options, err := ort.NewSessionOptions()
	if err != nil {
		s.destroy()
		return nil, err
	}
	defer options.Destroy()

	if m.cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(m.cfg.IntraOpThreads); err != nil {
			s.destroy()
			return nil, err
		}
	}

	s.run, err = ort.NewAdvancedSession(
		m.cfg.ModelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		s.destroy()
		return nil, err
	}

	return s, nil
}

// warmUp runs a blank inference so the first request does not pay for lazy
// allocations inside the runtime.
func warmUp(s *session) error {
	data := s.input.GetData()
	for i := range data {
		data[i] = 0
	}
	return s.run.Run()
}

func (m *Model) acquire(ctx context.Context) (*session, error) {
	select {
	case s, ok := <-m.sessions:
		if !ok {
			return nil, ErrModelClosed
		}
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (m *Model) Detect(ctx context.Context, img image.Image, confidence float64) ([]entity.RawDetection, error) {
	if img == nil {
		return nil, ErrNilImage
	}

	input, lb := prepareInput(img, m.cfg.InputSize)

	s, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { m.sessions <- s }()

	copy(s.input.GetData(), input)
	if err := s.run.Run(); err != nil {
		return nil, fmt.Errorf("inference error: %w", err)
	}

	bounds := img.Bounds()
	return processOutput(s.output.GetData(), decodeParams{
		numClasses:    m.cfg.NumClasses,
		anchors:       m.anchors,
		confidence:    confidence,
		iouThreshold:  m.cfg.IOUThreshold,
		maxDetections: m.cfg.MaxDetections,
		imgWidth:      bounds.Dx(),
		imgHeight:     bounds.Dy(),
		letterbox:     lb,
	})
}

// Close waits for borrowed sessions to come back and releases them.
func (m *Model) Close() {
	m.once.Do(func() {
		for i := 0; i < m.created; i++ {
			(<-m.sessions).destroy()
		}
		close(m.sessions)
		m.log.Info("Model sessions released")
	})
}
