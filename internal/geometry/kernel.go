package geometry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

const defaultKernelTimeout = 30 * time.Second

// KernelEstimator measures the real solid volume with FreeCAD and falls back
// to the deterministic hash estimate when the kernel is unavailable or
// rejects the geometry. Kernel failures never surface to callers: the
// estimator always returns a volume for a non-empty file.
type KernelEstimator struct {
	pythonBin  string
	scriptPath string
	timeout    time.Duration
	log        *slog.Logger
	fallback   HashEstimator
}

// NewKernelEstimator builds a kernel estimator shelling out to
// `pythonBin scriptPath <step-file>`.
func NewKernelEstimator(pythonBin, scriptPath string, log *slog.Logger) *KernelEstimator {
	if log == nil {
		log = slog.Default()
	}
	return &KernelEstimator{
		pythonBin:  pythonBin,
		scriptPath: scriptPath,
		timeout:    defaultKernelTimeout,
		log:        log,
	}
}

// EstimateVolume implements Estimator. A failed kernel attempt triggers
// exactly one hash fallback, never a retry.
func (e *KernelEstimator) EstimateVolume(ctx context.Context, data []byte, fileSize int64) (Estimation, error) {
	if len(data) == 0 {
		return Estimation{}, ErrEmptyFile
	}

	volume, err := e.kernelVolume(ctx, data)
	if err != nil {
		e.log.Debug("kernel extraction failed, using hash estimate", "error", err)
		return e.fallback.EstimateVolume(ctx, data, fileSize)
	}

	return Estimation{Volume: round2(volume), Source: SourceKernel}, nil
}

// kernelOutput mirrors the JSON contract of scripts/extract_volume.py.
type kernelOutput struct {
	Volume      float64 `json:"volume"`
	ObjectCount int     `json:"object_count"`
	Success     bool    `json:"success"`
	Error       string  `json:"error"`
}

func (e *KernelEstimator) kernelVolume(ctx context.Context, data []byte) (float64, error) {
	if e.pythonBin == "" || e.scriptPath == "" {
		return 0, errors.New("kernel not configured")
	}

	// The script needs a real file; write one and remove it on every path.
	f, err := os.CreateTemp("", "stepquote-*.step")
	if err != nil {
		return 0, fmt.Errorf("create temp step file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return 0, fmt.Errorf("write temp step file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close temp step file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, e.pythonBin, e.scriptPath, path).Output()
	if err != nil {
		return 0, fmt.Errorf("run volume extraction script: %w", err)
	}

	var result kernelOutput
	if err := json.Unmarshal(bytes.TrimSpace(out), &result); err != nil {
		return 0, fmt.Errorf("parse extraction output: %w", err)
	}
	if result.Error != "" {
		return 0, fmt.Errorf("kernel: %s", result.Error)
	}
	if !result.Success || result.Volume <= 0 {
		return 0, errors.New("kernel returned no solid volume")
	}

	return result.Volume, nil
}
