package main

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/fabworks/stepquote/internal/geometry"
	"github.com/fabworks/stepquote/internal/metrics"
)

// maxUploadBytes caps uploaded CAD files at 50 MB.
const maxUploadBytes = 50 << 20

type volumeResponse struct {
	Volume   float64 `json:"volume"`
	Source   string  `json:"source"`
	FileName string  `json:"fileName"`
}

// handleVolumeUpload accepts a multipart STEP upload and responds with the
// extracted volume. The upload never outlives the request: bytes are read
// into memory, estimated, and discarded.
func (s *server) handleVolumeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing or oversized file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !hasStepExtension(header.Filename) {
		http.Error(w, "only .stp and .step files are supported", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read uploaded file", http.StatusBadRequest)
		return
	}

	est, err := s.estimator.EstimateVolume(r.Context(), data, int64(len(data)))
	if err != nil {
		if errors.Is(err, geometry.ErrEmptyFile) {
			http.Error(w, "uploaded file is empty", http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("volume estimation failed", "file", header.Filename, "error", err)
		http.Error(w, "failed to estimate volume", http.StatusInternalServerError)
		return
	}

	metrics.VolumeExtractions.WithLabelValues(est.Source).Inc()
	s.log.Debug("estimated volume", "file", header.Filename, "volume", est.Volume, "source", est.Source)

	writeJSON(w, http.StatusOK, volumeResponse{
		Volume:   est.Volume,
		Source:   est.Source,
		FileName: header.Filename,
	})
}

func hasStepExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".stp", ".step":
		return true
	}
	return false
}
