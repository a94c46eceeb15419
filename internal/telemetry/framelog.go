// Package telemetry records per-frame statistics and summarizes runs.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"fieldscope/internal/core"
)

// FrameSample is one row of the frame log.
type FrameSample struct {
	Frame   uint64  `csv:"frame"`
	TimeMS  float64 `csv:"time_ms"`
	Rate    float64 `csv:"rate"`
	FPS     int     `csv:"fps"`
	Mean    float64 `csv:"mean"`
	Min     float64 `csv:"min"`
	Max     float64 `csv:"max"`
	Samples int     `csv:"samples"`
	Mode    string  `csv:"mode"`
}

// NewFrameSample builds a row from frame statistics.
func NewFrameSample(frame uint64, now time.Duration, st core.FrameStats, mode core.FieldMode) FrameSample {
	return FrameSample{
		Frame:   frame,
		TimeMS:  float64(now) / float64(time.Millisecond),
		Rate:    st.Rate,
		FPS:     st.Rounded,
		Mean:    st.Mean,
		Min:     st.Min,
		Max:     st.Max,
		Samples: st.Samples,
		Mode:    mode.String(),
	}
}

// FrameLog appends frame samples as CSV. The header is written with the
// first row. A nil *FrameLog discards everything.
type FrameLog struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewFrameLog writes rows to w.
func NewFrameLog(w io.Writer) *FrameLog {
	return &FrameLog{w: w}
}

// CreateFrameLog creates the file at path, and any missing parent
// directories. An empty path disables logging and returns nil.
func CreateFrameLog(path string) (*FrameLog, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating frame log: %w", err)
	}
	return &FrameLog{w: f, closer: f}, nil
}

// Write appends one sample.
func (l *FrameLog) Write(s FrameSample) error {
	if l == nil {
		return nil
	}
	records := []FrameSample{s}
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.w); err != nil {
			return fmt.Errorf("writing frame log: %w", err)
		}
		l.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, l.w); err != nil {
			return fmt.Errorf("writing frame log: %w", err)
		}
	}
	l.rows++
	return nil
}

// Rows returns the number of samples written.
func (l *FrameLog) Rows() int {
	if l == nil {
		return 0
	}
	return l.rows
}

// Close closes the underlying file, if the log owns one.
func (l *FrameLog) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ReadFrameLog parses a frame log written by FrameLog.
func ReadFrameLog(r io.Reader) ([]FrameSample, error) {
	var rows []FrameSample
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading frame log: %w", err)
	}
	return rows, nil
}
