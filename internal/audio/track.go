package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// Track is a looping background track.
type Track struct {
	source beep.StreamSeekCloser
	format beep.Format
}

// OpenTrack decodes a WAV file. The file stays open until Close.
func OpenTrack(path string) (*Track, error) {
	if path == "" {
		return nil, ErrNoTrack
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}
	t, err := DecodeTrack(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

// DecodeTrack decodes WAV data from r.
func DecodeTrack(r io.Reader) (*Track, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode track: %w", err)
	}
	return &Track{source: s, format: format}, nil
}

// Streamer rewinds the track and returns an endless loop of it at rate.
func (t *Track) Streamer(rate beep.SampleRate) (beep.Streamer, error) {
	if err := t.source.Seek(0); err != nil {
		return nil, fmt.Errorf("rewind track: %w", err)
	}
	var s beep.Streamer = beep.Loop(-1, t.source)
	if t.format.SampleRate != rate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, rate, s)
	}
	return s, nil
}

// Len returns the track length in samples at its own rate.
func (t *Track) Len() int {
	return t.source.Len()
}

// Close releases the underlying file.
func (t *Track) Close() error {
	return t.source.Close()
}
