// Package link answers the display's status bytes with load frames.
package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/tarm/serial"

	"oledcpu/agent/metrics"
	"oledcpu/agent/sampler"
	"oledcpu/monitor"
	"oledcpu/monitor/frame"
)

// Source produces load samples.
type Source interface {
	Sample() (sampler.Sample, error)
}

// Open opens the display's serial port. Reads return io.EOF after
// readTimeout without data.
func Open(name string, baud int, readTimeout time.Duration) (io.ReadWriteCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", name, err)
	}
	return port, nil
}

// Server answers every status byte with one frame.
type Server struct {
	Port   io.ReadWriter
	Source Source
	// Memory appends the memory bar to every frame.
	Memory bool
	// TimeoutEOF treats io.EOF as an expired read timeout, as tarm/serial
	// reports it, rather than the end of the stream.
	TimeoutEOF bool
	Metrics    *metrics.Metrics
	// OnStatus runs for every status byte.
	OnStatus func(monitor.StatusBits)

	lastOn *bool
	values []uint8
	out    []byte
}

// Serve runs until ctx is done or the port fails. It returns nil when the
// stream ends.
func (s *Server) Serve(ctx context.Context) error {
	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := s.Port.Read(buf)
		for _, b := range buf[:n] {
			if werr := s.answer(frame.DecodeStatus(b)); werr != nil {
				return werr
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF) && s.TimeoutEOF:
		case errors.Is(err, io.EOF):
			return nil
		default:
			s.Metrics.ObserveError("read")
			return fmt.Errorf("link: read: %w", err)
		}
	}
}

func (s *Server) answer(status monitor.StatusBits) error {
	s.Metrics.ObserveStatus(status)
	if s.OnStatus != nil {
		s.OnStatus(status)
	}
	on := status.MonitorOn()
	if s.lastOn == nil || *s.lastOn != on {
		glog.Infof("display monitor on=%v", on)
		s.lastOn = &on
	}

	sample, err := s.Source.Sample()
	if err != nil {
		// No answer; the display times out and recovers by itself.
		s.Metrics.ObserveError("sample")
		glog.Warningf("link: %v", err)
		return nil
	}

	s.values = sampler.AppendValues(s.values[:0], sample, s.Memory)
	s.out = frame.AppendFrame(s.out[:0], s.values)
	if _, err := s.Port.Write(s.out); err != nil {
		s.Metrics.ObserveError("write")
		return fmt.Errorf("link: write: %w", err)
	}
	s.Metrics.ObserveFrame(sample)
	if glog.V(2) {
		glog.Infof("status %#04x -> % x", byte(status), s.out)
	}
	return nil
}
