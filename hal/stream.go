package hal

import (
	"io"
	"sync"
)

// StreamSerial adapts a blocking io.ReadWriter (a tty, a pipe, stdin/stdout)
// to the polled Serial interface. A reader goroutine moves incoming bytes
// into a FIFO that Available and ReadByte consume without blocking.
type StreamSerial struct {
	w io.Writer

	mu   sync.Mutex
	fifo []byte
	err  error

	wmu sync.Mutex
	one [1]byte
}

// NewStreamSerial starts reading from rw in the background.
func NewStreamSerial(rw io.ReadWriter) *StreamSerial {
	s := &StreamSerial{w: rw}
	go s.readLoop(rw)
	return s
}

func (s *StreamSerial) readLoop(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.fifo = append(s.fifo, buf[:n]...)
			s.mu.Unlock()
		}
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			return
		}
	}
}

func (s *StreamSerial) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fifo)
}

func (s *StreamSerial) ReadByte() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fifo) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, ErrNoData
	}
	b := s.fifo[0]
	s.fifo = s.fifo[1:]
	if len(s.fifo) == 0 {
		s.fifo = s.fifo[:0:0]
	}
	return b, nil
}

func (s *StreamSerial) WriteByte(b byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.one[0] = b
	_, err := s.w.Write(s.one[:])
	return err
}

// Err reports why the reader goroutine stopped, if it did.
func (s *StreamSerial) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
