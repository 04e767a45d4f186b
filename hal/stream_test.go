package hal

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

type pipeRW struct {
	r *io.PipeReader
	w bytes.Buffer
}

func (p *pipeRW) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipeRW) Write(b []byte) (int, error) { return p.w.Write(b) }

func waitAvailable(t *testing.T, s *StreamSerial, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Available() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Available = %d, want %d", s.Available(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStreamSerialBuffersInOrder(t *testing.T) {
	pr, pw := io.Pipe()
	rw := &pipeRW{r: pr}
	s := NewStreamSerial(rw)

	if _, err := s.ReadByte(); !errors.Is(err, ErrNoData) {
		t.Fatalf("ReadByte on empty = %v, want ErrNoData", err)
	}

	go pw.Write([]byte{0x83, 0x10, 0x20, 0x30})
	waitAvailable(t, s, 4)

	for _, want := range []byte{0x83, 0x10, 0x20, 0x30} {
		got, err := s.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte: %v", err)
		}
		if got != want {
			t.Fatalf("ReadByte = %#x, want %#x", got, want)
		}
	}
	if s.Available() != 0 {
		t.Fatalf("Available = %d after drain", s.Available())
	}
}

func TestStreamSerialWriteByte(t *testing.T) {
	pr, _ := io.Pipe()
	rw := &pipeRW{r: pr}
	s := NewStreamSerial(rw)

	if err := s.WriteByte(0x01); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if got := rw.w.Bytes(); !bytes.Equal(got, []byte{0x01}) {
		t.Fatalf("written = %v", got)
	}
}

func TestStreamSerialReportsReaderError(t *testing.T) {
	pr, pw := io.Pipe()
	s := NewStreamSerial(&pipeRW{r: pr})
	pw.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Err() == nil {
		if time.Now().After(deadline) {
			t.Fatal("reader error not reported")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := s.ReadByte(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadByte = %v, want io.EOF", err)
	}
}
