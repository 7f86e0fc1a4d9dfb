package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Minimal ftyp box; enough container for code that stats or hands the file
// to an injected media fake.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
	'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

// WriteVideo writes an MP4-flavored fixture file at path, creating parent
// directories as needed.
func WriteVideo(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, mp4Header, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WAVBytes returns a mono 16 kHz 16-bit PCM WAV payload carrying n bytes of
// silence. n <= 0 returns nil, mirroring the zero-byte placeholder that audio
// extraction writes for containers without an audio stream.
func WAVBytes(n int) []byte {
	if n <= 0 {
		return nil
	}

	const (
		sampleRate    = 16000
		channels      = 1
		bitsPerSample = 16
	)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	le(&buf, uint32(36+n))
	buf.WriteString("WAVEfmt ")
	le(&buf, uint32(16))
	le(&buf, uint16(1)) // PCM
	le(&buf, uint16(channels))
	le(&buf, uint32(sampleRate))
	le(&buf, uint32(sampleRate*channels*bitsPerSample/8))
	le(&buf, uint16(channels*bitsPerSample/8))
	le(&buf, uint16(bitsPerSample))
	buf.WriteString("data")
	le(&buf, uint32(n))
	buf.Write(make([]byte, n))
	return buf.Bytes()
}

func le(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}
