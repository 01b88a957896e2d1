// Package wav encodes PCM sample blocks into an uncompressed WAV container.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const headerSize = 44

// Encode concatenates frame blocks in arrival order and wraps them in a
// standard PCM WAV header. Samples are 16-bit, so the sample width is fixed
// at two bytes. Encoding is deterministic: identical input yields
// byte-identical output. Encoding an empty frame list is an error; callers
// skip empty sessions instead.
func Encode(frames [][]int16, sampleRate, channels int) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to encode")
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid format: rate=%d channels=%d", sampleRate, channels)
	}

	samples := 0
	for _, f := range frames {
		samples += len(f)
	}
	dataSize := samples * 2
	blockAlign := channels * 2

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, int32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, int32(16))
	binary.Write(buf, binary.LittleEndian, int16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, int16(channels))
	binary.Write(buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(buf, binary.LittleEndian, int32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, int16(blockAlign))
	binary.Write(buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, int32(dataSize))
	for _, f := range frames {
		binary.Write(buf, binary.LittleEndian, f)
	}

	return buf.Bytes(), nil
}
