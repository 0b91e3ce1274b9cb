package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunk struct {
	id   string
	data []byte
}

func buildWAV(chunks ...chunk) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func fmtChunk(format, channels uint16, rate uint32, bits uint16) chunk {
	var b bytes.Buffer
	blockAlign := channels * bits / 8
	_ = binary.Write(&b, binary.LittleEndian, format)
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, rate)
	_ = binary.Write(&b, binary.LittleEndian, rate*uint32(blockAlign))
	_ = binary.Write(&b, binary.LittleEndian, blockAlign)
	_ = binary.Write(&b, binary.LittleEndian, bits)
	return chunk{id: "fmt ", data: b.Bytes()}
}

func TestParseWAV(t *testing.T) {
	samples := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	data := buildWAV(
		fmtChunk(1, 2, 44100, 16),
		chunk{id: "LIST", data: []byte("odd")},
		chunk{id: "data", data: samples},
	)

	format, audio, err := parseWAV(data)
	require.NoError(t, err)
	assert.Equal(t, &wavFormat{SampleRate: 44100, Channels: 2, BitDepth: 16}, format)
	assert.Equal(t, samples, audio)
}

func TestParseWAV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "RIFF/WAVE"},
		{"not riff", []byte("OggS0000WAVE"), "RIFF/WAVE"},
		{"no data chunk", buildWAV(fmtChunk(1, 1, 22050, 16)), "missing data chunk"},
		{"data before fmt", buildWAV(chunk{id: "data", data: []byte{0, 0}}), "before fmt"},
		{"8 bit", buildWAV(fmtChunk(1, 1, 22050, 8), chunk{id: "data", data: []byte{0}}), "16-bit PCM"},
		{"float", buildWAV(fmtChunk(3, 1, 22050, 16), chunk{id: "data", data: []byte{0, 0}}), "16-bit PCM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseWAV(tt.data)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
