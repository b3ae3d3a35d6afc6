// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PCM16 describes a 16-bit integer WAV file.
type PCM16 struct {
	SampleRate int
	Channels   int
	// Samples are interleaved.
	Samples []int16

	// Loop adds a smpl chunk with one forward loop over [LoopStart, LoopEnd) frames.
	Loop               bool
	LoopStart, LoopEnd int
}

const (
	fmtChunkSize  = 16
	smplChunkSize = 36 + 24 // header + one loop
)

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	_, err := PCM16{SampleRate: sampleRate, Channels: 1, Samples: samples}.WriteTo(w)
	return err
}

// WriteTo implements io.WriterTo.
func (p PCM16) WriteTo(w io.Writer) (int64, error) {
	if p.Channels <= 0 {
		return 0, ErrBadChannels
	}
	frames := len(p.Samples) / p.Channels
	if p.Loop && (p.LoopStart < 0 || p.LoopEnd <= p.LoopStart || p.LoopEnd > frames) {
		return 0, ErrBadLoop
	}

	const bitsPerSample = 16
	blockAlign := p.Channels * bitsPerSample / 8
	dataSize := len(p.Samples) * 2

	riffSize := 4 + (8 + fmtChunkSize) + (8 + dataSize)
	if p.Loop {
		riffSize += 8 + smplChunkSize
	}

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(riffSize))
	header = append(header, "WAVE"...)

	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, fmtChunkSize)
	header = binary.LittleEndian.AppendUint16(header, formatPCM)
	header = binary.LittleEndian.AppendUint16(header, uint16(p.Channels))
	header = binary.LittleEndian.AppendUint32(header, uint32(p.SampleRate))
	header = binary.LittleEndian.AppendUint32(header, uint32(p.SampleRate*blockAlign))
	header = binary.LittleEndian.AppendUint16(header, uint16(blockAlign))
	header = binary.LittleEndian.AppendUint16(header, bitsPerSample)

	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(dataSize))

	var written int64
	n, err := w.Write(header)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("%w", err)
	}

	// Write in chunks to bound the scratch buffer.
	const chunkSize = 8192
	buf := make([]byte, 0, min(len(p.Samples), chunkSize)*2)
	for i := 0; i < len(p.Samples); i += chunkSize {
		buf = buf[:0]
		for _, s := range p.Samples[i:min(i+chunkSize, len(p.Samples))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
		n, err := w.Write(buf)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w", err)
		}
	}

	if p.Loop {
		n, err := w.Write(p.smplChunk())
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("%w", err)
		}
	}

	return written, nil
}

func (p PCM16) smplChunk() []byte {
	b := make([]byte, 0, 8+smplChunkSize)
	b = append(b, "smpl"...)
	b = binary.LittleEndian.AppendUint32(b, smplChunkSize)
	b = append(b, 0, 0, 0, 0) // manufacturer
	b = append(b, 0, 0, 0, 0) // product
	b = binary.LittleEndian.AppendUint32(b, uint32(1_000_000_000/max(p.SampleRate, 1)))
	b = binary.LittleEndian.AppendUint32(b, 60) // MIDI unity note
	b = binary.LittleEndian.AppendUint32(b, 0)  // pitch fraction
	b = binary.LittleEndian.AppendUint32(b, 0)  // SMPTE format
	b = binary.LittleEndian.AppendUint32(b, 0)  // SMPTE offset
	b = binary.LittleEndian.AppendUint32(b, 1)  // loops
	b = binary.LittleEndian.AppendUint32(b, 0)  // sampler data

	b = append(b, 0, 0, 0, 0) // cue point id
	b = binary.LittleEndian.AppendUint32(b, 0) // forward
	b = binary.LittleEndian.AppendUint32(b, uint32(p.LoopStart))
	// smpl end points at the last sample of the loop.
	b = binary.LittleEndian.AppendUint32(b, uint32(p.LoopEnd-1))
	b = binary.LittleEndian.AppendUint32(b, 0) // fraction
	b = binary.LittleEndian.AppendUint32(b, 0) // infinite
	return b
}
