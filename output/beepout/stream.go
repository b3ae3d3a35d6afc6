// SPDX-License-Identifier: EPL-2.0

package beepout

import "github.com/gopxl/beep/v2"

// bufferSeeker streams a beep.Buffer from a movable position.
type bufferSeeker struct {
	buf *beep.Buffer
	pos int
	str beep.Streamer
}

func newBufferSeeker(buf *beep.Buffer) *bufferSeeker {
	return &bufferSeeker{buf: buf, str: buf.Streamer(0, buf.Len())}
}

func (b *bufferSeeker) Stream(out [][2]float64) (int, bool) {
	n, ok := b.str.Stream(out)
	b.pos += n
	return n, ok
}

func (b *bufferSeeker) Seek(p int) error {
	p = min(max(p, 0), b.buf.Len())
	b.pos = p
	b.str = b.buf.Streamer(p, b.buf.Len())
	return nil
}

func (b *bufferSeeker) Position() int { return b.pos }
func (b *bufferSeeker) Len() int      { return b.buf.Len() }
func (b *bufferSeeker) Err() error    { return nil }

// looper wraps around at the end of the buffer while its voice loops, and
// marks the voice finished otherwise. It runs under the device lock.
type looper struct {
	v    *Voice
	s    *bufferSeeker
	done bool
}

func (l *looper) Stream(samples [][2]float64) (n int, ok bool) {
	if l.done {
		return 0, false
	}
	for len(samples) > 0 {
		sn, _ := l.s.Stream(samples)
		n += sn
		samples = samples[sn:]
		if len(samples) == 0 {
			break
		}
		if !l.v.looping || l.s.Len() == 0 {
			l.done = true
			l.v.finishLocked(l)
			return n, n > 0
		}
		l.s.Seek(0)
	}
	return n, true
}

func (l *looper) Err() error { return nil }
