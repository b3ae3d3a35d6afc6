// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/formats/aiff"
	"github.com/ik5/audcue/formats/flac"
	"github.com/ik5/audcue/formats/mp3"
	"github.com/ik5/audcue/formats/vorbis"
	"github.com/ik5/audcue/formats/wav"
)

// NewCodecs returns a registry with every bundled decoder.
func NewCodecs() *audio.Registry {
	reg := audio.NewRegistry()
	wav.Register(reg)
	mp3.Register(reg)
	vorbis.Register(reg)
	aiff.Register(reg)
	flac.Register(reg)
	return reg
}
