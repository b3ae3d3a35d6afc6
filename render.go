// SPDX-License-Identifier: EPL-2.0

package audcue

import (
	"github.com/ik5/audcue/audio"
	"github.com/ik5/audcue/utils"
)

// RenderMono16 resamples clip to targetRate, folds it to mono and converts
// it to 16-bit PCM, ready for wav.WriteWAV16.
func RenderMono16(clip *audio.Clip, targetRate int) ([]int16, error) {
	resampled, err := audio.Resample(clip, targetRate)
	if err != nil {
		return nil, err
	}
	mono := audio.Downmix(resampled)

	pcm16 := make([]int16, len(mono.Samples))
	for i, s := range mono.Samples {
		pcm16[i] = utils.Float32ToInt16(s)
	}
	return pcm16, nil
}
