// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF clips with github.com/go-audio/aiff.
//
// Only uncompressed AIFF is supported. Samples are signed big-endian in the
// container; the decoder normalizes 8, 16, 24 and 32-bit depths to [-1,1).
package aiff
