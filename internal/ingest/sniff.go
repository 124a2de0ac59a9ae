package ingest

import "bytes"

// Sniff detects WAV (RIFF/WAVE) and MP3 (ID3 tag or MPEG frame sync) payloads.
func Sniff(data []byte) (Format, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}

	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")) {
		return FormatWAV, nil
	}
	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return FormatMP3, nil
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0 {
		return FormatMP3, nil
	}

	return "", ErrUnsupportedFormat
}
