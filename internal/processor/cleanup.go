package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/ingest"
)

// cleanupAudio removes the persisted upload, logs warning if fails
func (p *implProcessor) cleanupAudio(ctx context.Context, h ingest.Handle) {
	if err := p.store.Remove(h); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", h.Path, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", h.Path)
	}
}
