package system

import (
	"image"
	"sync"
	"sync/atomic"
)

// ImagePool recycles RGBA frames by size. Frames of one export all share a
// size, so in steady state rasterising allocates nothing.
type ImagePool struct {
	pools sync.Map // image.Point -> *sync.Pool

	allocated atomic.Int64
	reused    atomic.Int64
}

// PoolStats counts buffers created and handed out again
type PoolStats struct {
	Allocated int64
	Reused    int64
}

var frames ImagePool

// GetImage returns an RGBA image with bounds rect from the shared pool.
// Its pixels hold whatever the previous user left behind.
func GetImage(rect image.Rectangle) *image.RGBA {
	return frames.Get(rect)
}

// PutImage hands an image back to the shared pool.
func PutImage(img *image.RGBA) {
	frames.Put(img)
}

// ImageStats reports the shared pool counters.
func ImageStats() PoolStats {
	return frames.Stats()
}

func (p *ImagePool) pool(size image.Point) *sync.Pool {
	if v, ok := p.pools.Load(size); ok {
		return v.(*sync.Pool)
	}
	v, _ := p.pools.LoadOrStore(size, &sync.Pool{})
	return v.(*sync.Pool)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	if img, ok := p.pool(rect.Size()).Get().(*image.RGBA); ok {
		p.reused.Add(1)
		img.Rect = rect
		return img
	}
	p.allocated.Add(1)
	return image.NewRGBA(rect)
}

func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil || img.Rect.Empty() {
		return
	}
	p.pool(img.Rect.Size()).Put(img)
}

func (p *ImagePool) Stats() PoolStats {
	return PoolStats{Allocated: p.allocated.Load(), Reused: p.reused.Load()}
}
