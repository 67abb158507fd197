package app

// rssiRing is a circular buffer of RSSI samples for one beacon.
type rssiRing struct {
	buf   []float64
	pos   int
	count int
}

func newRSSIRing(capacity int) *rssiRing {
	return &rssiRing{buf: make([]float64, capacity)}
}

func (r *rssiRing) push(v float64) {
	r.buf[r.pos] = v
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// values returns the samples oldest first.
func (r *rssiRing) values() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(out, r.buf[:r.count])
		return out
	}
	n := copy(out, r.buf[r.pos:])
	copy(out[n:], r.buf[:r.pos])
	return out
}

// histories keeps a ring per beacon ID for the detail sparkline.
type histories struct {
	capacity int
	rings    map[string]*rssiRing
}

func newHistories(capacity int) *histories {
	return &histories{capacity: capacity, rings: make(map[string]*rssiRing)}
}

// Record appends a sample for a beacon.
func (h *histories) Record(id string, rssi float64) {
	r, ok := h.rings[id]
	if !ok {
		r = newRSSIRing(h.capacity)
		h.rings[id] = r
	}
	r.push(rssi)
}

// Values returns a beacon's samples, oldest first.
func (h *histories) Values(id string) []float64 {
	if r, ok := h.rings[id]; ok {
		return r.values()
	}
	return nil
}

// Retain drops every beacon not in keep.
func (h *histories) Retain(keep map[string]bool) {
	for id := range h.rings {
		if !keep[id] {
			delete(h.rings, id)
		}
	}
}

// Len returns the number of beacons with history.
func (h *histories) Len() int {
	return len(h.rings)
}
