package game

// actingRing is the fixed-capacity circular order of seats that can still
// act. Seats are removed when they fold or go all-in; the cursor keeps its
// place so removal of the current seat is safe.
type actingRing struct {
	present []bool
	count   int
	cursor  int
}

// newActingRing returns a ring holding every seat, with the cursor on the
// given seat.
func newActingRing(n, start int) *actingRing {
	r := &actingRing{present: make([]bool, n), count: n, cursor: start}
	for i := range r.present {
		r.present[i] = true
	}
	return r
}

// Next advances to the following present seat and returns it, or -1 when
// the ring is empty.
func (r *actingRing) Next() int {
	if r.count == 0 {
		return -1
	}
	n := len(r.present)
	for i := 1; i <= n; i++ {
		idx := (r.cursor + i) % n
		if r.present[idx] {
			r.cursor = idx
			return idx
		}
	}
	return -1
}

// SeekFrom moves the cursor to the first present seat at or after seat
// and returns it, or -1 when the ring is empty.
func (r *actingRing) SeekFrom(seat int) int {
	n := len(r.present)
	r.cursor = (seat - 1 + n) % n
	return r.Next()
}

func (r *actingRing) Current() int { return r.cursor }

func (r *actingRing) Contains(seat int) bool {
	return seat >= 0 && seat < len(r.present) && r.present[seat]
}

func (r *actingRing) Remove(seat int) {
	if r.Contains(seat) {
		r.present[seat] = false
		r.count--
	}
}

func (r *actingRing) Len() int { return r.count }
