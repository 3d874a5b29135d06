package rtcm

// Status is the synchronizer state reported after feeding one word.
type Status int

const (
	// NoSync means the scanner has not located a frame preamble.
	NoSync Status = iota
	// Synced means the stream is locked and a frame is being buffered.
	Synced
	// FrameReady means a complete frame was buffered during the last
	// Feed; retrieve it with Frame before feeding more words.
	FrameReady
)

func (s Status) String() string {
	switch s {
	case NoSync:
		return "no-sync"
	case Synced:
		return "synced"
	case FrameReady:
		return "frame-ready"
	}
	return "unknown"
}

// Sync tracks frame synchronization for one physical input channel. The
// stream need not be word-aligned: bits are shifted through a rolling
// window and every 30-bit alignment is tested until lock. A Sync is not
// safe for concurrent use; callers run one Sync per channel.
type Sync struct {
	locked bool
	acc    uint64 // rolling bit history, newest bit in the low position
	nbits  int    // bits seen since last word boundary (or since reset)
	want   int    // total words in the current frame, 0 until header read

	buf [WordsMax]uint32
	n   int

	frame    [WordsMax]uint32
	frameLen int
}

// NewSync returns a synchronizer in the unlocked state.
func NewSync() *Sync {
	return &Sync{}
}

// Locked reports whether the stream is currently frame-locked.
func (s *Sync) Locked() bool { return s.locked }

// Frame returns the words of the most recently completed frame. Valid only
// after Feed returned FrameReady, until the next Feed call.
func (s *Sync) Frame() []uint32 {
	return s.frame[:s.frameLen]
}

// Feed shifts one 30-bit word into the synchronizer and reports the
// resulting state. A parity failure while locked discards the partial
// frame and drops lock; scanning resumes on the same bit stream, so a
// later valid preamble re-establishes lock without caller intervention.
func (s *Sync) Feed(word uint32) Status {
	ready := false
	for i := 29; i >= 0; i-- {
		if s.feedBit(word >> i & 1) {
			ready = true
		}
	}
	if ready {
		return FrameReady
	}
	if s.locked {
		return Synced
	}
	return NoSync
}

func (s *Sync) feedBit(bit uint32) (frameDone bool) {
	s.acc = s.acc<<1 | uint64(bit)
	s.nbits++

	if !s.locked {
		if s.nbits < 30 {
			return false
		}
		w := uint32(s.acc) // 30-bit window plus 2 bits of history
		// The data bits travel complemented whenever the previous word's
		// D30 parity bit is set, so the preamble must be tested on the
		// complement-corrected word.
		if dataWord(w)>>22&0xFF == Preamble && parityOK(w) {
			s.locked = true
			s.buf[0] = dataWord(w)
			s.n = 1
			s.want = 0
			s.nbits = 0
		}
		return false
	}

	if s.nbits < 30 {
		return false
	}
	s.nbits = 0

	w := uint32(s.acc)
	if !parityOK(w) {
		// One bad bit invalidates the whole frame; field alignment
		// downstream cannot be trusted. No repair is attempted.
		s.dropLock()
		return false
	}

	s.buf[s.n] = dataWord(w)
	s.n++

	if s.n == 2 {
		// Second header word declares the data word count.
		s.want = 2 + int(s.buf[1]>>9&0x1F)
	}
	if s.want > 0 && s.n == s.want {
		copy(s.frame[:], s.buf[:s.n])
		s.frameLen = s.n
		s.n = 0
		s.want = 0
		return true
	}
	if s.n >= WordsMax {
		s.dropLock()
	}
	return false
}

// dropLock abandons the partial frame and returns to preamble scanning.
// The bit history is kept so the very next bits can produce a new lock.
func (s *Sync) dropLock() {
	s.locked = false
	s.n = 0
	s.want = 0
	s.nbits = 30
}
