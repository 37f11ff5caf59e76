package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/Faultbox/locomotion/internal/locomotion"
)

// Cue identifies a locomotion event with a sound.
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueLand
	CueCrouch
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueCrouch:
		return "crouch"
	default:
		return "none"
	}
}

// DetectCue compares consecutive animation frames. Jump wins over land when
// both happen in the same tick.
func DetectCue(prev, cur locomotion.AnimationFrame) Cue {
	switch {
	case cur.State == locomotion.Jumping && prev.State != locomotion.Jumping:
		return CueJump
	case cur.Grounded && !prev.Grounded:
		return CueLand
	case cur.State == locomotion.Crouching && prev.State != locomotion.Crouching:
		return CueCrouch
	}
	return CueNone
}

type toneSpec struct {
	from, to float64 // Hz, swept linearly
	length   time.Duration
}

var tones = map[Cue]toneSpec{
	CueJump:   {from: 330, to: 660, length: 90 * time.Millisecond},
	CueLand:   {from: 180, to: 90, length: 70 * time.Millisecond},
	CueCrouch: {from: 240, to: 200, length: 50 * time.Millisecond},
}

// Tone is a finite sine sweep with a linear fade out.
type Tone struct {
	spec  toneSpec
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

// NewTone returns the streamer for c. CueNone yields an empty tone.
func NewTone(c Cue, rate beep.SampleRate) *Tone {
	spec := tones[c]
	return &Tone{spec: spec, rate: rate, total: rate.N(spec.length)}
}

// Len returns the tone length in samples.
func (t *Tone) Len() int { return t.total }

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.spec.from + (t.spec.to-t.spec.from)*progress
		t.phase += 2 * math.Pi * freq / float64(t.rate)
		v := math.Sin(t.phase) * (1 - progress) * 0.5
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) Err() error { return nil }
