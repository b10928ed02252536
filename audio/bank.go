package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"go.uber.org/zap"
)

const DefaultSampleRate = 44100

var (
	ErrInvalidRecipe = errors.New("audio: invalid recipe")
	ErrUnknownCue    = errors.New("audio: unknown cue")
)

// Bank holds every cue rendered once to 16-bit little-endian stereo PCM, the
// layout ebiten's audio players take.
type Bank struct {
	rate   beep.SampleRate
	pcm    map[string][]byte
	logger *zap.Logger
}

// NewBank renders recipes at rate with master applied on top of each
// recipe's own volume.
func NewBank(rate int, master float64, recipes map[string]Recipe, logger *zap.Logger) (*Bank, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("audio: sample rate %d", rate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Bank{
		rate:   beep.SampleRate(rate),
		pcm:    make(map[string][]byte, len(recipes)),
		logger: logger,
	}
	rng := rand.New(rand.NewSource(1))
	for _, name := range sortedNames(recipes) {
		r := recipes[name]
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("cue %q: %w", name, err)
		}
		s := newVolume(r.Streamer(b.rate, rng), master)
		b.pcm[name] = Render(s, b.rate.N(r.Duration))
		logger.Debug("audio: rendered cue", zap.String("cue", name), zap.Int("bytes", len(b.pcm[name])))
	}
	return b, nil
}

func (b *Bank) SampleRate() int { return int(b.rate) }

// PCM returns the rendered bytes of a cue.
func (b *Bank) PCM(name string) ([]byte, error) {
	data, ok := b.pcm[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCue, name)
	}
	return data, nil
}

func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.pcm))
	for name := range b.pcm {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names the bank has no cue for, in the given order.
func (b *Bank) Missing(names ...string) []string {
	var out []string
	for _, name := range names {
		if _, ok := b.pcm[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Duration reports how long a cue plays.
func (b *Bank) Duration(name string) time.Duration {
	return b.rate.D(len(b.pcm[name]) / 4)
}

// Render drains at most n frames of s into 16-bit little-endian stereo PCM.
func Render(s beep.Streamer, n int) []byte {
	out := make([]byte, 0, n*4)
	buf := make([][2]float64, 512)
	s = beep.Take(n, s)
	for {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][1])))
		}
		if !ok || got == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

func sortedNames(recipes map[string]Recipe) []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
