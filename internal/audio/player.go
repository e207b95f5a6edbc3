package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const defaultSampleRate = beep.SampleRate(44100)

// Player decodes, caches and plays sounds.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate
	cache       map[string]*beep.Buffer

	// output replaces the speaker; used by tests.
	output func(beep.Streamer)
}

// NewPlayer creates a player at full volume.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		logger:     logger,
		volume:     1.0,
		sampleRate: defaultSampleRate,
		cache:      make(map[string]*beep.Buffer),
	}
}

// SetVolume sets the playback volume, clamped to [0, 1].
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(1, max(0, volume))
}

// Volume returns the playback volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Play plays the sound at path, or the built-in chime when path is empty.
// Playback is asynchronous.
func (p *Player) Play(path string) error {
	if path == "" {
		chime, err := Chime(defaultSampleRate)
		if err != nil {
			return err
		}
		return p.emit(chime, defaultSampleRate)
	}

	buf, err := p.load(path)
	if err != nil {
		return err
	}
	return p.emit(buf.Streamer(0, buf.Len()), buf.Format().SampleRate)
}

// Preload decodes path into the cache.
func (p *Player) Preload(path string) error {
	if path == "" {
		return nil
	}
	_, err := p.load(path)
	return err
}

// Invalidate empties the cache so edited files are decoded again.
func (p *Player) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}
	clear(p.cache)
}

func (p *Player) load(path string) (*beep.Buffer, error) {
	p.mu.Lock()
	buf, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return buf, nil
	}

	buf, err := decodeFile(path)
	if err != nil {
		p.logger.Warn("failed to load sound", "path", path, "error", err)
		return nil, err
	}

	p.mu.Lock()
	p.cache[path] = buf
	p.mu.Unlock()
	p.logger.Debug("loaded sound", "path", path, "samples", buf.Len())
	return buf, nil
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = stream.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(stream)
	return buf, nil
}

func (p *Player) emit(s beep.Streamer, rate beep.SampleRate) error {
	p.mu.Lock()
	volume := p.volume
	output := p.output
	p.mu.Unlock()

	if volume <= 0 {
		return nil
	}
	if volume < 1 {
		s = &effects.Volume{Streamer: s, Base: 10, Volume: math.Log10(volume)}
	}

	if output != nil {
		output(s)
		return nil
	}

	if err := p.ensureInitialized(); err != nil {
		return err
	}
	if rate != p.sampleRate {
		s = beep.Resample(4, rate, p.sampleRate, s)
	}
	speaker.Play(s)
	return nil
}

func (p *Player) ensureInitialized() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", p.sampleRate)
	return nil
}

// Chime returns the built-in two-note cue.
func Chime(sr beep.SampleRate) (beep.Streamer, error) {
	low, err := generators.SineTone(sr, 880)
	if err != nil {
		return nil, err
	}
	high, err := generators.SineTone(sr, 1320)
	if err != nil {
		return nil, err
	}
	return beep.Seq(
		beep.Take(sr.N(90*time.Millisecond), low),
		beep.Take(sr.N(140*time.Millisecond), high),
	), nil
}
