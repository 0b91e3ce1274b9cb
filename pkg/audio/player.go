package audio

import (
	"bytes"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioFormat  wavFormat
	globalAudioCtxOnce sync.Once
	audioCtxErr        error
)

// Player plays one sound and can be stopped early
type Player struct {
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// initAudioContext initializes the global audio context once. oto allows a
// single context per process, so its format is fixed by the first sound.
func initAudioContext(format wavFormat) error {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			audioCtxErr = fmt.Errorf("failed to initialize audio context: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		globalAudioFormat = format
		log.Println("[AUDIO] Audio context initialized")
	})

	if audioCtxErr != nil {
		return audioCtxErr
	}
	if globalAudioFormat.SampleRate != format.SampleRate || globalAudioFormat.Channels != format.Channels {
		return fmt.Errorf("sound format %d Hz/%d ch does not match audio context %d Hz/%d ch",
			format.SampleRate, format.Channels, globalAudioFormat.SampleRate, globalAudioFormat.Channels)
	}
	return nil
}

// Play starts playing WAV data once and returns without waiting.
func Play(wavData []byte) (*Player, error) {
	format, audioData, err := parseWAV(wavData)
	if err != nil {
		return nil, err
	}

	if err := initAudioContext(*format); err != nil {
		return nil, err
	}

	p := &Player{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go p.play(audioData)
	return p, nil
}

func (p *Player) play(audioData []byte) {
	defer close(p.done)

	player := globalAudioCtx.NewPlayer(bytes.NewReader(audioData))
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("[AUDIO] Failed to close audio player: %v", err)
		}
	}()

	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-p.stopChan:
			player.Pause()
			return
		case <-ticker.C:
		}
	}
}

// Stop stops playback. It is safe to call more than once and on nil.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() { close(p.stopChan) })
}

// Done is closed when playback has finished or was stopped.
func (p *Player) Done() <-chan struct{} {
	return p.done
}
