package main

import (
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/protofarer/aion/audio"
	"github.com/protofarer/aion/ecs/event"
)

// cuePlayer plays pre-rendered cues through ebiten. A nil context or bank
// makes it silent.
type cuePlayer struct {
	ctx     *ebaudio.Context
	bank    *audio.Bank
	logger  *zap.Logger
	warned  map[string]bool
	players []*ebaudio.Player
}

func newCuePlayer(bank *audio.Bank, logger *zap.Logger) *cuePlayer {
	p := &cuePlayer{bank: bank, logger: logger, warned: map[string]bool{}}
	if bank == nil {
		return p
	}
	cues := make([]string, 0, len(event.Cues()))
	for _, c := range event.Cues() {
		cues = append(cues, c.String())
	}
	if missing := bank.Missing(cues...); len(missing) > 0 {
		logger.Warn("audio: cues without a recipe stay silent", zap.Strings("cues", missing))
	}
	p.ctx = openContext(bank.SampleRate(), logger)
	return p
}

// openContext reuses the process-wide ebiten context or creates one. ebiten
// panics when a context already exists at another sample rate.
func openContext(rate int, logger *zap.Logger) (ctx *ebaudio.Context) {
	if ctx := ebaudio.CurrentContext(); ctx != nil {
		return ctx
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("audio: no context, cues are silent", zap.Any("reason", r))
			ctx = nil
		}
	}()
	return ebaudio.NewContext(rate)
}

func (p *cuePlayer) Play(name string) {
	if p == nil || p.ctx == nil {
		return
	}
	pcm, err := p.bank.PCM(name)
	if err != nil {
		if !p.warned[name] {
			p.warned[name] = true
			p.logger.Warn("audio: unknown cue", zap.String("cue", name))
		}
		return
	}

	p.reap()
	player := p.ctx.NewPlayerFromBytes(pcm)
	player.Play()
	p.players = append(p.players, player)
}

// reap drops finished players.
func (p *cuePlayer) reap() {
	live := p.players[:0]
	for _, pl := range p.players {
		if pl.IsPlaying() {
			live = append(live, pl)
			continue
		}
		_ = pl.Close()
	}
	for i := len(live); i < len(p.players); i++ {
		p.players[i] = nil
	}
	p.players = live
}
