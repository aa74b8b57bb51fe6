// Package track runs the detection engine over recorded or live sample
// streams and delivers accepted reps to the RepCoin server, journaling them
// locally when the server is unreachable.
package track

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/repcoin/repcoin/internal/engine"
	"github.com/repcoin/repcoin/internal/models"
)

// Summary reports the outcome of one tracking run.
type Summary struct {
	Exercise  string
	Reps      int
	Coins     int
	Journaled int
	Counters  engine.Counters
}

// Tracker feeds a sample stream through one engine instance and ships each
// accepted rep. Delivery failures fall back to the journal rather than
// interrupting detection.
type Tracker struct {
	eng     *engine.Engine
	adapter *engine.Adapter
	client  *Client
	journal *Journal
	log     *slog.Logger

	ctx       context.Context
	reps      int
	journaled int
}

// NewTracker builds a tracker for one exercise session. journal may be nil,
// in which case delivery failures are only logged.
func NewTracker(cfg engine.Config, client *Client, journal *Journal, log *slog.Logger) (*Tracker, error) {
	t := &Tracker{client: client, journal: journal, log: log}

	// Replayed recordings carry their own readings, so every backend is
	// considered present.
	adapter, err := engine.NewAdapter(cfg.Kind, cfg.Source, engine.Capabilities{Accelerometer: true, Pose: true})
	if err != nil {
		return nil, err
	}
	t.adapter = adapter

	eng, err := engine.New(cfg, engine.SinkFunc(t.onRep))
	if err != nil {
		return nil, err
	}
	t.eng = eng
	return t, nil
}

// Run replays a recording through the engine and returns the session
// summary. Non-finite samples are dropped and counted, not fatal.
func (t *Tracker) Run(ctx context.Context, rec *Recording) (Summary, error) {
	if rec.Source != t.adapter.Source() {
		return Summary{}, fmt.Errorf("recording source %s does not match session source %s",
			rec.Source, t.adapter.Source())
	}

	t.ctx = ctx
	t.reps = 0
	t.journaled = 0
	t.eng.Start()
	defer t.eng.Stop()

	for _, raw := range rec.Raws {
		if err := ctx.Err(); err != nil {
			return t.summary(), err
		}
		sample, err := t.adapter.Convert(raw)
		if err != nil {
			return t.summary(), fmt.Errorf("converting sample: %w", err)
		}
		if err := t.eng.Offer(sample); err != nil {
			t.log.Warn("sample dropped", "error", err)
		}
	}

	return t.summary(), nil
}

// RunManual records taps read from r, one line per rep, until EOF. Each tap
// goes through the debounce guard; taps arriving faster than the minimum
// rep interval are dropped and counted.
func (t *Tracker) RunManual(ctx context.Context, r io.Reader) (Summary, error) {
	t.ctx = ctx
	t.reps = 0
	t.journaled = 0
	t.eng.Start()
	defer t.eng.Stop()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return t.summary(), err
		}
		t.eng.ManualRep(time.Now())
	}
	return t.summary(), sc.Err()
}

// FlushJournal delivers previously journaled reps to the server.
func (t *Tracker) FlushJournal(ctx context.Context) (int, error) {
	if t.journal == nil {
		return 0, nil
	}
	return t.journal.Flush(ctx, t.client)
}

func (t *Tracker) onRep(kind engine.Kind, at time.Time) {
	rep := models.NewRep(kind, t.adapter.Source(), at)
	t.reps++

	if err := t.client.PostRep(t.ctx, rep); err != nil {
		t.log.Warn("rep delivery failed", "rep_id", rep.ID, "error", err)
		if t.journal == nil {
			return
		}
		if jerr := t.journal.Append(rep); jerr != nil {
			t.log.Error("journaling rep failed", "rep_id", rep.ID, "error", jerr)
			return
		}
		t.journaled++
		return
	}
	t.log.Info("rep recorded", "exercise", kind, "coins", rep.CoinsEarned)
}

func (t *Tracker) summary() Summary {
	return Summary{
		Exercise:  t.eng.Kind().String(),
		Reps:      t.reps,
		Coins:     t.reps * models.CoinsPerRep,
		Journaled: t.journaled,
		Counters:  t.eng.Counters(),
	}
}
