// Package board keeps a user's kanban board in memory and moves leads between
// pipeline stages optimistically: the cache changes first, the store is
// written second, and a failed write is compensated by a rollback and a full
// resync from the store.
package board

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// LeadStore is the authoritative lead table, already scoped to one owner.
type LeadStore interface {
	ListLeads(ctx context.Context) ([]entity.Lead, error)
	UpdateLeadStatus(ctx context.Context, leadID string, status entity.Stage) error
}

// InteractionLog is the append-only audit table, scoped to the same owner.
type InteractionLog interface {
	AppendInteraction(ctx context.Context, in *entity.Interaction) error
}

type EventPublisher interface {
	PublishStageChanged(ctx context.Context, ev entity.StageChanged) error
}

type Board struct {
	mu      sync.Mutex
	cache   *Cache
	loaded  bool
	pending map[string][]*Transition

	// Moves committed while a resync is reading the store, keyed by lead.
	// gen orders them against the start of each read.
	settled map[string]settledMove
	gen     uint64
	resyncs int

	ownerID  string
	stages   entity.StageSet
	store    LeadStore
	audit    InteractionLog
	events   EventPublisher
	notifier Notifier
	seq      *Sequencer
	logger   *zap.Logger
}

type settledMove struct {
	stage entity.Stage
	gen   uint64
}

type Option func(*Board)

func WithOwner(id string) Option { return func(b *Board) { b.ownerID = id } }

func WithStages(s entity.StageSet) Option { return func(b *Board) { b.stages = s } }

func WithNotifier(n Notifier) Option { return func(b *Board) { b.notifier = n } }

func WithEvents(p EventPublisher) Option { return func(b *Board) { b.events = p } }

func WithLogger(l *zap.Logger) Option { return func(b *Board) { b.logger = l } }

// WithoutSerialization lets concurrent moves of the same lead hit the store
// in any order.
func WithoutSerialization() Option { return func(b *Board) { b.seq = nil } }

func New(store LeadStore, audit InteractionLog, opts ...Option) *Board {
	b := &Board{
		cache:    NewCache(),
		pending:  map[string][]*Transition{},
		settled:  map[string]settledMove{},
		stages:   entity.PipelineStages,
		store:    store,
		audit:    audit,
		notifier: MultiNotifier{},
		seq:      NewSequencer(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Stages() entity.StageSet { return b.stages }

// Load replaces the cache with snapshot.
func (b *Board) Load(snapshot []entity.Lead) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.Load(snapshot)
	b.loaded = true
}

func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// EnsureLoaded fetches the initial snapshot once.
func (b *Board) EnsureLoaded(ctx context.Context) error {
	if b.Loaded() {
		return nil
	}
	return b.Resync(ctx)
}

// Resync reloads the cache from the store. Moves that commit while the
// snapshot is being read, and moves still in flight, are laid back on top of
// it so a slow read never undoes them.
func (b *Board) Resync(ctx context.Context) error {
	b.mu.Lock()
	since := b.gen
	b.resyncs++
	b.mu.Unlock()

	leads, err := b.store.ListLeads(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.resyncs--
	if b.resyncs == 0 {
		defer clear(b.settled)
	}
	if err != nil {
		return fmt.Errorf("resync board: %w", err)
	}

	b.cache.Load(leads)
	b.loaded = true
	for id, m := range b.settled {
		if m.gen > since {
			b.cache.UpdateStatus(id, m.stage)
		}
	}
	for id, inflight := range b.pending {
		b.cache.UpdateStatus(id, inflight[len(inflight)-1].To)
	}
	return nil
}

// Put adds a lead created outside the board (manual entry) to a loaded cache.
func (b *Board) Put(l entity.Lead) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded {
		b.cache.Put(l)
	}
}

func (b *Board) Lead(id string) (entity.Lead, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cache.Get(id)
}

func (b *Board) Snapshot() []entity.Lead {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cache.Snapshot()
}

// Leads returns the filtered projection of the cache.
func (b *Board) Leads(q Query) []entity.Lead {
	return Filter(b.Snapshot(), q)
}

// View returns the filtered projection grouped into kanban columns.
func (b *Board) View(q Query) []Column {
	return Columns(b.stages, b.Leads(q))
}

func (b *Board) notify(n Notification) {
	if b.notifier != nil {
		b.notifier.Notify(n)
	}
}
