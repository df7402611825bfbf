package board

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TransitionState int

const (
	StateIdle TransitionState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s TransitionState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateCommitted:
		return "Committed"
	case StateRolledBack:
		return "RolledBack"
	default:
		return "Idle"
	}
}

func (s TransitionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TransitionState) UnmarshalText(text []byte) error {
	for _, st := range []TransitionState{StateIdle, StatePending, StateCommitted, StateRolledBack} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown transition state %q", text)
}

// Transition is one attempt to move a lead to another stage.
type Transition struct {
	LeadID   string
	LeadName string
	From     entity.Stage
	To       entity.Stage
	State    TransitionState

	// Err is the persistence failure that caused a rollback.
	Err error
	// AuditErr is set when the move committed but its interaction was not recorded.
	AuditErr error
	// Notices holds what was sent to the board's notifier while settling.
	Notices []Notification

	ticket *Ticket
}

const (
	msgMoveFailed  = "Erro ao mover o lead."
	msgAuditFailed = "Lead movido, mas falha ao registrar interação."
)

// Begin validates a drop and applies it to the cache right away. It returns
// false, with no side effect, when the target is not a pipeline stage, the
// lead is unknown, or the lead already sits in the target stage.
//
// Every started transition must be finished with Complete.
func (b *Board) Begin(leadID string, target entity.Stage) (*Transition, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.stages.Contains(target) {
		return nil, false
	}
	cur, ok := b.cache.Get(leadID)
	if !ok || cur.Status == target {
		return nil, false
	}

	b.cache.UpdateStatus(leadID, target)
	t := &Transition{
		LeadID:   leadID,
		LeadName: cur.Name,
		From:     cur.Status,
		To:       target,
		State:    StatePending,
		ticket:   b.seq.Enqueue(leadID),
	}
	b.pending[leadID] = append(b.pending[leadID], t)
	return t, true
}

// Complete persists a pending transition and settles it as Committed or RolledBack.
func (b *Board) Complete(ctx context.Context, t *Transition) {
	if t == nil || t.State != StatePending {
		return
	}
	defer t.ticket.Release()

	err := t.ticket.Wait(ctx)
	if err == nil {
		err = b.store.UpdateLeadStatus(ctx, t.LeadID, t.To)
	}
	if err != nil {
		b.rollback(ctx, t, err)
		return
	}
	b.commit(ctx, t)
}

// Move runs Begin and Complete back to back. ok is false when the drop was ignored.
func (b *Board) Move(ctx context.Context, leadID string, target entity.Stage) (*Transition, bool) {
	t, ok := b.Begin(leadID, target)
	if !ok {
		return nil, false
	}
	b.Complete(ctx, t)
	return t, true
}

func (b *Board) rollback(ctx context.Context, t *Transition, cause error) {
	t.Err = cause
	t.State = StateRolledBack

	b.settle(t, t.From)

	b.logger.Warn("lead move rolled back",
		zap.String("owner_id", b.ownerID),
		zap.String("lead_id", t.LeadID),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.Error(cause))
	b.emit(t, Notification{Severity: SeverityError, Title: msgMoveFailed, Description: cause.Error()})

	// Other sessions may have written to the store; drop what we think we know.
	if err := b.Resync(context.WithoutCancel(ctx)); err != nil {
		b.logger.Error("board resync failed", zap.String("owner_id", b.ownerID), zap.Error(err))
	}
}

func (b *Board) commit(ctx context.Context, t *Transition) {
	t.State = StateCommitted

	b.settle(t, t.To)

	b.logger.Info("lead moved",
		zap.String("owner_id", b.ownerID),
		zap.String("lead_id", t.LeadID),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)))

	// The audit entry is derived from the move and never undoes it.
	if err := b.audit.AppendInteraction(ctx, entity.NewStageChangeInteraction(t.LeadID, t.From, t.To)); err != nil {
		t.AuditErr = err
		b.logger.Warn("stage change interaction not recorded", zap.String("lead_id", t.LeadID), zap.Error(err))
		b.emit(t, Notification{Severity: SeverityWarning, Title: msgAuditFailed})
	} else {
		b.emit(t, Notification{
			Severity: SeveritySuccess,
			Title:    fmt.Sprintf("Lead %q movido para %q.", t.LeadName, string(t.To)),
		})
	}

	if b.events == nil {
		return
	}
	ev := entity.StageChanged{
		LeadID:    t.LeadID,
		OwnerID:   b.ownerID,
		LeadName:  t.LeadName,
		From:      t.From,
		To:        t.To,
		ChangedAt: time.Now().UTC(),
	}
	if err := b.events.PublishStageChanged(ctx, ev); err != nil {
		b.logger.Warn("stage change event not published", zap.String("lead_id", t.LeadID), zap.Error(err))
	}
}

// settle drops t from the in-flight list of its lead and points the cache at
// the newest move still in flight, or at final once none is left. A commit
// that lands during a resync is remembered until every running resync is done.
func (b *Board) settle(t *Transition, final entity.Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t.State == StateCommitted && b.resyncs > 0 {
		b.gen++
		b.settled[t.LeadID] = settledMove{stage: t.To, gen: b.gen}
	}

	inflight := b.pending[t.LeadID]
	for i, p := range inflight {
		if p == t {
			inflight = append(inflight[:i], inflight[i+1:]...)
			break
		}
	}
	if len(inflight) == 0 {
		delete(b.pending, t.LeadID)
		b.cache.UpdateStatus(t.LeadID, final)
		return
	}
	b.pending[t.LeadID] = inflight
	b.cache.UpdateStatus(t.LeadID, inflight[len(inflight)-1].To)
}

func (b *Board) emit(t *Transition, n Notification) {
	t.Notices = append(t.Notices, n)
	b.notify(n)
}
