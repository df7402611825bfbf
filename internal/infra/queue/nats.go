package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const StageChangedSubject = "crm.lead.stage_changed"

// NATSPublisher publica StageChanged como JSON num subject NATS.
type NATSPublisher struct {
	conn *nats.Conn
}

// ConnectNATS abre uma conexão com reconexão automática.
func ConnectNATS(url string, opts ...nats.Option) (*nats.Conn, error) {
	defaults := []nats.Option{
		nats.Name("ligue-crm"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return nc, nil
}

func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) PublishStageChanged(_ context.Context, ev entity.StageChanged) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.conn.Publish(StageChangedSubject, data)
}

func (p *NATSPublisher) Healthy() error {
	if !p.conn.IsConnected() {
		return errors.New("nats " + p.conn.Status().String())
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// SubscribeNATS entrega cada mensagem do subject ao worker. Mensagens
// inválidas são só logadas; NATS core não tem DLQ.
func SubscribeNATS(conn *nats.Conn, w *Worker) (*nats.Subscription, error) {
	sub, err := conn.Subscribe(StageChangedSubject, func(msg *nats.Msg) {
		_ = w.Handle(context.Background(), msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", StageChangedSubject, err)
	}
	// Flush garante que a inscrição chegou ao servidor antes de retornar.
	if err := conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, fmt.Errorf("flushing subscription: %w", err)
	}
	return sub, nil
}
