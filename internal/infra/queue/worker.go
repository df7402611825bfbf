package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var ErrMalformedEvent = errors.New("evento malformado")

// LeadWonMailer avisa a equipe quando um negócio é fechado.
type LeadWonMailer interface {
	SendLeadWon(evt entity.StageChanged) error
}

// Consumer é satisfeito por *amqp.Channel.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Mailer LeadWonMailer
	Logger *zap.Logger
}

func NewWorker(mailer LeadWonMailer, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Mailer: mailer, Logger: logger}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, ch Consumer, queueName string) error {
	msgs, err := ch.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("queue worker started", zap.String("queue", queueName))
	w.consume(ctx, msgs)
	w.Logger.Info("queue worker stopped", zap.String("queue", queueName))
	return nil
}

func (w *Worker) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			if err := w.Handle(ctx, d.Body); err != nil {
				// Vai para a DLQ; não recolocamos para não travar a fila.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle processa um StageChanged codificado em JSON.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var ev entity.StageChanged
	if err := json.Unmarshal(body, &ev); err != nil {
		w.Logger.Warn("discarding malformed stage change event", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.LeadID == "" || !entity.PipelineStages.Contains(ev.To) {
		w.Logger.Warn("discarding malformed stage change event",
			zap.String("lead_id", ev.LeadID), zap.String("to", string(ev.To)))
		return ErrMalformedEvent
	}

	w.Logger.Debug("stage change received",
		zap.String("lead_id", ev.LeadID),
		zap.String("from", string(ev.From)),
		zap.String("to", string(ev.To)))

	if ev.To != entity.StageWon || w.Mailer == nil {
		return nil
	}
	if err := w.Mailer.SendLeadWon(ev); err != nil {
		w.Logger.Error("lead won e-mail failed", zap.String("lead_id", ev.LeadID), zap.Error(err))
		return err
	}
	w.Logger.Info("lead won e-mail sent", zap.String("lead_id", ev.LeadID))
	return nil
}
