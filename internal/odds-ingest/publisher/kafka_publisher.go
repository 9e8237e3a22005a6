package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/villela/pickem-ev-engine/pkg/contracts/events"
)

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher cria um publisher para o tópico de quote batches.
// Writer com acks completos, timeouts e balanceamento por menor carga.
func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	if len(brokers) == 0 {
		log.Fatal("kafka brokers not provided")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log,
	}
}

// Publish serializa o batch em JSON e envia uma mensagem para o tópico.
// A chave usa o EventID para distribuição consistente por partição.
func (p *KafkaPublisher) Publish(ctx context.Context, b events.QuoteBatch) error {
	value, err := json.Marshal(b)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(b.EventID),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish quote batch", zap.Error(err))
		return err
	}

	p.log.Debug("published quote batch",
		zap.String("event_id", b.EventID),
		zap.Int("quotes", len(b.Quotes)),
	)
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
