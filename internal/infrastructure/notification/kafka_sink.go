package notification

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer subconjunto de *kafka.Writer usado por KafkaSink.
type Producer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publica las notificaciones en Kafka. El topic va en cada mensaje.
type KafkaSink struct {
	producer Producer
}

// NewKafkaWriter construye el writer sin topic fijo.
func NewKafkaWriter(brokers []string, clientID string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		BatchSize:              1,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{ClientID: clientID},
	}
}

// NewKafkaSink envuelve un producer (normalmente *kafka.Writer).
func NewKafkaSink(p Producer) *KafkaSink {
	return &KafkaSink{producer: p}
}

// Send publica un mensaje con clave.
func (s *KafkaSink) Send(ctx context.Context, topic, key string, payload []byte) error {
	return s.producer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	})
}

// Close cierra el writer.
func (s *KafkaSink) Close() error {
	return s.producer.Close()
}
