package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"partner-funnel/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	URI      string
}

func (c *Config) URL() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.Username, c.Password, c.Host, c.Port)
}

// Dialer opens AMQP connections. Tests replace it.
type Dialer func(url string) (*amqp.Connection, error)

type ConnectionManager struct {
	mu            sync.Mutex
	conn          *amqp.Connection
	url           string
	dial          Dialer
	retryInterval time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	ctx, cancel := context.WithCancel(ctx)

	cm := &ConnectionManager{
		url:           config.URL(),
		dial:          amqp.Dial,
		retryInterval: 2 * time.Second,
		ctx:           ctx,
		cancel:        cancel,
	}

	if err := cm.connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	go cm.monitor()
	return cm, nil
}

func (cm *ConnectionManager) connect() error {
	if err := cm.ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}

	conn, err := cm.dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	cm.mu.Lock()
	cm.conn = conn
	cm.mu.Unlock()
	return nil
}

// monitor redials after the broker drops the connection until ctx ends.
func (cm *ConnectionManager) monitor() {
	for {
		cm.mu.Lock()
		conn := cm.conn
		cm.mu.Unlock()
		if conn == nil {
			return
		}

		connErr := conn.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-cm.ctx.Done():
			return
		case err := <-connErr:
			if err == nil {
				return
			}
			logger.Warning.Printf("RabbitMQ connection lost: %v, reconnecting\n", err)
		}

		for {
			select {
			case <-cm.ctx.Done():
				return
			case <-time.After(cm.retryInterval):
			}
			if err := cm.connect(); err != nil {
				logger.Warning.Printf("RabbitMQ reconnect failed: %v, retrying in %v\n", err, cm.retryInterval)
				continue
			}
			logger.Info.Println("RabbitMQ reconnected")
			break
		}
	}
}

func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil || cm.conn == nil || cm.conn.IsClosed() {
		return nil
	}
	return cm.conn
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.conn != nil && !cm.conn.IsClosed() {
		if err := cm.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	cm.conn = nil
	return nil
}

func (cm *ConnectionManager) IsClosed() bool {
	return cm.GetConnection() == nil
}
