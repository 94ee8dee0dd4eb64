package runqueue

import (
	"encoding/json"
	"fmt"
	"github.com/adjust/rmq/v3"
	"github.com/go-redis/redis/v7"
	"log"
)

// Open connects to Redis and opens the named rmq queue. rmq reports
// background delivery errors over a channel rather than from calls, so
// Open drains them to the process log.
func Open(tag string, addr string, password string, db int, queueName string) (rmq.Queue, error) {
	errChan := make(chan error)
	go func() {
		for err := range errChan {
			log.Printf("[runqueue] background error: %v\n", err)
		}
	}()

	connection, err := rmq.OpenConnectionWithRedisClient(tag, redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), errChan)
	if err != nil {
		return nil, fmt.Errorf("runqueue.Open() got err when opening the rmq connection: %w", err)
	}

	queue, err := connection.OpenQueue(queueName)
	if err != nil {
		return nil, fmt.Errorf("runqueue.Open() got err when opening queue %q: %w", queueName, err)
	}
	return queue, nil
}

// Publisher is the API-side half of the queue: it validates jobs and
// hands them to rmq as JSON payloads.
type Publisher struct {
	queue rmq.Queue
}

func NewPublisher(queue rmq.Queue) *Publisher {
	return &Publisher{queue: queue}
}

func (p *Publisher) Enqueue(job Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("Publisher.Enqueue() got an invalid job: %w", err)
	}

	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("Publisher.Enqueue() could not marshal job %s: %w", job.ID, err)
	}

	if err := p.queue.Publish(string(b)); err != nil {
		return fmt.Errorf("Publisher.Enqueue() got err when calling Publish(): %w", err)
	}
	return nil
}
