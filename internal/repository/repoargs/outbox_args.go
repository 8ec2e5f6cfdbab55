package repoargs

import "github.com/fsdevblog/learnmarket/internal/domain"

type CreateOutboxEvent struct {
	EventType domain.EventType
	Payload   []byte
}
