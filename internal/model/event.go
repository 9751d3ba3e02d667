package model

import "time"

// Типы сущностей и действий для событий об изменениях
const (
	EntityDish  = "dish"
	EntityOrder = "order"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event — сообщение об изменении сущности, публикуемое в Kafka
// после каждой успешной мутации
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}
