package models

import "time"

type GigStatus string // Статус гига

const (
	OpenGig     GigStatus = "open"     // Гиг открыт для предложений
	AssignedGig GigStatus = "assigned" // Исполнитель нанят, гиг закрыт
)

// Gig представляет модель гига.
type Gig struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	OwnerID     string    `json:"ownerId"`
	Status      GigStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GigRequest представляет структуру запроса для создания гига.
type GigRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Username    string  `json:"username"`
}

// GigWithOwner представляет гиг вместе с данными владельца.
type GigWithOwner struct {
	Gig
	OwnerName  string `json:"ownerName"`
	OwnerEmail string `json:"ownerEmail"`
}
