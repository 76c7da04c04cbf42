package models

import "time"

type BidStatus string // Статус предложения

const (
	PendingBid  BidStatus = "pending"  // Предложение ожидает решения
	HiredBid    BidStatus = "hired"    // Исполнитель нанят по этому предложению
	RejectedBid BidStatus = "rejected" // Предложение отклонено
)

// Bid представляет модель предложения.
type Bid struct {
	ID           string    `json:"id"`
	GigID        string    `json:"gigId"`
	FreelancerID string    `json:"freelancerId"`
	Message      string    `json:"message"`
	Price        float64   `json:"price"`
	Status       BidStatus `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BidRequest представляет структуру запроса для создания предложения.
type BidRequest struct {
	GigID    string  `json:"gigId"`
	Message  string  `json:"message"`
	Price    float64 `json:"price"`
	Username string  `json:"username"`
}

// BidWithFreelancer представляет предложение вместе с данными исполнителя.
type BidWithFreelancer struct {
	Bid
	FreelancerName  string `json:"freelancerName"`
	FreelancerEmail string `json:"freelancerEmail"`
}

// BidWithGig представляет предложение вместе с кратким описанием гига.
type BidWithGig struct {
	Bid
	GigTitle       string    `json:"gigTitle"`
	GigDescription string    `json:"gigDescription"`
	GigBudget      float64   `json:"gigBudget"`
	GigStatus      GigStatus `json:"gigStatus"`
}

// HireResult представляет результат найма исполнителя по предложению.
type HireResult struct {
	Bid      BidWithFreelancer `json:"bid"`
	GigTitle string            `json:"gigTitle"`
}
