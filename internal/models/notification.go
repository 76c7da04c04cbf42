package models

// Notification представляет событие, отправляемое по живому соединению.
type Notification struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// HiredEvent представляет полезную нагрузку события о найме.
type HiredEvent struct {
	Message  string `json:"message"`
	GigID    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	BidID    string `json:"bidId"`
}

// JoinMessage представляет первое сообщение клиента после подключения.
type JoinMessage struct {
	UserID string `json:"userId"`
}
