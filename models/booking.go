package models

import "time"

// Booking statuses. CANCELLED and COMPLETED are terminal.
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// TimeLayout is the wire format for booking timestamps. Times are naive
// local time throughout the system.
const TimeLayout = "2006-01-02 15:04:05"

// Booking represents one reservation of one parking spot for a contiguous
// time window [StartTime, EndTime).
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	SpotID     string    `bson:"spot_id" json:"spotId"`
	StartTime  time.Time `bson:"start_time" json:"startTime"`
	EndTime    time.Time `bson:"end_time" json:"endTime"`
	TotalPrice float64   `bson:"total_price" json:"totalPrice"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// BookingResponse is the denormalized view returned to clients: the booking
// itself plus spot and requester display fields for provider-side screens.
type BookingResponse struct {
	ID            string  `json:"id"`
	SpotID        string  `json:"spotId"`
	SpotName      string  `json:"spotName"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	CreatedAt     string  `json:"createdAt"`
	UserName      string  `json:"userName"`
	UserEmail     string  `json:"userEmail"`
	UserPhone     string  `json:"userPhone"`
}
