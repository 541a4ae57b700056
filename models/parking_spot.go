package models

import "time"

// Parking spot statuses. Only ACTIVE spots accept bookings.
const (
	SpotStatusActive      = "ACTIVE"
	SpotStatusMaintenance = "MAINTENANCE"
	SpotStatusBlocked     = "BLOCKED"
)

// ParkingSpot is a bookable resource with finite capacity and an hourly rate
// card. OwnerID is the user who listed the spot (via a provider profile).
type ParkingSpot struct {
	ID          string `bson:"id" json:"id"`
	ProviderID  string `bson:"provider_id" json:"providerId"`
	OwnerID     string `bson:"owner_id" json:"ownerId"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// Address.
	State          string  `bson:"state,omitempty" json:"state,omitempty"`
	District       string  `bson:"district,omitempty" json:"district,omitempty"`
	Address        string  `bson:"address,omitempty" json:"address,omitempty"`
	Pincode        string  `bson:"pincode,omitempty" json:"pincode,omitempty"`
	GoogleMapsLink string  `bson:"google_maps_link,omitempty" json:"googleMapsLink,omitempty"`
	Latitude       float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	// Capacity and rate card. WeekendPricing of 0 means "use PricePerHour".
	TotalCapacity  int     `bson:"total_capacity" json:"totalCapacity"`
	PricePerHour   float64 `bson:"price_per_hour" json:"pricePerHour"`
	WeekendPricing float64 `bson:"weekend_pricing,omitempty" json:"weekendPricing,omitempty"`

	// Facilities.
	Covered    bool `bson:"covered" json:"covered"`
	CCTV       bool `bson:"cctv" json:"cctv"`
	Guard      bool `bson:"guard" json:"guard"`
	EVCharging bool `bson:"ev_charging" json:"evCharging"`

	VehicleTypes []string `bson:"vehicle_types,omitempty" json:"vehicleTypes,omitempty"`
	ParkingType  string   `bson:"parking_type,omitempty" json:"parkingType,omitempty"`
	MonthlyPlan  bool     `bson:"monthly_plan" json:"monthlyPlan"`
	ImageURLs    []string `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`

	// BookingSeq is bumped inside the booking transaction to serialize
	// concurrent capacity checks on this spot. Never read for display.
	BookingSeq int64 `bson:"booking_seq" json:"-"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
