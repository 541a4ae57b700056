package models

import "time"

// Provider application statuses.
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// Provider is the verified seller profile backing one or more parking spots.
type Provider struct {
	ID                 string    `bson:"id" json:"id"`
	UserID             string    `bson:"user_id" json:"userId"`
	FullName           string    `bson:"full_name" json:"fullName"`
	GovernmentID       string    `bson:"government_id,omitempty" json:"-"`
	PANNumber          string    `bson:"pan_number,omitempty" json:"-"`
	GSTNumber          string    `bson:"gst_number,omitempty" json:"-"`
	BankAccountNumber  string    `bson:"bank_account_number,omitempty" json:"-"`
	UPIID              string    `bson:"upi_id,omitempty" json:"upiId,omitempty"`
	VerificationStatus string    `bson:"verification_status" json:"verificationStatus"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
}

// ProviderApplication is a pending request to list a parking spot. Approval
// creates a Provider (if absent) and the spot itself, initially BLOCKED until
// the provider activates it.
type ProviderApplication struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"user_id" json:"userId"`

	// Applicant details.
	Name        string `bson:"name" json:"name"`
	PANNumber   string `bson:"pan_number,omitempty" json:"-"`
	GSTNumber   string `bson:"gst_number,omitempty" json:"-"`
	BankAccount string `bson:"bank_account,omitempty" json:"-"`
	UPIID       string `bson:"upi_id,omitempty" json:"upiId,omitempty"`

	// Proposed spot.
	Description    string   `bson:"description,omitempty" json:"description,omitempty"`
	State          string   `bson:"state,omitempty" json:"state,omitempty"`
	District       string   `bson:"district,omitempty" json:"district,omitempty"`
	Address        string   `bson:"address,omitempty" json:"address,omitempty"`
	Pincode        string   `bson:"pincode,omitempty" json:"pincode,omitempty"`
	GoogleMapsLink string   `bson:"google_maps_link,omitempty" json:"googleMapsLink,omitempty"`
	Latitude       float64  `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude      float64  `bson:"longitude,omitempty" json:"longitude,omitempty"`
	TotalCapacity  int      `bson:"total_capacity" json:"totalCapacity"`
	PricePerHour   float64  `bson:"price_per_hour" json:"pricePerHour"`
	WeekendPricing float64  `bson:"weekend_pricing,omitempty" json:"weekendPricing,omitempty"`
	Covered        bool     `bson:"covered" json:"covered"`
	CCTV           bool     `bson:"cctv" json:"cctv"`
	Guard          bool     `bson:"guard" json:"guard"`
	EVCharging     bool     `bson:"ev_charging" json:"evCharging"`
	VehicleTypes   []string `bson:"vehicle_types,omitempty" json:"vehicleTypes,omitempty"`
	ParkingType    string   `bson:"parking_type,omitempty" json:"parkingType,omitempty"`
	MonthlyPlan    bool     `bson:"monthly_plan" json:"monthlyPlan"`
	ImageURLs      []string `bson:"image_urls,omitempty" json:"imageUrls,omitempty"`

	Status       string    `bson:"status" json:"status"`
	AdminRemarks string    `bson:"admin_remarks,omitempty" json:"adminRemarks,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	DecidedAt    time.Time `bson:"decided_at,omitempty" json:"decidedAt,omitempty"`
}

// SpotFromApplication builds the ParkingSpot created when an application is
// approved. The spot starts BLOCKED; the provider activates it explicitly.
func SpotFromApplication(app *ProviderApplication, providerID string) *ParkingSpot {
	return &ParkingSpot{
		ProviderID:     providerID,
		OwnerID:        app.UserID,
		Name:           app.Name,
		Description:    app.Description,
		State:          app.State,
		District:       app.District,
		Address:        app.Address,
		Pincode:        app.Pincode,
		GoogleMapsLink: app.GoogleMapsLink,
		Latitude:       app.Latitude,
		Longitude:      app.Longitude,
		TotalCapacity:  app.TotalCapacity,
		PricePerHour:   app.PricePerHour,
		WeekendPricing: app.WeekendPricing,
		Covered:        app.Covered,
		CCTV:           app.CCTV,
		Guard:          app.Guard,
		EVCharging:     app.EVCharging,
		VehicleTypes:   app.VehicleTypes,
		ParkingType:    app.ParkingType,
		MonthlyPlan:    app.MonthlyPlan,
		ImageURLs:      app.ImageURLs,
		Status:         SpotStatusBlocked,
	}
}
