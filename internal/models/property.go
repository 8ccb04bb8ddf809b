package models

import (
	"time"
)

// Property is a rentable unit. SuggestedPrice, DemandScore and RiskScore are
// owned by the scoring pipeline and are always rewritten wholesale.
type Property struct {
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	SuggestedPrice *float64  `db:"suggested_price" json:"suggested_price"`
	Name           string    `db:"name" json:"name"`
	PropertyType   string    `db:"property_type" json:"property_type"`
	Location       string    `db:"location" json:"location"`
	Price          float64   `db:"price" json:"price"`
	SquareFeet     int       `db:"square_feet" json:"square_feet"`
	Bedrooms       int       `db:"bedrooms" json:"bedrooms"`
	Bathrooms      int       `db:"bathrooms" json:"bathrooms"`
	OccupancyRate  float64   `db:"occupancy_rate" json:"occupancy_rate"`
	DemandScore    float64   `db:"demand_score" json:"demand_score"`
	RiskScore      float64   `db:"risk_score" json:"risk_score"`
	ID             int64     `db:"id" json:"id"`
	Available      bool      `db:"available" json:"available"`
}

// Status mirrors the label shown in listings.
func (p Property) Status() string {
	if p.Available {
		return "available"
	}
	return "occupied"
}

// PropertyFilter narrows property listings. Zero values mean "no filter".
type PropertyFilter struct {
	Available    *bool
	Location     string
	PropertyType string
	Limit        int
	Offset       int
}

// CohortStats aggregates the properties that share a location and type.
type CohortStats struct {
	Total    int
	Occupied int
	AvgPrice float64
}

// LocationStats aggregates occupancy across every property in a location.
type LocationStats struct {
	Count        int
	AvgOccupancy float64
}

// PropertyStats holds portfolio-wide property aggregates for the dashboard.
type PropertyStats struct {
	Total        int
	Available    int
	AvgOccupancy float64
	Underpriced  int
	LowOccupancy int
}
