package models

import "time"

// Provider is a read-only directory record for a service provider: display
// fields plus the pricing defaults offered to new requests.
type Provider struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	Category           string    `bson:"category" json:"category"`
	DefaultPricingType string    `bson:"defaultPricingType,omitempty" json:"defaultPricingType,omitempty"`
	DefaultRate        *float64  `bson:"defaultRate,omitempty" json:"defaultRate,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}
