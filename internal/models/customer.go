package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientInfo holds billing contact details. Orders keep their own copy so
// past paperwork is not rewritten when a customer record changes.
type ClientInfo struct {
	CompanyName     string `bson:"companyName" json:"companyName"`
	ContactPerson   string `bson:"contactPerson" json:"contactPerson"`
	Phone           string `bson:"phone" json:"phone"`
	TaxID           string `bson:"taxId,omitempty" json:"taxId,omitempty"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	AddressStreet   string `bson:"addressStreet,omitempty" json:"addressStreet,omitempty"`
	AddressDoorNo   string `bson:"addressDoorNo,omitempty" json:"addressDoorNo,omitempty"`
	AddressPostCode string `bson:"addressPostCode,omitempty" json:"addressPostCode,omitempty"`
	AddressCity     string `bson:"addressCity,omitempty" json:"addressCity,omitempty"`
}

// FormatAddress joins the structured address parts for display.
func (c ClientInfo) FormatAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.AddressStreet, c.AddressDoorNo, c.AddressPostCode, c.AddressCity} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Adres girilmedi"
	}
	return strings.Join(parts, ", ")
}

type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Info      ClientInfo         `bson:"info" json:"info"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Tags      StringList         `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
