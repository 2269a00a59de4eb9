package domain

import "time"

// RentalPeriod is a committed booking interval against an item, used for
// conflict checking. Immutable once recorded.
type RentalPeriod struct {
	DateRange
	UserID    string    `json:"userID"`
	RequestID string    `json:"-"`
	CreatedOn time.Time `json:"-"`
}

// Item is a lendable physical object listed by an owner. The wire field
// names follow the mobile client's contract (the owner travels as
// "userID").
type Item struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Category          string         `json:"category"`
	Price             Price          `json:"price"`
	Description       string         `json:"description"`
	Image             string         `json:"image"`
	OwnerID           string         `json:"userID"`
	PastRentals       []RentalPeriod `json:"pastRentals"`
	CurrentlyRentedBy *string        `json:"currentlyRentedBy"`
	// Version stamps the item's committed-period set; bumped whenever a
	// period is committed or the rented-by flag changes.
	Version   int64     `json:"-"`
	CreatedOn time.Time `json:"-"`
	UpdatedOn time.Time `json:"-"`
}

// Rented reports whether an active rental currently holds the item.
func (i *Item) Rented() bool {
	return i.CurrentlyRentedBy != nil && *i.CurrentlyRentedBy != ""
}
