package domain

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("domain: invalid request status transition")

// RequestStatus is the approval lifecycle of a rental request. The wire
// values are the lowercase strings the mobile client exchanges.
type RequestStatus string

const (
	StatusOpen     RequestStatus = "open"
	StatusAccepted RequestStatus = "accepted"
	StatusDenied   RequestStatus = "denied"
	StatusActive   RequestStatus = "active"
	StatusClosed   RequestStatus = "closed"
)

// transitions is the full reachability table: open → accepted|denied,
// accepted → active (handoff), active → closed (return). denied and
// closed are terminal.
var transitions = map[RequestStatus][]RequestStatus{
	StatusOpen:     {StatusAccepted, StatusDenied},
	StatusAccepted: {StatusActive},
	StatusActive:   {StatusClosed},
	StatusDenied:   {},
	StatusClosed:   {},
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RequestStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func ValidStatus(s string) bool {
	_, ok := transitions[RequestStatus(s)]
	return ok
}

// RentalRequest is a requester's proposal to book an item for a date
// range. Price is the full rental charge for the time frame; Deposit is
// the owner-adjustable surcharge, frozen once the request leaves "open".
type RentalRequest struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"ownerID"`
	RequesterID string        `json:"requesterID"`
	ItemID      string        `json:"itemID"`
	Price       Price         `json:"price"`
	Deposit     Price         `json:"deposit"`
	TimeFrame   DateRange     `json:"timeFrame"`
	Status      RequestStatus `json:"status"`
	CreatedOn   time.Time     `json:"createdOn"`
	UpdatedOn   time.Time     `json:"updatedOn"`
}

// TransitionTo moves the request to the next status, rejecting anything
// the lifecycle table does not allow.
func (r *RentalRequest) TransitionTo(next RequestStatus, now time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.Status = next
	r.UpdatedOn = now.UTC()
	return nil
}

// DefaultDeposit is 10% of the rental price, the pre-filled value the
// owner may adjust while the request is still open.
func (r *RentalRequest) DefaultDeposit() Price {
	return r.Price / 10
}

// FullRequest is a request expanded with its counterpart records, the
// shape the owner/requester list endpoints return.
type FullRequest struct {
	RentalRequest
	Requester *User `json:"requester"`
	Item      *Item `json:"item"`
}
