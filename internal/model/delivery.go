package model

import "time"

// RequestStatus is the lifecycle of a delivery request. A request leaves
// Pending exactly once, to either AcceptedRequest or Declined.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusAccepted RequestStatus = "AcceptedRequest"
	RequestStatusDeclined RequestStatus = "Declined"
)

var allowedRequestStatuses = [...]RequestStatus{
	RequestStatusPending, RequestStatusAccepted, RequestStatusDeclined,
}

func (s RequestStatus) Valid() bool {
	for _, v := range allowedRequestStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Resolved reports whether the request has left Pending.
func (s RequestStatus) Resolved() bool {
	return s == RequestStatusAccepted || s == RequestStatusDeclined
}

// DeliveryRequest lives in the delivery_requests collection. Status may be
// absent on old documents and is read as Pending.
type DeliveryRequest struct {
	ID            string
	Product       string
	Source        string
	Destination   string
	Quantity      int
	ClientContact string
	Status        RequestStatus
}

// DeliveryState is the post-acceptance tracking status. Delivered is
// terminal.
type DeliveryState string

const (
	DeliveryStatePending   DeliveryState = "Pending"
	DeliveryStateInTransit DeliveryState = "In Transit"
	DeliveryStateDelivered DeliveryState = "Delivered"
)

var allowedDeliveryStates = [...]DeliveryState{
	DeliveryStatePending, DeliveryStateInTransit, DeliveryStateDelivered,
}

func (s DeliveryState) Valid() bool {
	for _, v := range allowedDeliveryStates {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed. The state
// only moves forward; Delivered accepts no further updates.
func (s DeliveryState) CanTransition(next DeliveryState) bool {
	if !next.Valid() {
		return false
	}
	switch s {
	case DeliveryStatePending:
		return next == DeliveryStateInTransit || next == DeliveryStateDelivered
	case DeliveryStateInTransit:
		return next == DeliveryStateDelivered
	case DeliveryStateDelivered:
		return false
	}
	// unknown current state behaves like Pending
	return next == DeliveryStateInTransit || next == DeliveryStateDelivered
}

// DeliveryStatus lives in the deliverystatus collection, one per accepted
// request (RequestID links back to delivery_requests).
type DeliveryStatus struct {
	ID            string
	RequestID     string
	Product       string
	Quantity      int
	ClientContact string
	Date          time.Time
	Status        DeliveryState
}
