package model

import "testing"

func TestRequestStatusResolved(t *testing.T) {
	tests := []struct {
		name   string
		status RequestStatus
		want   bool
	}{
		{"pending", RequestStatusPending, false},
		{"accepted", RequestStatusAccepted, true},
		{"declined", RequestStatusDeclined, true},
		{"empty", RequestStatus(""), false},
		{"garbage", RequestStatus("Shipped"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Resolved(); got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestDeliveryStateCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from DeliveryState
		to   DeliveryState
		want bool
	}{
		{"pending to transit", DeliveryStatePending, DeliveryStateInTransit, true},
		{"pending to delivered", DeliveryStatePending, DeliveryStateDelivered, true},
		{"pending to pending", DeliveryStatePending, DeliveryStatePending, false},
		{"transit to delivered", DeliveryStateInTransit, DeliveryStateDelivered, true},
		{"transit back to pending", DeliveryStateInTransit, DeliveryStatePending, false},
		{"delivered is terminal", DeliveryStateDelivered, DeliveryStateInTransit, false},
		{"delivered to delivered", DeliveryStateDelivered, DeliveryStateDelivered, false},
		{"unknown behaves like pending", DeliveryState(""), DeliveryStateInTransit, true},
		{"invalid target", DeliveryStatePending, DeliveryState("Lost"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Fatalf("%s -> %s: got=%v want=%v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
