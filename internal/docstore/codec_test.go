package docstore

import (
	"testing"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/model"
)

func TestDecodeDeliveryRequest(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want model.DeliveryRequest
	}{
		{
			"complete document",
			map[string]interface{}{
				"Product":        "Raw Cashew Nuts",
				"Source":         "Lagos",
				"Destination":    "Kigali",
				"Quantity":       int64(40),
				"Client Contact": "+250788123456",
				"status":         "AcceptedRequest",
			},
			model.DeliveryRequest{
				ID: "r1", Product: "Raw Cashew Nuts", Source: "Lagos",
				Destination: "Kigali", Quantity: 40,
				ClientContact: "+250788123456", Status: model.RequestStatusAccepted,
			},
		},
		{
			"missing status reads as pending",
			map[string]interface{}{"Product": "Tea"},
			model.DeliveryRequest{ID: "r1", Product: "Tea", Status: model.RequestStatusPending},
		},
		{
			"quantity stored as string",
			map[string]interface{}{"Quantity": "15"},
			model.DeliveryRequest{ID: "r1", Quantity: 15, Status: model.RequestStatusPending},
		},
		{
			"quantity stored as double",
			map[string]interface{}{"Quantity": float64(7)},
			model.DeliveryRequest{ID: "r1", Quantity: 7, Status: model.RequestStatusPending},
		},
		{
			"empty document",
			map[string]interface{}{},
			model.DeliveryRequest{ID: "r1", Status: model.RequestStatusPending},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeDeliveryRequest("r1", tt.data)
			if got != tt.want {
				t.Fatalf("got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestDecodeDeliveryStatusMissingDate(t *testing.T) {
	got := decodeDeliveryStatus("s1", map[string]interface{}{
		"RequestID": "r1",
		"Product":   "Tea",
		"status":    "In Transit",
	})
	if !got.Date.IsZero() {
		t.Fatalf("Date=%v, want zero time", got.Date)
	}
	if got.Status != model.DeliveryStateInTransit {
		t.Fatalf("Status=%q", got.Status)
	}
}

func TestCoerceDate(t *testing.T) {
	ref := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   interface{}
		want time.Time
	}{
		{"nil", nil, time.Time{}},
		{"time value", ref, ref},
		{"epoch int64", ref.Unix(), time.Unix(ref.Unix(), 0)},
		{"epoch double", float64(ref.Unix()), time.Unix(ref.Unix(), 0)},
		{"seconds map", map[string]interface{}{"seconds": ref.Unix(), "nanos": int64(0)}, time.Unix(ref.Unix(), 0)},
		{"empty map", map[string]interface{}{}, time.Time{}},
		{"unreadable string", "yesterday", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceDate(tt.in); !got.Equal(tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestStatusDocRoundTrip(t *testing.T) {
	ds := model.DeliveryStatus{
		ID:            "s1",
		RequestID:     "r1",
		Product:       "Kente Fabric Rolls",
		Quantity:      3,
		ClientContact: "+233201112222",
		Date:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:        model.DeliveryStatePending,
	}
	got := decodeDeliveryStatus("s1", statusDoc(&ds))
	if got != ds {
		t.Fatalf("got=%+v want=%+v", got, ds)
	}
}
