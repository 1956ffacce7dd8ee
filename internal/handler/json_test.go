package handler

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{"number", `{"capacity": 10}`, 10, false},
		{"quoted number", `{"capacity": "10"}`, 10, false},
		{"quoted with spaces", `{"capacity": " 500 "}`, 500, false},
		{"null", `{"capacity": null}`, 0, false},
		{"empty string", `{"capacity": ""}`, 0, false},
		{"absent", `{}`, 0, false},
		{"word", `{"capacity": "lots"}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Capacity FlexInt `json:"capacity"`
			}
			err := json.Unmarshal([]byte(tt.input), &body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && body.Capacity != tt.want {
				t.Fatalf("got=%d want=%d", body.Capacity, tt.want)
			}
		})
	}
}

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexID
		wantErr bool
	}{
		{"number", `{"user_id": 42}`, 42, false},
		{"quoted number", `{"user_id": "42"}`, 42, false},
		{"null", `{"user_id": null}`, 0, false},
		{"negative", `{"user_id": "-1"}`, 0, true},
		{"word", `{"user_id": "abc"}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				UserID FlexID `json:"user_id"`
			}
			err := json.Unmarshal([]byte(tt.input), &body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && body.UserID != tt.want {
				t.Fatalf("got=%d want=%d", body.UserID, tt.want)
			}
		})
	}
}
