package handler

import (
	"testing"

	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/model"
)

func TestOwnerFrom(t *testing.T) {
	owner := ownerFrom(&auth.Session{
		UserID: 42,
		Role:   model.RoleCourier,
		Name:   "Kato",
		Email:  "kato@example.com",
	})
	if owner.UID != "42" {
		t.Fatalf("uid=%q", owner.UID)
	}
	if owner.Name != "Kato" || owner.Email != "kato@example.com" {
		t.Fatalf("owner=%+v", owner)
	}
}
