package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Role string

const (
	RoleBusiness Role = "business"
	RoleSupplier Role = "supplier"
	RoleCourier  Role = "courier"
)

var allowedRoles = [...]Role{RoleBusiness, RoleSupplier, RoleCourier}

func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

type User struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:120;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`
	Role         Role   `gorm:"size:32;not null;index"`
	Location     string `gorm:"size:255"`

	// business
	BusinessType string `gorm:"column:business_type;size:120"`
	TradeFocus   string `gorm:"column:trade_focus;size:120"`

	// supplier
	CompanyName       string     `gorm:"column:company_name;size:120"`
	ProductCategories StringList `gorm:"column:product_categories;type:json"`
	Capacity          int        `gorm:"column:capacity"`

	// courier
	TransportModes StringList `gorm:"column:transport_modes;type:json"`
	RegionsCovered StringList `gorm:"column:regions_covered;type:json"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
