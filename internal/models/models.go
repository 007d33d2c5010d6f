package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Owned is embedded by every row that belongs to a will. Rows are identified
// by an opaque UUID so clients can reference them across saves (assets point
// at beneficiaries by id).
type Owned struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	WillID string `gorm:"not null;index;size:36" json:"-"`
}

func (o *Owned) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Row exposes the embedded identity to the collection sync helper.
func (o *Owned) Row() *Owned { return o }

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{}, &Will{}, &Testator{}, &Beneficiary{},
		&BankAccount{}, &InsurancePolicy{}, &Stock{}, &MutualFund{},
		&Jewellery{}, &ImmovableAsset{},
		&Executor{}, &Witness{}, &DeleteOTP{},
	}
}
