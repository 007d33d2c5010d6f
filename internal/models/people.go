package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Testator is the person making the will. At most one per will; each save
// replaces it wholesale.
type Testator struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	WillID     string `gorm:"not null;uniqueIndex;size:36" json:"-"`
	FullName   string `gorm:"not null" json:"fullName"`
	Age        int    `gorm:"not null" json:"age"`
	Occupation string `json:"occupation"`
	Address    string `json:"address"`
	IDNumber   string `json:"idNumber"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (t *Testator) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Beneficiary receives assets. Asset rows point at it through BeneficiaryID.
type Beneficiary struct {
	Owned      `gorm:"embedded"`
	Name       string  `gorm:"not null" json:"name"`
	Relation   string  `json:"relation"`
	Age        int     `json:"age"`
	IDNumber   string  `json:"idNumber"`
	Address    string  `json:"address"`
	Percentage float64 `json:"percentage,omitempty"`
}

// Executor carries out the will's instructions.
type Executor struct {
	Owned     `gorm:"embedded"`
	Name      string `gorm:"not null" json:"name"`
	Relation  string `json:"relation"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// Witness attests the execution of the will. Rows without a name are ignored
// at render time; generation requires at least two named witnesses.
type Witness struct {
	Owned      `gorm:"embedded"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
	IDNumber   string `json:"idNumber"`
}
