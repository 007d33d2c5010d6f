package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Will status values. COMPLETED is reached once a document has been generated
// at least once; FINALIZED is an explicit user action on a completed will.
const (
	StatusDraft     = "DRAFT"
	StatusCompleted = "COMPLETED"
	StatusFinalized = "FINALIZED"
)

// Will is the aggregate root. Child collections reference it by WillID and are
// owned exclusively by it: a save of a collection always carries the full
// desired list. CurrentStep records wizard progress and only ever goes up.
type Will struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint   `gorm:"not null;index" json:"userId"`
	Title       string `gorm:"not null;default:'Untitled Will'" json:"title"`
	Status      string `gorm:"not null;default:'DRAFT'" json:"status"`
	CurrentStep int    `gorm:"not null;default:1" json:"currentStep"`

	Testator          *Testator         `gorm:"foreignKey:WillID" json:"testator,omitempty"`
	Beneficiaries     []Beneficiary     `gorm:"foreignKey:WillID" json:"beneficiaries"`
	BankAccounts      []BankAccount     `gorm:"foreignKey:WillID" json:"bankAccounts"`
	InsurancePolicies []InsurancePolicy `gorm:"foreignKey:WillID" json:"insurancePolicies"`
	Stocks            []Stock           `gorm:"foreignKey:WillID" json:"stocks"`
	MutualFunds       []MutualFund      `gorm:"foreignKey:WillID" json:"mutualFunds"`
	Jewellery         []Jewellery       `gorm:"foreignKey:WillID" json:"jewellery"`
	ImmovableAssets   []ImmovableAsset  `gorm:"foreignKey:WillID" json:"immovableAssets"`
	Executors         []Executor        `gorm:"foreignKey:WillID" json:"executors"`
	Witnesses         []Witness         `gorm:"foreignKey:WillID" json:"witnesses"`

	// Guardian clause is flattened onto the aggregate; present only when a
	// guardian name was supplied.
	GuardianName      string   `json:"guardianName,omitempty"`
	GuardianRelation  string   `json:"guardianRelation,omitempty"`
	GuardianAddress   string   `json:"guardianAddress,omitempty"`
	GuardianPhone     string   `json:"guardianPhone,omitempty"`
	GuardianEmail     string   `json:"guardianEmail,omitempty"`
	GuardianCondition string   `json:"guardianCondition,omitempty"`
	MinorChildren     []string `gorm:"serializer:json" json:"minorChildren,omitempty"`

	Liabilities []string `gorm:"serializer:json" json:"liabilities,omitempty"`

	ResidualClause      string     `json:"residualClause,omitempty"`
	DateOfWill          *time.Time `json:"dateOfWill,omitempty"`
	PlaceOfWill         string     `json:"placeOfWill,omitempty"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`

	GeneratedHTML string     `gorm:"type:text" json:"generatedHtml,omitempty"`
	GeneratedAt   *time.Time `json:"generatedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *Will) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// HasGuardian reports whether a guardian clause should be rendered.
func (w *Will) HasGuardian() bool { return w.GuardianName != "" }
