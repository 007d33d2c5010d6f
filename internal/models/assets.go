package models

// Asset rows all carry a BeneficiaryID: a weak reference into the will's
// beneficiaries collection. It is resolved at render time and falls back to
// "Unknown Beneficiary" when it no longer matches anything.
//
// SharePercentage is stored as entered ("50" etc.); empty means 100.

type BankAccount struct {
	Owned           `gorm:"embedded"`
	BankName        string `gorm:"not null" json:"bankName"`
	AccountNumber   string `json:"accountNumber"`
	AccountType     string `json:"accountType"`
	Branch          string `json:"branch"`
	BeneficiaryID   string `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage string `json:"sharePercentage,omitempty"`
}

type InsurancePolicy struct {
	Owned           `gorm:"embedded"`
	PolicyNumber    string  `json:"policyNumber"`
	Company         string  `gorm:"not null" json:"company"`
	PolicyType      string  `json:"policyType"`
	SumAssured      float64 `json:"sumAssured"`
	BeneficiaryID   string  `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type Stock struct {
	Owned             `gorm:"embedded"`
	Company           string `gorm:"not null" json:"company"`
	NumberOfShares    int    `json:"numberOfShares"`
	CertificateNumber string `json:"certificateNumber,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	BeneficiaryID     string `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage   string `json:"sharePercentage,omitempty"`
}

type MutualFund struct {
	Owned           `gorm:"embedded"`
	FundName        string  `gorm:"not null" json:"fundName"`
	Distributor     string  `json:"distributor,omitempty"`
	FolioNumber     string  `json:"folioNumber"`
	AccountNumber   string  `json:"accountNumber,omitempty"`
	Units           float64 `json:"units"`
	BeneficiaryID   string  `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type Jewellery struct {
	Owned           `gorm:"embedded"`
	Type            string  `json:"type,omitempty"`
	Description     string  `gorm:"not null" json:"description"`
	InvoiceNumber   string  `json:"invoiceNumber,omitempty"`
	EstimatedValue  float64 `json:"estimatedValue"`
	Location        string  `json:"location"`
	BeneficiaryID   string  `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type ImmovableAsset struct {
	Owned              `gorm:"embedded"`
	PropertyType       string  `gorm:"not null" json:"propertyType"`
	Name               string  `json:"name,omitempty"`
	Description        string  `json:"description"`
	Location           string  `json:"location"`
	SurveyNumber       string  `json:"surveyNumber,omitempty"`
	RegistrationNumber string  `json:"registrationNumber,omitempty"`
	EstimatedValue     float64 `json:"estimatedValue"`
	BeneficiaryID      string  `gorm:"size:36" json:"beneficiaryId"`
	SharePercentage    string  `json:"sharePercentage,omitempty"`
}
