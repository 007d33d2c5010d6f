package willdoc

import "time"

// Document is the normalized input to the template engine: a plain value
// decoupled from storage, with the JSON shape the rest of the system (preview
// input, localization prompt) shares. Build one with storage data, call
// Normalize once, then Render.
type Document struct {
	Testator        Testator        `json:"testator"`
	Beneficiaries   []Beneficiary   `json:"beneficiaries"`
	MovableAssets   MovableAssets   `json:"movableAssets"`
	PhysicalAssets  PhysicalAssets  `json:"physicalAssets"`
	ImmovableAssets []ImmovableAsset `json:"immovableAssets"`
	GuardianClause  *GuardianClause `json:"guardianClause,omitempty"`
	Liabilities     []string        `json:"liabilities"`
	Executors       []Executor      `json:"executors"`
	Witnesses       []Witness       `json:"witnesses"`

	ResidualClause      string `json:"residualClause,omitempty"`
	DateOfWill          string `json:"dateOfWill"` // "2006-01-02"
	PlaceOfWill         string `json:"placeOfWill"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`

	// GeneratedOn is the clock injected by the caller; the footer and any
	// missing date fall back to it, which keeps rendering deterministic.
	GeneratedOn time.Time `json:"-"`
}

type Testator struct {
	FullName   string `json:"fullName"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	Address    string `json:"address"`
	IDNumber   string `json:"idNumber"`
}

type Beneficiary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Age      int    `json:"age"`
	IDNumber string `json:"idNumber"`
	Address  string `json:"address"`
}

type MovableAssets struct {
	BankAccounts      []BankAccount     `json:"bankAccounts"`
	InsurancePolicies []InsurancePolicy `json:"insurancePolicies"`
	Stocks            []Stock           `json:"stocks"`
	MutualFunds       []MutualFund      `json:"mutualFunds"`
}

type PhysicalAssets struct {
	Jewellery []Jewellery `json:"jewellery"`
}

type BankAccount struct {
	BankName        string `json:"bankName"`
	AccountNumber   string `json:"accountNumber"`
	AccountType     string `json:"accountType"`
	Branch          string `json:"branch"`
	BeneficiaryID   string `json:"beneficiaryId"`
	SharePercentage string `json:"sharePercentage,omitempty"`
}

type InsurancePolicy struct {
	PolicyNumber    string  `json:"policyNumber"`
	Company         string  `json:"company"`
	PolicyType      string  `json:"policyType"`
	SumAssured      float64 `json:"sumAssured"`
	BeneficiaryID   string  `json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type Stock struct {
	Company           string `json:"company"`
	NumberOfShares    int    `json:"numberOfShares"`
	CertificateNumber string `json:"certificateNumber,omitempty"`
	AccountNumber     string `json:"accountNumber,omitempty"`
	BeneficiaryID     string `json:"beneficiaryId"`
	SharePercentage   string `json:"sharePercentage,omitempty"`
}

type MutualFund struct {
	FundName        string  `json:"fundName"`
	Distributor     string  `json:"distributor,omitempty"`
	FolioNumber     string  `json:"folioNumber"`
	AccountNumber   string  `json:"accountNumber,omitempty"`
	Units           float64 `json:"units"`
	BeneficiaryID   string  `json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type Jewellery struct {
	Type            string  `json:"type,omitempty"`
	Description     string  `json:"description"`
	InvoiceNumber   string  `json:"invoiceNumber,omitempty"`
	EstimatedValue  float64 `json:"estimatedValue"`
	Location        string  `json:"location"`
	BeneficiaryID   string  `json:"beneficiaryId"`
	SharePercentage string  `json:"sharePercentage,omitempty"`
}

type ImmovableAsset struct {
	PropertyType       string  `json:"propertyType"`
	Name               string  `json:"name,omitempty"`
	Description        string  `json:"description"`
	Location           string  `json:"location"`
	SurveyNumber       string  `json:"surveyNumber,omitempty"`
	RegistrationNumber string  `json:"registrationNumber,omitempty"`
	EstimatedValue     float64 `json:"estimatedValue"`
	BeneficiaryID      string  `json:"beneficiaryId"`
	SharePercentage    string  `json:"sharePercentage,omitempty"`
}

type GuardianClause struct {
	Condition     string   `json:"condition,omitempty"`
	Guardian      Guardian `json:"guardian"`
	MinorChildren []string `json:"minorChildren"`
}

type Guardian struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

type Executor struct {
	Name      string `json:"name"`
	Relation  string `json:"relation"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

type Witness struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
	IDNumber   string `json:"idNumber"`
}

// Normalize applies the default policy in one place instead of scattering
// fallbacks through the section renderers: missing share percentages become
// 100, a missing date of will becomes the generation date, and a missing
// residual clause gets the fixed boilerplate. Safe to call more than once.
func (d *Document) Normalize() {
	for i := range d.MovableAssets.BankAccounts {
		defaultShare(&d.MovableAssets.BankAccounts[i].SharePercentage)
	}
	for i := range d.MovableAssets.InsurancePolicies {
		defaultShare(&d.MovableAssets.InsurancePolicies[i].SharePercentage)
	}
	for i := range d.MovableAssets.Stocks {
		defaultShare(&d.MovableAssets.Stocks[i].SharePercentage)
	}
	for i := range d.MovableAssets.MutualFunds {
		defaultShare(&d.MovableAssets.MutualFunds[i].SharePercentage)
	}
	for i := range d.PhysicalAssets.Jewellery {
		defaultShare(&d.PhysicalAssets.Jewellery[i].SharePercentage)
	}
	for i := range d.ImmovableAssets {
		defaultShare(&d.ImmovableAssets[i].SharePercentage)
	}
	if d.GeneratedOn.IsZero() {
		d.GeneratedOn = time.Now()
	}
	if d.DateOfWill == "" {
		d.DateOfWill = d.GeneratedOn.Format("2006-01-02")
	}
}

func defaultShare(s *string) {
	if *s == "" {
		*s = "100"
	}
}

// Date parses DateOfWill, falling back to the generation date when it does
// not parse.
func (d *Document) Date() time.Time {
	t, err := time.Parse("2006-01-02", d.DateOfWill)
	if err != nil {
		return d.GeneratedOn
	}
	return t
}

// BeneficiaryName resolves an asset's weak beneficiary reference. A dangling
// id degrades to a placeholder rather than failing the render.
func (d *Document) BeneficiaryName(id string) string {
	for _, b := range d.Beneficiaries {
		if b.ID == id {
			return b.Name
		}
	}
	return "Unknown Beneficiary"
}

// ValidWitnesses drops rows without a name; only those appear in the
// attestation section.
func (d *Document) ValidWitnesses() []Witness {
	out := make([]Witness, 0, len(d.Witnesses))
	for _, w := range d.Witnesses {
		if w.Name != "" {
			out = append(out, w)
		}
	}
	return out
}

func (d *Document) hasMovableAssets() bool {
	return len(d.MovableAssets.BankAccounts) > 0 ||
		len(d.MovableAssets.InsurancePolicies) > 0 ||
		len(d.MovableAssets.Stocks) > 0 ||
		len(d.MovableAssets.MutualFunds) > 0
}
