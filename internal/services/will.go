package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/models"
	"github.com/diewo77/go-wills/internal/willdoc"
)

var (
	ErrNotFound     = errors.New("will not found")
	ErrInvalidStep  = errors.New("invalid wizard step")
	ErrNotCompleted = errors.New("will has no generated document yet")
	ErrNoLocalizer  = errors.New("localization is not configured")
)

// ValidationError rejects generation before any rendering is attempted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Localizer produces the will document in a non-English language. The default
// English path never goes through it.
type Localizer interface {
	Localize(ctx context.Context, doc *willdoc.Document, language string) (string, error)
}

// WillService owns the wizard flow: step saves, generation, finalization.
type WillService struct {
	DB  *gorm.DB
	Loc Localizer
	Now func() time.Time
}

func NewWillService(db *gorm.DB, loc Localizer) *WillService {
	return &WillService{DB: db, Loc: loc, Now: time.Now}
}

// StepInput carries one save call's payload. Pointer fields distinguish
// "absent, leave alone" from "present but empty, clear it": a collection sent
// as [] deletes every row, a collection left out is untouched.
type StepInput struct {
	Testator          *TestatorInput        `json:"testator"`
	Beneficiaries     *[]models.Beneficiary `json:"beneficiaries"`
	BankAccounts      *[]models.BankAccount `json:"bankAccounts"`
	InsurancePolicies *[]models.InsurancePolicy `json:"insurancePolicies"`
	Stocks            *[]models.Stock       `json:"stocks"`
	MutualFunds       *[]models.MutualFund  `json:"mutualFunds"`
	Jewellery         *[]models.Jewellery   `json:"jewellery"`
	ImmovableAssets   *[]models.ImmovableAsset `json:"immovableAssets"`
	Executors         *[]models.Executor    `json:"executors"`
	Witnesses         *[]models.Witness     `json:"witnesses"`

	Guardian      *GuardianInput `json:"guardian"`
	MinorChildren *[]string      `json:"minorChildren"`
	Liabilities   *[]string      `json:"liabilities"`

	ResidualClause      *string `json:"residualClause"`
	DateOfWill          *string `json:"dateOfWill"` // "2006-01-02"
	PlaceOfWill         *string `json:"placeOfWill"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type TestatorInput struct {
	FullName   string `json:"fullName"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	Address    string `json:"address"`
	IDNumber   string `json:"idNumber"`
}

type GuardianInput struct {
	Name      string `json:"name"`
	Relation  string `json:"relation"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Condition string `json:"condition"`
}

// Create starts a new draft will for the user.
func (s *WillService) Create(userID uint) (*models.Will, error) {
	w := &models.Will{UserID: userID, Title: "Untitled Will", Status: models.StatusDraft, CurrentStep: StepTestator}
	if err := s.DB.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// WillSummary is the list-view projection.
type WillSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Status           string    `json:"status"`
	CurrentStep      int       `json:"currentStep"`
	BeneficiaryCount int64     `json:"beneficiaryCount"`
	ExecutorCount    int64     `json:"executorCount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// List returns the user's wills, newest first, with child counts.
func (s *WillService) List(userID uint) ([]WillSummary, error) {
	var wills []models.Will
	if err := s.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&wills).Error; err != nil {
		return nil, err
	}
	out := make([]WillSummary, 0, len(wills))
	for _, w := range wills {
		sum := WillSummary{ID: w.ID, Title: w.Title, Status: w.Status, CurrentStep: w.CurrentStep, UpdatedAt: w.UpdatedAt}
		if err := s.DB.Model(&models.Beneficiary{}).Where("will_id = ?", w.ID).Count(&sum.BeneficiaryCount).Error; err != nil {
			return nil, err
		}
		if err := s.DB.Model(&models.Executor{}).Where("will_id = ?", w.ID).Count(&sum.ExecutorCount).Error; err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, nil
}

// Get loads the full aggregate. A will that exists but belongs to someone else
// is reported as not found.
func (s *WillService) Get(userID uint, id string) (*models.Will, error) {
	var w models.Will
	err := s.DB.
		Preload("Testator").
		Preload("Beneficiaries").
		Preload("BankAccounts").
		Preload("InsurancePolicies").
		Preload("Stocks").
		Preload("MutualFunds").
		Preload("Jewellery").
		Preload("ImmovableAssets").
		Preload("Executors").
		Preload("Witnesses").
		Where("id = ? AND user_id = ?", id, userID).
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveStep persists one wizard step's slice of the aggregate in a single
// transaction and advances CurrentStep. Collections present in the input
// replace the stored ones row-by-row: rows the client resent are updated in
// place, rows it dropped are deleted, new rows are inserted.
func (s *WillService) SaveStep(userID uint, id string, step int, in StepInput) (*models.Will, error) {
	if !ValidStep(step) {
		return nil, ErrInvalidStep
	}
	var w models.Will
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"current_step": advanceStep(w.CurrentStep, step)}

		if in.Testator != nil {
			if err := saveTestator(tx, w.ID, *in.Testator); err != nil {
				return err
			}
			// The testator's name becomes the will title unless the user
			// already renamed it.
			if in.Testator.FullName != "" && (w.Title == "" || w.Title == "Untitled Will") {
				updates["title"] = fmt.Sprintf("Will of %s", in.Testator.FullName)
			}
		}
		if in.Beneficiaries != nil {
			if err := syncCollection[models.Beneficiary](tx, w.ID, *in.Beneficiaries); err != nil {
				return err
			}
		}
		if in.BankAccounts != nil {
			if err := syncCollection[models.BankAccount](tx, w.ID, *in.BankAccounts); err != nil {
				return err
			}
		}
		if in.InsurancePolicies != nil {
			if err := syncCollection[models.InsurancePolicy](tx, w.ID, *in.InsurancePolicies); err != nil {
				return err
			}
		}
		if in.Stocks != nil {
			if err := syncCollection[models.Stock](tx, w.ID, *in.Stocks); err != nil {
				return err
			}
		}
		if in.MutualFunds != nil {
			if err := syncCollection[models.MutualFund](tx, w.ID, *in.MutualFunds); err != nil {
				return err
			}
		}
		if in.Jewellery != nil {
			if err := syncCollection[models.Jewellery](tx, w.ID, *in.Jewellery); err != nil {
				return err
			}
		}
		if in.ImmovableAssets != nil {
			if err := syncCollection[models.ImmovableAsset](tx, w.ID, *in.ImmovableAssets); err != nil {
				return err
			}
		}
		if in.Executors != nil {
			if err := syncCollection[models.Executor](tx, w.ID, *in.Executors); err != nil {
				return err
			}
		}
		if in.Witnesses != nil {
			if err := syncCollection[models.Witness](tx, w.ID, *in.Witnesses); err != nil {
				return err
			}
		}

		if in.Guardian != nil {
			updates["guardian_name"] = in.Guardian.Name
			updates["guardian_relation"] = in.Guardian.Relation
			updates["guardian_address"] = in.Guardian.Address
			updates["guardian_phone"] = in.Guardian.Phone
			updates["guardian_email"] = in.Guardian.Email
			updates["guardian_condition"] = in.Guardian.Condition
		}
		if in.MinorChildren != nil {
			v, err := jsonList(*in.MinorChildren)
			if err != nil {
				return err
			}
			updates["minor_children"] = v
		}
		if in.Liabilities != nil {
			v, err := jsonList(*in.Liabilities)
			if err != nil {
				return err
			}
			updates["liabilities"] = v
		}
		if in.ResidualClause != nil {
			updates["residual_clause"] = *in.ResidualClause
		}
		if in.DateOfWill != nil {
			if *in.DateOfWill == "" {
				updates["date_of_will"] = nil
			} else {
				t, err := time.Parse("2006-01-02", *in.DateOfWill)
				if err != nil {
					return fmt.Errorf("invalid dateOfWill %q: %w", *in.DateOfWill, err)
				}
				updates["date_of_will"] = t
			}
		}
		if in.PlaceOfWill != nil {
			updates["place_of_will"] = *in.PlaceOfWill
		}
		if in.SpecialInstructions != nil {
			updates["special_instructions"] = *in.SpecialInstructions
		}

		return tx.Model(&models.Will{}).Where("id = ?", w.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// jsonList encodes a string list for the serializer:json columns; map-based
// updates bypass gorm's field serializers, so the encoding happens here.
func jsonList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// saveTestator replaces the single testator row wholesale.
func saveTestator(tx *gorm.DB, willID string, in TestatorInput) error {
	if err := tx.Where("will_id = ?", willID).Delete(&models.Testator{}).Error; err != nil {
		return err
	}
	t := models.Testator{
		WillID:     willID,
		FullName:   in.FullName,
		Age:        in.Age,
		Occupation: in.Occupation,
		Address:    in.Address,
		IDNumber:   in.IDNumber,
	}
	return tx.Create(&t).Error
}

// syncCollection reconciles a will's stored collection with the full desired
// list the client sent. Rows are matched by id: resent rows update in place,
// omitted rows are deleted, rows without an id (or with an unknown one) are
// inserted. This keeps row identities stable across saves, which matters
// because assets reference beneficiaries by id.
func syncCollection[T any, PT interface {
	*T
	Row() *models.Owned
}](tx *gorm.DB, willID string, incoming []T) error {
	var existing []T
	if err := tx.Where("will_id = ?", willID).Find(&existing).Error; err != nil {
		return err
	}
	existingIDs := make(map[string]bool, len(existing))
	for i := range existing {
		existingIDs[PT(&existing[i]).Row().ID] = true
	}
	kept := make(map[string]bool, len(incoming))
	for i := range incoming {
		row := PT(&incoming[i]).Row()
		row.WillID = willID
		if row.ID != "" {
			kept[row.ID] = true
		}
	}
	var zero T
	for id := range existingIDs {
		if !kept[id] {
			if err := tx.Where("id = ? AND will_id = ?", id, willID).Delete(&zero).Error; err != nil {
				return err
			}
		}
	}
	for i := range incoming {
		row := PT(&incoming[i]).Row()
		if row.ID != "" && existingIDs[row.ID] {
			if err := tx.Save(&incoming[i]).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&incoming[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks the minimum-cardinality rules that gate generation.
func (s *WillService) Validate(w *models.Will) error {
	var problems []string
	if w.Testator == nil || w.Testator.FullName == "" {
		problems = append(problems, "testator details are required")
	}
	if len(w.Beneficiaries) == 0 {
		problems = append(problems, "at least one beneficiary is required")
	}
	if len(w.Executors) == 0 {
		problems = append(problems, "at least one executor is required")
	}
	named := 0
	for _, wit := range w.Witnesses {
		if wit.Name != "" {
			named++
		}
	}
	if named < 2 {
		problems = append(problems, "at least two witnesses with names are required")
	}
	if w.CurrentStep < StepReview {
		problems = append(problems, "complete the wizard before generating")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Generate renders the will document. The English path is the deterministic
// template and is persisted onto the aggregate (generatedHtml, generatedAt,
// status COMPLETED). Any other language goes through the Localizer and is
// returned without being persisted, so a failed or odd translation never
// clobbers the stored English document.
func (s *WillService) Generate(ctx context.Context, userID uint, id, language string) (string, error) {
	w, err := s.Get(userID, id)
	if err != nil {
		return "", err
	}
	if err := s.Validate(w); err != nil {
		return "", err
	}
	now := s.Now()
	doc := BuildDocument(w, now)
	doc.Normalize()

	if language != "" && language != "en" {
		if s.Loc == nil {
			return "", ErrNoLocalizer
		}
		return s.Loc.Localize(ctx, doc, language)
	}

	html := willdoc.Render(doc)
	err = s.DB.Model(&models.Will{}).Where("id = ?", w.ID).Updates(map[string]any{
		"generated_html": html,
		"generated_at":   now,
		"status":         models.StatusCompleted,
	}).Error
	if err != nil {
		return "", err
	}
	return html, nil
}

// Finalize marks a completed will as final. Only a will that has been
// generated at least once can be finalized.
func (s *WillService) Finalize(userID uint, id string) (*models.Will, error) {
	w, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if w.Status == models.StatusDraft || w.GeneratedHTML == "" {
		return nil, ErrNotCompleted
	}
	if w.Status != models.StatusFinalized {
		if err := s.DB.Model(w).Update("status", models.StatusFinalized).Error; err != nil {
			return nil, err
		}
		w.Status = models.StatusFinalized
	}
	return w, nil
}

// BuildDocument projects the stored aggregate into the template engine's
// input shape.
func BuildDocument(w *models.Will, generatedOn time.Time) *willdoc.Document {
	doc := &willdoc.Document{
		Liabilities:         w.Liabilities,
		ResidualClause:      w.ResidualClause,
		PlaceOfWill:         w.PlaceOfWill,
		SpecialInstructions: w.SpecialInstructions,
		GeneratedOn:         generatedOn,
	}
	if w.DateOfWill != nil {
		doc.DateOfWill = w.DateOfWill.Format("2006-01-02")
	}
	if w.Testator != nil {
		doc.Testator = willdoc.Testator{
			FullName:   w.Testator.FullName,
			Age:        w.Testator.Age,
			Occupation: w.Testator.Occupation,
			Address:    w.Testator.Address,
			IDNumber:   w.Testator.IDNumber,
		}
	}
	for _, b := range w.Beneficiaries {
		doc.Beneficiaries = append(doc.Beneficiaries, willdoc.Beneficiary{
			ID: b.ID, Name: b.Name, Relation: b.Relation, Age: b.Age,
			IDNumber: b.IDNumber, Address: b.Address,
		})
	}
	for _, a := range w.BankAccounts {
		doc.MovableAssets.BankAccounts = append(doc.MovableAssets.BankAccounts, willdoc.BankAccount{
			BankName: a.BankName, AccountNumber: a.AccountNumber, AccountType: a.AccountType,
			Branch: a.Branch, BeneficiaryID: a.BeneficiaryID, SharePercentage: a.SharePercentage,
		})
	}
	for _, a := range w.InsurancePolicies {
		doc.MovableAssets.InsurancePolicies = append(doc.MovableAssets.InsurancePolicies, willdoc.InsurancePolicy{
			PolicyNumber: a.PolicyNumber, Company: a.Company, PolicyType: a.PolicyType,
			SumAssured: a.SumAssured, BeneficiaryID: a.BeneficiaryID, SharePercentage: a.SharePercentage,
		})
	}
	for _, a := range w.Stocks {
		doc.MovableAssets.Stocks = append(doc.MovableAssets.Stocks, willdoc.Stock{
			Company: a.Company, NumberOfShares: a.NumberOfShares, CertificateNumber: a.CertificateNumber,
			AccountNumber: a.AccountNumber, BeneficiaryID: a.BeneficiaryID, SharePercentage: a.SharePercentage,
		})
	}
	for _, a := range w.MutualFunds {
		doc.MovableAssets.MutualFunds = append(doc.MovableAssets.MutualFunds, willdoc.MutualFund{
			FundName: a.FundName, Distributor: a.Distributor, FolioNumber: a.FolioNumber,
			AccountNumber: a.AccountNumber, Units: a.Units, BeneficiaryID: a.BeneficiaryID,
			SharePercentage: a.SharePercentage,
		})
	}
	for _, a := range w.Jewellery {
		doc.PhysicalAssets.Jewellery = append(doc.PhysicalAssets.Jewellery, willdoc.Jewellery{
			Type: a.Type, Description: a.Description, InvoiceNumber: a.InvoiceNumber,
			EstimatedValue: a.EstimatedValue, Location: a.Location,
			BeneficiaryID: a.BeneficiaryID, SharePercentage: a.SharePercentage,
		})
	}
	for _, a := range w.ImmovableAssets {
		doc.ImmovableAssets = append(doc.ImmovableAssets, willdoc.ImmovableAsset{
			PropertyType: a.PropertyType, Name: a.Name, Description: a.Description,
			Location: a.Location, SurveyNumber: a.SurveyNumber, RegistrationNumber: a.RegistrationNumber,
			EstimatedValue: a.EstimatedValue, BeneficiaryID: a.BeneficiaryID, SharePercentage: a.SharePercentage,
		})
	}
	if w.HasGuardian() {
		doc.GuardianClause = &willdoc.GuardianClause{
			Condition: w.GuardianCondition,
			Guardian: willdoc.Guardian{
				Name: w.GuardianName, Relation: w.GuardianRelation, Address: w.GuardianAddress,
				Phone: w.GuardianPhone, Email: w.GuardianEmail,
			},
			MinorChildren: w.MinorChildren,
		}
	}
	for _, e := range w.Executors {
		doc.Executors = append(doc.Executors, willdoc.Executor{
			Name: e.Name, Relation: e.Relation, Address: e.Address,
			Phone: e.Phone, Email: e.Email, IsPrimary: e.IsPrimary,
		})
	}
	for _, wit := range w.Witnesses {
		doc.Witnesses = append(doc.Witnesses, willdoc.Witness{
			Name: wit.Name, Address: wit.Address, Phone: wit.Phone,
			Occupation: wit.Occupation, IDNumber: wit.IDNumber,
		})
	}
	return doc
}
