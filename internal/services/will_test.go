package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/models"
	"github.com/diewo77/go-wills/internal/willdoc"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: "Test User"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}

func newTestService(db *gorm.DB) *WillService {
	svc := NewWillService(db, nil)
	svc.Now = func() time.Time { return time.Date(2024, 3, 22, 10, 0, 0, 0, time.UTC) }
	return svc
}

func strPtr(s string) *string { return &s }

// fills every generation prerequisite
func seedCompleteWill(t *testing.T, svc *WillService, userID uint) *models.Will {
	t.Helper()
	w, err := svc.Create(userID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SaveStep(userID, w.ID, StepTestator, StepInput{
		Testator: &TestatorInput{FullName: "Jane Doe", Age: 40, Occupation: "Engineer", Address: "12 Elm St", IDNumber: "ID123"},
	}); err != nil {
		t.Fatalf("save testator: %v", err)
	}
	if _, err := svc.SaveStep(userID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{{Name: "John Doe", Relation: "Son", Age: 20, IDNumber: "ID456", Address: "12 Elm St"}},
	}); err != nil {
		t.Fatalf("save beneficiaries: %v", err)
	}
	if _, err := svc.SaveStep(userID, w.ID, StepAssets, StepInput{}); err != nil {
		t.Fatalf("save assets: %v", err)
	}
	if _, err := svc.SaveStep(userID, w.ID, StepExecutors, StepInput{
		Executors: &[]models.Executor{{Name: "Emily Stone", Relation: "Friend", IsPrimary: true}},
	}); err != nil {
		t.Fatalf("save executors: %v", err)
	}
	if _, err := svc.SaveStep(userID, w.ID, StepWitnesses, StepInput{
		Witnesses: &[]models.Witness{{Name: "Alan Park"}, {Name: "Bella Cruz"}},
	}); err != nil {
		t.Fatalf("save witnesses: %v", err)
	}
	out, err := svc.SaveStep(userID, w.ID, StepReview, StepInput{
		DateOfWill:  strPtr("2024-03-21"),
		PlaceOfWill: strPtr("Springfield"),
	})
	if err != nil {
		t.Fatalf("save review: %v", err)
	}
	return out
}

func TestCollectionReplace(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "replace@test")
	svc := newTestService(db)
	w, err := svc.Create(user.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{{Name: "A"}, {Name: "B"}},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	got, err := svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{{Name: "C"}},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(got.Beneficiaries) != 1 || got.Beneficiaries[0].Name != "C" {
		t.Fatalf("expected exactly [C], got %+v", got.Beneficiaries)
	}
	var count int64
	if err := db.Model(&models.Beneficiary{}).Where("will_id = ?", w.ID).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected 1 row, got %d err=%v", count, err)
	}
}

func TestCollectionReplaceKeepsRowIdentity(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "identity@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	got, err := svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{{Name: "A"}},
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	id := got.Beneficiaries[0].ID
	if id == "" {
		t.Fatal("expected generated id")
	}

	// resend the same row with an edit: the id must survive
	edited := got.Beneficiaries[0]
	edited.Relation = "Daughter"
	got, err = svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{edited},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(got.Beneficiaries) != 1 || got.Beneficiaries[0].ID != id || got.Beneficiaries[0].Relation != "Daughter" {
		t.Fatalf("expected updated row with same id, got %+v", got.Beneficiaries)
	}
}

func TestAbsentCollectionIsUntouched(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "absent@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	if _, err := svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{
		Beneficiaries: &[]models.Beneficiary{{Name: "A"}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// a save that does not mention beneficiaries must not clear them
	got, err := svc.SaveStep(user.ID, w.ID, StepReview, StepInput{PlaceOfWill: strPtr("Springfield")})
	if err != nil {
		t.Fatalf("save review: %v", err)
	}
	if len(got.Beneficiaries) != 1 {
		t.Fatalf("beneficiaries clobbered: %+v", got.Beneficiaries)
	}
}

func TestMonotonicStep(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "step@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	for step := StepTestator; step <= StepWitnesses; step++ {
		if _, err := svc.SaveStep(user.ID, w.ID, step, StepInput{}); err != nil {
			t.Fatalf("save step %d: %v", step, err)
		}
	}
	got, _ := svc.Get(user.ID, w.ID)
	if got.CurrentStep != StepReview {
		t.Fatalf("expected step %d, got %d", StepReview, got.CurrentStep)
	}

	// re-saving an earlier step must not lower progress
	got, err := svc.SaveStep(user.ID, w.ID, StepBeneficiaries, StepInput{})
	if err != nil {
		t.Fatalf("re-save: %v", err)
	}
	if got.CurrentStep != StepReview {
		t.Fatalf("currentStep regressed to %d", got.CurrentStep)
	}
}

func TestTitleFollowsTestator(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "title@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	got, err := svc.SaveStep(user.ID, w.ID, StepTestator, StepInput{
		Testator: &TestatorInput{FullName: "Jane Doe", Age: 40},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got.Title != "Will of Jane Doe" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestOwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@test")
	other := seedUser(t, db, "other@test")
	svc := newTestService(db)
	w, _ := svc.Create(owner.ID)

	if _, err := svc.Get(other.ID, w.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign will, got %v", err)
	}
	if _, err := svc.SaveStep(other.ID, w.ID, StepTestator, StepInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on save, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), other.ID, w.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on generate, got %v", err)
	}
}

func TestGenerateGating(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "gating@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	_, err := svc.Generate(context.Background(), user.ID, w.ID, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, want := range []string{"testator", "beneficiary", "executor", "witness"} {
		found := false
		for _, p := range verr.Problems {
			if strings.Contains(p, want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing problem about %s in %v", want, verr.Problems)
		}
	}
}

func TestGenerateWitnessGating(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "witnessgate@test")
	svc := newTestService(db)
	w := seedCompleteWill(t, svc, user.ID)

	// one unnamed witness row does not count
	if _, err := svc.SaveStep(user.ID, w.ID, StepWitnesses, StepInput{
		Witnesses: &[]models.Witness{{Name: "Alan Park"}, {Name: "", Address: "somewhere"}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Generate(context.Background(), user.ID, w.ID, ""); err == nil {
		t.Fatal("expected rejection with one named witness")
	}

	// exactly two named witnesses is sufficient
	if _, err := svc.SaveStep(user.ID, w.ID, StepWitnesses, StepInput{
		Witnesses: &[]models.Witness{{Name: "Alan Park"}, {Name: "Bella Cruz"}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Generate(context.Background(), user.ID, w.ID, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestGenerateEnglishPersists(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "generate@test")
	svc := newTestService(db)
	w := seedCompleteWill(t, svc, user.ID)

	html, err := svc.Generate(context.Background(), user.ID, w.ID, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"OF JANE DOE", "John Doe", "21st day of March, 2024", "Springfield"} {
		if !strings.Contains(html, want) {
			t.Fatalf("generated HTML missing %q", want)
		}
	}

	got, _ := svc.Get(user.ID, w.ID)
	if got.Status != models.StatusCompleted {
		t.Fatalf("status = %s", got.Status)
	}
	if got.GeneratedHTML != html || got.GeneratedAt == nil {
		t.Fatal("generated document not persisted")
	}
}

type stubLocalizer struct {
	html string
	err  error
}

func (s *stubLocalizer) Localize(_ context.Context, _ *willdoc.Document, _ string) (string, error) {
	return s.html, s.err
}

func TestGenerateLocalizedNotPersisted(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "localized@test")
	svc := newTestService(db)
	svc.Loc = &stubLocalizer{html: "<div>hola</div>"}
	w := seedCompleteWill(t, svc, user.ID)

	// establish the stored English document first
	english, err := svc.Generate(context.Background(), user.ID, w.ID, "en")
	if err != nil {
		t.Fatalf("generate en: %v", err)
	}

	html, err := svc.Generate(context.Background(), user.ID, w.ID, "es")
	if err != nil {
		t.Fatalf("generate es: %v", err)
	}
	if html != "<div>hola</div>" {
		t.Fatalf("unexpected localized html %q", html)
	}
	got, _ := svc.Get(user.ID, w.ID)
	if got.GeneratedHTML != english {
		t.Fatal("localization overwrote the stored English document")
	}
}

func TestGenerateLocalizationFailureKeepsEnglish(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "locfail@test")
	svc := newTestService(db)
	stub := &stubLocalizer{err: errors.New("boom")}
	svc.Loc = stub
	w := seedCompleteWill(t, svc, user.ID)

	english, err := svc.Generate(context.Background(), user.ID, w.ID, "")
	if err != nil {
		t.Fatalf("generate en: %v", err)
	}
	if _, err := svc.Generate(context.Background(), user.ID, w.ID, "fr"); err == nil {
		t.Fatal("expected localization failure")
	}
	got, _ := svc.Get(user.ID, w.ID)
	if got.GeneratedHTML != english || got.Status != models.StatusCompleted {
		t.Fatal("failed localization must leave the English document intact")
	}
}

func TestFinalize(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "finalize@test")
	svc := newTestService(db)
	w := seedCompleteWill(t, svc, user.ID)

	if _, err := svc.Finalize(user.ID, w.ID); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted before generation, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), user.ID, w.ID, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, err := svc.Finalize(user.ID, w.ID)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if got.Status != models.StatusFinalized {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestListWithCounts(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "list@test")
	svc := newTestService(db)
	w := seedCompleteWill(t, svc, user.ID)

	summaries, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one will, got %d", len(summaries))
	}
	s := summaries[0]
	if s.ID != w.ID || s.BeneficiaryCount != 1 || s.ExecutorCount != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.Title != "Will of Jane Doe" {
		t.Fatalf("title = %q", s.Title)
	}
}

func TestSaveStepScalarFields(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "scalars@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	got, err := svc.SaveStep(user.ID, w.ID, StepReview, StepInput{
		Guardian:            &GuardianInput{Name: "Grace Hall", Relation: "Sister"},
		MinorChildren:       &[]string{"Tom Doe"},
		Liabilities:         &[]string{"Home loan with First Bank"},
		ResidualClause:      strPtr("Everything else to my son."),
		SpecialInstructions: strPtr("Donate my books."),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !got.HasGuardian() || got.GuardianName != "Grace Hall" {
		t.Fatalf("guardian not saved: %+v", got)
	}
	if len(got.MinorChildren) != 1 || got.MinorChildren[0] != "Tom Doe" {
		t.Fatalf("minor children = %v", got.MinorChildren)
	}
	if len(got.Liabilities) != 1 {
		t.Fatalf("liabilities = %v", got.Liabilities)
	}
	if got.ResidualClause == "" || got.SpecialInstructions == "" {
		t.Fatal("scalar fields not saved")
	}
}

func TestSaveStepRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "badinput@test")
	svc := newTestService(db)
	w, _ := svc.Create(user.ID)

	if _, err := svc.SaveStep(user.ID, w.ID, 0, StepInput{}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := svc.SaveStep(user.ID, w.ID, 8, StepInput{}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := svc.SaveStep(user.ID, w.ID, StepReview, StepInput{DateOfWill: strPtr("21/03/2024")}); err == nil {
		t.Fatal("expected date parse error")
	}
}
