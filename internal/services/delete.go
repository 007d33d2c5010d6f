package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-wills/internal/mailer"
	"github.com/diewo77/go-wills/internal/models"
)

const (
	otpTTL         = 10 * time.Minute
	otpMaxAttempts = 5
)

var (
	ErrNoCode          = errors.New("no deletion code on file")
	ErrCodeExpired     = errors.New("deletion code expired")
	ErrTooManyAttempts = errors.New("too many incorrect attempts")
	ErrCodeMismatch    = errors.New("incorrect deletion code")
)

// DeleteFlow gates will deletion behind an emailed one-time code.
type DeleteFlow struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
	Now    func() time.Time
}

func NewDeleteFlow(db *gorm.DB, m mailer.Mailer) *DeleteFlow {
	return &DeleteFlow{DB: db, Mailer: m, Now: time.Now}
}

// Request issues a fresh 6-digit code for the will, replacing any outstanding
// one, and mails it to the owner. If the mail cannot be sent the code is
// discarded so a code the user never received cannot sit on file.
func (f *DeleteFlow) Request(userID uint, willID string) error {
	var w models.Will
	if err := f.DB.Where("id = ? AND user_id = ?", willID, userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var user models.User
	if err := f.DB.First(&user, userID).Error; err != nil {
		return err
	}

	code, err := newCode()
	if err != nil {
		return err
	}
	otp := models.DeleteOTP{
		WillID:    willID,
		Code:      code,
		ExpiresAt: f.Now().Add(otpTTL),
		Attempts:  0,
		CreatedAt: f.Now(),
	}
	// upsert: a new request always replaces the outstanding code
	err = f.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("will_id = ?", willID).Delete(&models.DeleteOTP{}).Error; err != nil {
			return err
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return err
	}

	body := mailer.DeletionCodeBody(user.Name, w.Title, code, otp.ExpiresAt)
	if err := f.Mailer.Send(user.Email, "Confirm deletion of "+w.Title, body); err != nil {
		// the user never got the code; remove it and surface the failure
		f.DB.Where("will_id = ?", willID).Delete(&models.DeleteOTP{})
		return fmt.Errorf("send deletion code: %w", err)
	}
	return nil
}

// Verify checks a submitted code and, on match, deletes the will aggregate.
// Checks fail closed in a fixed order: missing code, expiry, lockout,
// mismatch. Expiry and lockout invalidate the code; a plain mismatch only
// increments the attempt counter.
func (f *DeleteFlow) Verify(userID uint, willID, code string) error {
	var w models.Will
	if err := f.DB.Where("id = ? AND user_id = ?", willID, userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var otp models.DeleteOTP
	if err := f.DB.Where("will_id = ?", willID).First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoCode
		}
		return err
	}
	if f.Now().After(otp.ExpiresAt) {
		f.DB.Where("will_id = ?", willID).Delete(&models.DeleteOTP{})
		return ErrCodeExpired
	}
	if otp.Attempts >= otpMaxAttempts {
		f.DB.Where("will_id = ?", willID).Delete(&models.DeleteOTP{})
		return ErrTooManyAttempts
	}
	if otp.Code != code {
		f.DB.Model(&models.DeleteOTP{}).Where("will_id = ?", willID).
			Update("attempts", gorm.Expr("attempts + 1"))
		return ErrCodeMismatch
	}

	return f.DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&models.Testator{}, &models.Beneficiary{}, &models.BankAccount{},
			&models.InsurancePolicy{}, &models.Stock{}, &models.MutualFund{},
			&models.Jewellery{}, &models.ImmovableAsset{},
			&models.Executor{}, &models.Witness{}, &models.DeleteOTP{},
		} {
			if err := tx.Where("will_id = ?", willID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", willID).Delete(&models.Will{}).Error
	})
}

func newCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
