package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OtpStore holds mobile-verification state keyed by (tenant, mobile). Every
// entry carries an explicit expiry; an entry is only alive while
// now < expiresAt, never merely because it is still in the map.
type OtpStore interface {
	GenerateOtp(tenantID, mobileNumber string) (code string, expiresAt time.Time, err error)
	VerifyOtp(tenantID, mobileNumber, code string) (verificationToken string, err error)
	AssertVerified(tenantID, mobileNumber, verificationToken string) error
	ClearVerification(tenantID, mobileNumber string)
}

var (
	ErrOtpExpired          = errors.New("OTP expired. Request a new OTP.")
	ErrOtpInvalid          = errors.New("Invalid OTP.")
	ErrVerificationExpired = errors.New("Mobile verification expired. Verify OTP again.")
	ErrVerificationInvalid = errors.New("Invalid mobile verification token.")
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

type verificationEntry struct {
	token     string
	expiresAt time.Time
}

var _ OtpStore = (*MemoryOtpStore)(nil)

type MemoryOtpStore struct {
	mu            sync.Mutex
	codes         map[string]otpEntry
	verifications map[string]verificationEntry
	ttl           time.Duration
	now           func() time.Time
}

func NewMemoryOtpStore(ttl time.Duration) *MemoryOtpStore {
	return &MemoryOtpStore{
		codes:         make(map[string]otpEntry),
		verifications: make(map[string]verificationEntry),
		ttl:           ttl,
		now:           time.Now,
	}
}

func (s *MemoryOtpStore) GenerateOtp(tenantID, mobileNumber string) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", time.Time{}, err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()
	key := otpKey(tenantID, mobileNumber)
	expiresAt := s.now().Add(s.ttl)
	s.codes[key] = otpEntry{code: code, expiresAt: expiresAt}
	delete(s.verifications, key)
	return code, expiresAt, nil
}

func (s *MemoryOtpStore) VerifyOtp(tenantID, mobileNumber, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(tenantID, mobileNumber)
	entry, ok := s.codes[key]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.codes, key)
		return "", ErrOtpExpired
	}
	if entry.code != code {
		return "", ErrOtpInvalid
	}

	token := uuid.NewString()
	s.verifications[key] = verificationEntry{token: token, expiresAt: entry.expiresAt}
	return token, nil
}

func (s *MemoryOtpStore) AssertVerified(tenantID, mobileNumber, verificationToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(tenantID, mobileNumber)
	entry, ok := s.verifications[key]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.verifications, key)
		return ErrVerificationExpired
	}
	if entry.token != verificationToken {
		return ErrVerificationInvalid
	}
	return nil
}

func (s *MemoryOtpStore) ClearVerification(tenantID, mobileNumber string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := otpKey(tenantID, mobileNumber)
	delete(s.codes, key)
	delete(s.verifications, key)
}

func otpKey(tenantID, mobileNumber string) string {
	return tenantID + "|" + mobileNumber
}
