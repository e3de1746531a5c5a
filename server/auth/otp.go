// Package auth holds the login one-time-code store. Session issuance is
// handled upstream; this keeps only the short-lived codes.
package auth

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/store/cache"
)

const (
	codeTTL     = 5 * time.Minute
	maxAttempts = 5
)

// OTPStore issues and verifies one-time login codes. Codes expire after
// five minutes and are consumed on first successful verification.
type OTPStore struct {
	cache *cache.Cache
	now   func() time.Time
}

type codeEntry struct {
	Code      string `json:"code"`
	Attempts  int    `json:"attempts"`
	ExpiresAt int64  `json:"expires_at"`
}

// NewOTPStore creates an OTP store.
func NewOTPStore() *OTPStore {
	return &OTPStore{
		cache: cache.New(4096, codeTTL),
		now:   time.Now,
	}
}

// SetClock overrides the time source. The cache shares it so tests can
// step through expirations.
func (s *OTPStore) SetClock(now func() time.Time) {
	s.now = now
	s.cache.SetClock(now)
}

// Issue generates a fresh 6-digit code for the identity, replacing any
// outstanding one.
func (s *OTPStore) Issue(identity string) (string, error) {
	if identity == "" {
		return "", errors.New("empty identity")
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errors.Wrap(err, "generate code")
	}
	code := fmt.Sprintf("%06d", binary.BigEndian.Uint64(buf[:])%1000000)

	entry, err := marshalEntry(&codeEntry{
		Code:      code,
		ExpiresAt: s.now().Add(codeTTL).Unix(),
	})
	if err != nil {
		return "", err
	}
	s.cache.Set(otpKey(identity), entry, codeTTL)
	return code, nil
}

// Verify checks a code. A correct code is consumed; too many wrong
// attempts invalidate the outstanding code.
func (s *OTPStore) Verify(identity, code string) bool {
	key := otpKey(identity)
	blob, ok := s.cache.Get(key)
	if !ok {
		return false
	}
	entry, err := unmarshalEntry(blob)
	if err != nil {
		s.cache.Delete(key)
		return false
	}

	if entry.Code != code {
		entry.Attempts++
		if entry.Attempts >= maxAttempts {
			s.cache.Delete(key)
			return false
		}
		// Rewriting the entry must not extend the code's life.
		remaining := time.Unix(entry.ExpiresAt, 0).Sub(s.now())
		if remaining <= 0 {
			s.cache.Delete(key)
			return false
		}
		if updated, err := marshalEntry(entry); err == nil {
			s.cache.Set(key, updated, remaining)
		}
		return false
	}

	s.cache.Delete(key)
	return true
}

func otpKey(identity string) string {
	return "otp:" + identity
}

func marshalEntry(entry *codeEntry) ([]byte, error) {
	blob, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.Wrap(err, "marshal otp entry")
	}
	return blob, nil
}

func unmarshalEntry(blob []byte) (*codeEntry, error) {
	entry := &codeEntry{}
	if err := json.Unmarshal(blob, entry); err != nil {
		return nil, errors.Wrap(err, "unmarshal otp entry")
	}
	return entry, nil
}
