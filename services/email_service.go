// File: /services/email_service.go
package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"notedefrais-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer

	// In-memory storage for verification codes
	verificationCodes map[string]VerificationCode
	mutex             sync.RWMutex
}

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	service := &EmailService{
		config:            cfg,
		dialer:            dialer,
		verificationCodes: make(map[string]VerificationCode),
	}

	// Start cleanup goroutine
	go service.cleanupExpiredCodes()

	return service
}

// Generate a random 4-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 4)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// Send verification email
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	// Check if there's already a valid unused code
	es.mutex.RLock()
	existingCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	var code string
	if exists && !existingCode.Used && time.Now().Before(existingCode.ExpiresAt) {
		// Reuse existing valid code
		code = existingCode.Code
		fmt.Printf("📧 Reusing existing verification code for %s: %s\n", email, code)
	} else {
		// Generate new code
		code = es.generateVerificationCode()

		// Store verification code (expires in 10 minutes)
		es.mutex.Lock()
		es.verificationCodes[email] = VerificationCode{
			Code:      code,
			Email:     email,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Used:      false,
		}
		es.mutex.Unlock()
		fmt.Printf("📧 Generated new verification code for %s: %s\n", email, code)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "NoteDeFrais - Vérification de votre adresse email")

	textBody := fmt.Sprintf(`
Bonjour %s,

Bienvenue sur NoteDeFrais ! Merci de vérifier votre adresse email pour finaliser votre inscription.

Votre code de vérification est : %s

Ce code expire dans 10 minutes.

Si vous n'avez pas créé de compte, vous pouvez ignorer cet email.

L'équipe NoteDeFrais
    `, name, code)

	m.SetBody("text/plain", textBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("📧 Verification email sent to %s with code: %s\n", email, code)
	return code, nil
}

// Verify the code
func (es *EmailService) VerifyCode(email, inputCode string) bool {
	es.mutex.RLock()
	storedCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	if !exists {
		fmt.Printf("❌ No verification code found for email: %s\n", email)
		return false
	}

	if storedCode.Used {
		fmt.Printf("❌ Verification code already used for: %s\n", email)
		return false
	}

	if time.Now().After(storedCode.ExpiresAt) {
		fmt.Printf("❌ Verification code expired for: %s\n", email)
		es.mutex.Lock()
		delete(es.verificationCodes, email)
		es.mutex.Unlock()
		return false
	}

	if storedCode.Code != inputCode {
		fmt.Printf("❌ Invalid verification code for %s\n", email)
		return false
	}

	// Mark code as used
	es.mutex.Lock()
	storedCode.Used = true
	es.verificationCodes[email] = storedCode
	es.mutex.Unlock()

	fmt.Printf("✅ Verification code accepted for %s\n", email)
	return true
}

// GetVerificationCode returns the pending code for an email (debug endpoint only)
func (es *EmailService) GetVerificationCode(email string) (string, bool) {
	es.mutex.RLock()
	defer es.mutex.RUnlock()

	stored, exists := es.verificationCodes[email]
	if !exists || stored.Used || time.Now().After(stored.ExpiresAt) {
		return "", false
	}
	return stored.Code, true
}

// SendPendingRatesReminder notifies the manager address that rates are waiting
// for a decision
func (es *EmailService) SendPendingRatesReminder(pendingCount int) error {
	if es.config.ManagerEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", es.config.ManagerEmail)
	m.SetHeader("Subject", "NoteDeFrais - Tarifs en attente de validation")

	textBody := fmt.Sprintf(`
Bonjour,

%d tarif(s) sont en attente de validation dans NoteDeFrais.

Merci de vous connecter pour les approuver ou les rejeter.

L'équipe NoteDeFrais
    `, pendingCount)

	m.SetBody("text/plain", textBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}

	fmt.Printf("📧 Pending rates reminder sent (%d pending)\n", pendingCount)
	return nil
}

// Cleanup expired codes periodically
func (es *EmailService) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		es.mutex.Lock()
		now := time.Now()
		for email, code := range es.verificationCodes {
			if now.After(code.ExpiresAt) || code.Used {
				delete(es.verificationCodes, email)
			}
		}
		es.mutex.Unlock()
	}
}
