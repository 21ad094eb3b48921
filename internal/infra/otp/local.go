package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
)

const (
	CodeLength  = 6
	MaxAttempts = 5
)

// Sender delivers the plain code to the phone.
type Sender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LocalGateway issues and checks codes itself. Only bcrypt hashes are stored.
type LocalGateway struct {
	store  CodeStore
	sender Sender
	ttl    time.Duration
	gen    func() (string, error)
}

func NewLocalGateway(store CodeStore, sender Sender, ttl time.Duration) *LocalGateway {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocalGateway{store: store, sender: sender, ttl: ttl, gen: GenerateCode}
}

func (g *LocalGateway) Send(ctx context.Context, phone string, mode identity.Mode) error {
	code, err := g.gen()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	if err := g.store.Save(ctx, phone, mode, string(hash), g.ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	return g.sender.SendCode(ctx, phone, code)
}

// Check consumes the code on success. Too many wrong guesses burn it.
func (g *LocalGateway) Check(ctx context.Context, phone string, mode identity.Mode, code string) (bool, error) {
	hash, found, err := g.store.Load(ctx, phone, mode)
	if err != nil {
		return false, fmt.Errorf("load otp: %w", err)
	}
	if !found {
		return false, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		n, err := g.store.IncrAttempts(ctx, phone, mode)
		if err == nil && n >= MaxAttempts {
			_ = g.store.Delete(ctx, phone, mode)
		}
		return false, nil
	}

	if err := g.store.Delete(ctx, phone, mode); err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return true, nil
}

// GenerateCode returns a uniformly random zero-padded decimal code.
func GenerateCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// LogSender writes codes to the log instead of sending an SMS.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendCode(_ context.Context, phone, code string) error {
	s.log.Info("otp issued", zap.String("phone", phone), zap.String("code", code))
	return nil
}
