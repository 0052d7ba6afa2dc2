package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/internal/domains/payment/model"
	"fieldbook/internal/domains/payment/model/dto"
	"fieldbook/internal/domains/payment/repository"
	"fieldbook/shared/constant"
	"fieldbook/shared/failure"
	gModel "fieldbook/shared/model"
	"fieldbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Payment interface {
	Simulate(ctx context.Context, req dto.SimulatePaymentRequest) (dto.SimulatePaymentResponse, error)
}

type serviceImpl struct {
	repo repository.Payment
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Payment, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Simulate validates the card fields, mints a payment reference, and persists
// a succeeded token. No charge ever happens; the reference exists so bookings
// can point at something that looks like a processor id.
func (s *serviceImpl) Simulate(ctx context.Context, req dto.SimulatePaymentRequest) (res dto.SimulatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Simulate")
	defer scope.End()
	defer scope.TraceIfError(err)

	cardNumber := strings.ReplaceAll(req.CardNumber, " ", "")
	if err := validateCard(cardNumber, req.CardExpiry, req.CardCVV, req.CardName); err != nil {
		return res, err
	}

	digest := sha256.Sum256([]byte(cardNumber + strconv.FormatInt(timezone.Now().UnixNano(), 10)))
	paymentID := "pm_" + hex.EncodeToString(digest[:])[:16]

	token := model.PaymentToken{
		ID:        uuid.NewString(),
		PaymentID: paymentID,
		Amount:    req.Amount,
		Currency:  model.DefaultCurrency,
		Status:    model.StatusSucceeded,
		CardLast4: cardNumber[len(cardNumber)-4:],
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	if err = s.repo.Insert(ctx, token); err != nil {
		log.Error().Err(err).Msg("failed to persist payment token")

		return res, fmt.Errorf("failed to persist payment token: %w", err)
	}

	res.PaymentID = paymentID
	res.Message = "Payment processed successfully"

	return res, nil
}

func validateCard(number, expiry, cvv, name string) error {
	if len(number) < 15 || len(number) > 16 || !isDigits(number) {
		return failure.BadRequestFromString("invalid card number") // nolint:wrapcheck
	}

	if len(cvv) < 3 || len(cvv) > 4 || !isDigits(cvv) {
		return failure.BadRequestFromString("invalid CVV") // nolint:wrapcheck
	}

	if len(strings.TrimSpace(name)) < 3 {
		return failure.BadRequestFromString("invalid cardholder name") // nolint:wrapcheck
	}

	expired, err := isExpired(expiry)
	if err != nil {
		return failure.BadRequestFromString("invalid expiry date, expected MM/YY") // nolint:wrapcheck
	}

	if expired {
		return failure.BadRequestFromString("card has expired") // nolint:wrapcheck
	}

	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}

// isExpired treats a card as valid through the last day of its expiry month.
func isExpired(expiry string) (bool, error) {
	parsed, err := timezone.Parse("01/06", expiry)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	endOfMonth := parsed.AddDate(0, 1, 0)

	return !timezone.Now().Before(endOfMonth), nil
}
