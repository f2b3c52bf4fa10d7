package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/yubssss/Furniview/internal/domain"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// Cards returns a copy of the saved payment cards.
func (s *Store) Cards() []domain.PaymentCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PaymentCard(nil), s.cards...)
}

// AddCard validates the raw card input, derives the stored representation
// (brand plus masked number, never the full PAN) and makes it the selected
// payment method. The card selection itself is session state and is not
// persisted; only the card list is.
func (s *Store) AddCard(ctx context.Context, input domain.CardInput) (domain.PaymentCard, error) {
	if err := input.Validate(); err != nil {
		return domain.PaymentCard{}, err
	}

	card := input.DeriveCard(time.Now().UnixMilli())

	s.mu.Lock()
	s.cards = append(s.cards, card)
	s.selectedCardID = card.ID
	s.persist(KeyPaymentCards, s.cards)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "payment card added",
		slog.String("card_id", itoa(card.ID)),
		slog.String("brand", card.Brand),
	)

	return card, nil
}

// DeleteCard removes a saved card. When the deleted card was the selected
// payment method the selection falls back to the first remaining card, or to
// cash on delivery when none remain.
func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	s.mu.Lock()
	found := false
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return apperrors.NotFound("payment card", itoa(id))
	}
	if s.selectedCardID == id {
		if len(s.cards) > 0 {
			s.selectedCardID = s.cards[0].ID
		} else {
			s.selectedCardID = 0
		}
	}
	s.persist(KeyPaymentCards, s.cards)
	remaining := len(s.cards)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "payment card deleted",
		slog.String("card_id", itoa(id)),
		slog.Int("remaining", remaining),
	)

	return nil
}

// SelectCard makes the card the active payment method for checkout.
func (s *Store) SelectCard(ctx context.Context, id int64) error {
	s.mu.Lock()
	found := false
	for i := range s.cards {
		if s.cards[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return apperrors.NotFound("payment card", itoa(id))
	}
	s.selectedCardID = id
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "payment card selected",
		slog.String("card_id", itoa(id)),
	)

	return nil
}

// SelectCashOnDelivery clears any card selection.
func (s *Store) SelectCashOnDelivery(ctx context.Context) {
	s.mu.Lock()
	s.selectedCardID = 0
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "cash on delivery selected")
}

// SelectedPayment reports the active payment method: the label used on order
// records and, when a card is selected, a copy of that card.
func (s *Store) SelectedPayment() (string, *domain.PaymentCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolvePaymentLocked()
}
