package store

import (
	"context"
	"log/slog"

	"github.com/yubssss/Furniview/internal/domain"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// Addresses returns a copy of the address book.
func (s *Store) Addresses() []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Address(nil), s.addresses...)
}

// AddAddress appends a delivery address. The ID is assigned by the caller as
// a timestamp string; uniqueness is not re-validated.
func (s *Store) AddAddress(ctx context.Context, address domain.Address) []domain.Address {
	s.mu.Lock()
	s.addresses = append(s.addresses, address)
	s.persist(KeyAddresses, s.addresses)
	snapshot := append([]domain.Address(nil), s.addresses...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "address added",
		slog.String("address_id", address.ID),
	)

	return snapshot
}

// UpdateAddress replaces the entry whose ID matches. Returns ErrNotFound if
// absent; the address screens ignore it, stricter callers need not.
func (s *Store) UpdateAddress(ctx context.Context, updated domain.Address) ([]domain.Address, error) {
	s.mu.Lock()
	found := false
	for i := range s.addresses {
		if s.addresses[i].ID == updated.ID {
			s.addresses[i] = updated
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, apperrors.NotFound("address", updated.ID)
	}
	s.persist(KeyAddresses, s.addresses)
	snapshot := append([]domain.Address(nil), s.addresses...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "address updated",
		slog.String("address_id", updated.ID),
	)

	return snapshot, nil
}

// DeleteAddress removes the address by ID. Deleting the currently selected
// address deliberately leaves the selection in place; SelectedAddress reports
// the dangling reference as not found until a new selection is made.
func (s *Store) DeleteAddress(ctx context.Context, id string) ([]domain.Address, error) {
	s.mu.Lock()
	found := false
	for i := range s.addresses {
		if s.addresses[i].ID == id {
			s.addresses = append(s.addresses[:i], s.addresses[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, apperrors.NotFound("address", id)
	}
	s.persist(KeyAddresses, s.addresses)
	snapshot := append([]domain.Address(nil), s.addresses...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "address deleted",
		slog.String("address_id", id),
	)

	return snapshot, nil
}

// SelectAddress records the address as the one to deliver the in-progress
// checkout to. The selection is persisted separately from the address list.
func (s *Store) SelectAddress(ctx context.Context, id string) error {
	s.mu.Lock()
	if !s.hasAddress(id) {
		s.mu.Unlock()
		return apperrors.NotFound("address", id)
	}
	s.selectedAddressID = id
	s.writer.Enqueue(KeySelectedAddress, []byte(id))
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "address selected",
		slog.String("address_id", id),
	)

	return nil
}

// SelectedAddress resolves the current delivery address: the explicitly
// selected one if it still exists, otherwise the default entry. Returns
// ErrNotFound when the selection dangles (its address was deleted) and no
// default exists.
func (s *Store) SelectedAddress() (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.resolveAddressLocked()
	if !ok {
		id := s.selectedAddressID
		if id == "" {
			id = "none"
		}
		return domain.Address{}, apperrors.NotFound("selected address", id)
	}
	return address, nil
}

func (s *Store) hasAddress(id string) bool {
	for i := range s.addresses {
		if s.addresses[i].ID == id {
			return true
		}
	}
	return false
}
