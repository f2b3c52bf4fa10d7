package store

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/yubssss/Furniview/internal/domain"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// Cart returns a copy of the current cart lines.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Cart(nil), s.cart...)
}

// Total returns the current cart total (sum of price*quantity).
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// AddToCart merges the product into the cart: an existing line's quantity is
// incremented by 1, otherwise a new line is inserted with quantity 1. Always
// succeeds against in-memory state.
func (s *Store) AddToCart(ctx context.Context, item domain.CartLine) domain.Cart {
	s.mu.Lock()
	if i := s.cart.FindLine(item.ID); i >= 0 {
		s.cart[i].Quantity++
	} else {
		item.Quantity = 1
		s.cart = append(s.cart, item)
	}
	s.persist(KeyCart, s.cart)
	snapshot := append(domain.Cart(nil), s.cart...)
	s.mu.Unlock()

	s.publish(ctx, "cart.updated", func() error { return s.events.CartUpdated(ctx, snapshot) })

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", item.ID),
		slog.Int("cart_lines", len(snapshot)),
	)

	return snapshot
}

// RemoveFromCart deletes the line with the given product ID. Returns
// ErrNotFound if no such line exists; callers free to treat that as a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, id string) (domain.Cart, error) {
	s.mu.Lock()
	i := s.cart.FindLine(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, apperrors.NotFound("cart line", id)
	}
	s.cart = append(s.cart[:i], s.cart[i+1:]...)
	s.persist(KeyCart, s.cart)
	snapshot := append(domain.Cart(nil), s.cart...)
	s.mu.Unlock()

	s.publish(ctx, "cart.updated", func() error { return s.events.CartUpdated(ctx, snapshot) })

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", id),
	)

	return snapshot, nil
}

// IncreaseQuantity adjusts the line's quantity by +1.
func (s *Store) IncreaseQuantity(ctx context.Context, id string) (domain.Cart, error) {
	return s.adjustQuantity(ctx, id, +1)
}

// DecreaseQuantity adjusts the line's quantity by -1. A line reaching zero is
// removed entirely (filter-out, not clamp); decrementing after removal
// reports ErrNotFound.
func (s *Store) DecreaseQuantity(ctx context.Context, id string) (domain.Cart, error) {
	return s.adjustQuantity(ctx, id, -1)
}

func (s *Store) adjustQuantity(ctx context.Context, id string, delta int) (domain.Cart, error) {
	s.mu.Lock()
	i := s.cart.FindLine(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, apperrors.NotFound("cart line", id)
	}

	s.cart[i].Quantity += delta
	quantity := s.cart[i].Quantity
	if quantity <= 0 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	}
	s.persist(KeyCart, s.cart)
	snapshot := append(domain.Cart(nil), s.cart...)
	s.mu.Unlock()

	s.publish(ctx, "cart.updated", func() error { return s.events.CartUpdated(ctx, snapshot) })

	s.logger.InfoContext(ctx, "cart line quantity adjusted",
		slog.String("product_id", id),
		slog.Int("quantity", max(quantity, 0)),
	)

	return snapshot, nil
}

// ClearCart empties the cart. Invoked on order placement.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = domain.Cart{}
	s.persist(KeyCart, s.cart)
	s.mu.Unlock()

	s.publish(ctx, "cart.cleared", func() error { return s.events.CartCleared(ctx) })

	s.logger.InfoContext(ctx, "cart cleared")
}

// Favorites returns a copy of the favorites list.
func (s *Store) Favorites() domain.Favorites {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Favorites(nil), s.favorites...)
}

// AddToFavorites inserts the product snapshot if it is not already present
// (set semantics); adding a duplicate is a silent no-op.
func (s *Store) AddToFavorites(ctx context.Context, product domain.Favorite) domain.Favorites {
	s.mu.Lock()
	if !s.favorites.Contains(product.ID) {
		s.favorites = append(s.favorites, product)
		s.persist(KeyFavorites, s.favorites)
	}
	snapshot := append(domain.Favorites(nil), s.favorites...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "product added to favorites",
		slog.String("product_id", product.ID),
	)

	return snapshot
}

// RemoveFromFavorites removes the product by ID. Returns ErrNotFound if
// absent.
func (s *Store) RemoveFromFavorites(ctx context.Context, id string) (domain.Favorites, error) {
	s.mu.Lock()
	found := false
	for i := range s.favorites {
		if s.favorites[i].ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, apperrors.NotFound("favorite", id)
	}
	s.persist(KeyFavorites, s.favorites)
	snapshot := append(domain.Favorites(nil), s.favorites...)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "product removed from favorites",
		slog.String("product_id", id),
	)

	return snapshot, nil
}

// itoa for millisecond IDs logged as strings.
func itoa(v int64) string { return strconv.FormatInt(v, 10) }
