package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kareemadel/printshop-backend/internal/catalog"
)

// BookResolver loads a customer-visible book with its subject and year.
type BookResolver interface {
	VisibleBookLineage(ctx context.Context, bookID uuid.UUID) (*catalog.BookLineage, error)
}

// Service exposes cart mutations bound to a session id.
type Service interface {
	Add(ctx context.Context, sessionID string, bookID uuid.UUID) (*DTO, error)
	Remove(ctx context.Context, sessionID string, bookID uuid.UUID) (*DTO, error)
	List(ctx context.Context, sessionID string) (*DTO, error)
	Clear(ctx context.Context, sessionID string) error
	Items(ctx context.Context, sessionID string) ([]Item, error)
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store cartStore
	books BookResolver
}

// NewService constructs a cart service instance.
func NewService(store cartStore, books BookResolver) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if books == nil {
		return nil, fmt.Errorf("book resolver required")
	}
	return &service{store: store, books: books}, nil
}

// Add resolves the book lineage and appends a snapshot. Adding a book
// already in the cart is a no-op reported through the DTO.
func (s *service) Add(ctx context.Context, sessionID string, bookID uuid.UUID) (*DTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Contains(bookID) {
		return newDTO(cart, true), nil
	}

	lineage, err := s.books.VisibleBookLineage(ctx, bookID)
	if err != nil {
		return nil, err
	}
	cart.Add(Item{
		BookID:      lineage.Book.ID,
		Name:        lineage.Book.Name,
		PageCount:   lineage.Book.PageCount,
		SubjectName: lineage.Subject.Name,
		YearName:    lineage.Year.Name,
	})
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return newDTO(cart, false), nil
}

// Remove drops the matching entry; removing an absent book is a no-op.
func (s *service) Remove(ctx context.Context, sessionID string, bookID uuid.UUID) (*DTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Remove(bookID) {
		if err := s.store.Save(ctx, sessionID, cart); err != nil {
			return nil, err
		}
	}
	return newDTO(cart, false), nil
}

func (s *service) List(ctx context.Context, sessionID string) (*DTO, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newDTO(cart, false), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Items returns the raw snapshots for quoting and invoicing.
func (s *service) Items(ctx context.Context, sessionID string) ([]Item, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}
