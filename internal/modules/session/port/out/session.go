package out

import (
	"context"

	"focusdeck/internal/modules/session/domain"
)

// SessionStore is owner-scoped: lookups never return another owner's
// record, so a foreign id behaves exactly like a missing one.
type SessionStore interface {
	Insert(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, owner, id string) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, owner, id string) error
	List(ctx context.Context, owner string) ([]domain.Session, error)
}
