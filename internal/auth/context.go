package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/perfcycle/review-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        domain.UserRole
	CompanyID   uuid.UUID
	AccessToken string
}

type contextKey string

const userContextKey contextKey = "userContext"
const companyFilterKey contextKey = "companyFilter"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRole) bool {
	return u.Role == role
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an admin for their company
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// IsManager checks if user is an admin or manager
func (u *UserContext) IsManager() bool {
	return u.HasAnyRole(domain.RoleAdmin, domain.RoleManager)
}

// CanAccessCompany checks if user can access data for a specific company
func (u *UserContext) CanAccessCompany(companyID uuid.UUID) bool {
	return u.CompanyID == companyID
}

// CompanyFilter represents the effective company filter for queries.
// This is set by middleware based on the authenticated user.
type CompanyFilter struct {
	CompanyID uuid.UUID
}

// WithCompanyFilter adds company filter to the context
func WithCompanyFilter(ctx context.Context, filter *CompanyFilter) context.Context {
	return context.WithValue(ctx, companyFilterKey, filter)
}

// CompanyFilterFromContext extracts company filter from the context
func CompanyFilterFromContext(ctx context.Context) (*CompanyFilter, bool) {
	filter, ok := ctx.Value(companyFilterKey).(*CompanyFilter)
	return filter, ok
}

// GetEffectiveCompanyFilter returns the company ID to filter queries by.
// This should be used by repositories to apply multi-tenant filtering.
// Returns uuid.Nil when no user context is present so that queries made
// outside an authenticated request match nothing rather than everything.
func GetEffectiveCompanyFilter(ctx context.Context) uuid.UUID {
	if filter, ok := CompanyFilterFromContext(ctx); ok && filter != nil {
		return filter.CompanyID
	}

	if userCtx, ok := FromContext(ctx); ok {
		return userCtx.CompanyID
	}

	return uuid.Nil
}
