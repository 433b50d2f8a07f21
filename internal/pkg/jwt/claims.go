package jwt

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// Principal is the authenticated actor extracted from the access token.
type Principal struct {
	UserID    string
	CompanyID string
	IsAdmin   bool
}

// PrincipalFromContext reads the verified claims. It fails closed: a token
// without a company_id claim is rejected rather than defaulted to any
// tenant, and platform admins must address a tenant explicitly.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Principal{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	isAdmin, _ := claims["is_admin"].(bool)

	return Principal{UserID: userID, CompanyID: companyID, IsAdmin: isAdmin}, nil
}
