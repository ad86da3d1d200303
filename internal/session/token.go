package session

import (
	"fmt"
	"strconv"
	"time"

	"covoit/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the backend's bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64      `json:"userId,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      model.Role `json:"role,omitempty"`
	FirstName string     `json:"prenom,omitempty"`
	LastName  string     `json:"nom,omitempty"`
}

// ParseToken decodes a token without checking its signature. The backend
// verifies signatures; the client only needs identity and expiry.
func ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	return claims, nil
}

// Expiry returns the expiry instant, or the zero time when the token has none.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}

// Profile builds the best profile the claims allow. Spring style tokens carry
// the email as subject.
func (c *Claims) Profile() model.Profile {
	email := c.Email
	if email == "" {
		email = c.Subject
	}
	id := c.UserID
	if id == 0 {
		if n, err := strconv.ParseInt(c.Subject, 10, 64); err == nil {
			id = n
		}
	}
	return model.Profile{
		ID:       id,
		Email:    email,
		Role:     c.Role,
		Identity: model.Identity{FirstName: c.FirstName, LastName: c.LastName},
	}
}
