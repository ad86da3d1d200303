package model

type Identity struct {
	FirstName string `json:"prenom" validate:"required,min=1,max=100"`
	LastName  string `json:"nom" validate:"required,min=1,max=100"`
}

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

type AccountStatus string

const (
	StatusActive      AccountStatus = "ACTIF"
	StatusBanned      AccountStatus = "BANNI"
	StatusDeleted     AccountStatus = "SUPPRIME"
	StatusNonVerified AccountStatus = "NON_VERIFIE"
)

type Profile struct {
	ID     int64         `json:"id"`
	Email  string        `json:"email"`
	Phone  string        `json:"telephone,omitempty"`
	Role   Role          `json:"role,omitempty"`
	Status AccountStatus `json:"statut,omitempty"`
	Identity
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ProfileUpdate struct {
	Phone string `json:"telephone,omitempty" validate:"omitempty,e164"`
	Identity
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"motDePasse" validate:"required,min=1"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"motDePasse" validate:"required,min=8,max=72"`
	Phone    string `json:"telephone,omitempty" validate:"omitempty,e164"`
	Identity
}

type StatusUpdate struct {
	Status AccountStatus `json:"statut" validate:"required,oneof=ACTIF BANNI SUPPRIME NON_VERIFIE"`
}

type AuthResponse struct {
	Token string `json:"token"`
}
