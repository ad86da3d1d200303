package model

// VehicleKind selects the personal or company fleet endpoints.
type VehicleKind string

const (
	PersonalVehicle VehicleKind = "personnel"
	CompanyVehicle  VehicleKind = "entreprise"
)

type VehicleStatus string

const (
	VehicleInService    VehicleStatus = "EN_SERVICE"
	VehicleInRepair     VehicleStatus = "EN_REPARATION"
	VehicleOutOfService VehicleStatus = "HORS_SERVICE"
)

type Vehicle struct {
	ID           int64         `json:"id,omitempty"`
	Plate        string        `json:"immatriculation" validate:"required,plate_fr"`
	Brand        string        `json:"marque" validate:"required,min=1,max=50"`
	Model        string        `json:"modele" validate:"required,min=1,max=50"`
	Seats        int           `json:"nbPlaces" validate:"required,min=1,max=9"`
	Category     string        `json:"categorie,omitempty" validate:"omitempty,max=50"`
	Motorization string        `json:"motorisation,omitempty" validate:"omitempty,max=50"`
	PhotoURL     string        `json:"photo,omitempty" validate:"omitempty,url"`
	Status       VehicleStatus `json:"statut,omitempty" validate:"omitempty,oneof=EN_SERVICE EN_REPARATION HORS_SERVICE"`
}
