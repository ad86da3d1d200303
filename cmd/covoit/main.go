package main

import (
	"covoit/internal/command"
	"covoit/internal/command/admin"
	"covoit/internal/command/auth"
	"covoit/internal/command/listing"
	"covoit/internal/command/reservation"
	"covoit/internal/command/vehicle"
)

func main() {
	commands := append(auth.Commands(),
		listing.Command(),
		vehicle.Command(),
		reservation.Command(),
		admin.Command(),
	)
	command.Main("covoit", "Share rides and book company vehicles", commands...)
}
