package game

import "errors"

var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientCargo     = errors.New("insufficient cargo space")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInsufficientStock     = errors.New("insufficient market stock")
	ErrInsufficientFuel      = errors.New("insufficient fuel")
	ErrOwnershipLimit        = errors.New("partner stakes cannot exceed 100%")
	ErrAssetUnavailable      = errors.New("no qualifying ship available")
	ErrExternalService       = errors.New("content service failed")
	ErrNoEncounter           = errors.New("no encounter pending")
	ErrEncounterPending      = errors.New("resolve the current encounter first")
	ErrUnknownItem           = errors.New("commodity not traded here")
	ErrUnknownSystem         = errors.New("unknown system")
	ErrUnknownVenture        = errors.New("unknown venture")
	ErrMissionNotFound       = errors.New("mission not found")
	ErrMissionCooldown       = errors.New("mission board is restocking")
	ErrVentureState          = errors.New("venture not in required state")
	ErrDebtLimit             = errors.New("debt limit reached")
	ErrGameOver              = errors.New("game over")
)
