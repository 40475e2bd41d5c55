package service

import (
	"strings"

	"campadmin/model/restmodel"
	"campadmin/utils"

	"github.com/google/uuid"
)

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

type PackageCandidate struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

func (c PackageCandidate) Valid() bool {
	return strings.TrimSpace(c.Name) != "" && c.Price > 0
}

// The ledger functions never modify their input; each returns a fresh slice.

func AddPackage(packages []restmodel.PricingPackage, candidate PackageCandidate) ([]restmodel.PricingPackage, bool) {
	if !candidate.Valid() {
		return packages, false
	}
	output := make([]restmodel.PricingPackage, len(packages), len(packages)+1)
	copy(output, packages)
	output = append(output, restmodel.PricingPackage{
		Id:          uuid.NewString(),
		Name:        strings.TrimSpace(candidate.Name),
		Price:       candidate.Price,
		Description: strings.TrimSpace(candidate.Description),
	})
	return output, true
}

func RemovePackage(packages []restmodel.PricingPackage, id string) []restmodel.PricingPackage {
	return utils.Filter(packages, func(p restmodel.PricingPackage) bool {
		return p.Id != id
	})
}

// MovePackage swaps the package at index with its neighbour; moves past either end are no-ops.
func MovePackage(packages []restmodel.PricingPackage, index int, direction MoveDirection) []restmodel.PricingPackage {
	output := make([]restmodel.PricingPackage, len(packages))
	copy(output, packages)
	target := index
	switch direction {
	case MoveUp:
		target = index - 1
	case MoveDown:
		target = index + 1
	default:
		return output
	}
	if index < 0 || index >= len(output) || target < 0 || target >= len(output) {
		return output
	}
	output[index], output[target] = output[target], output[index]
	return output
}
