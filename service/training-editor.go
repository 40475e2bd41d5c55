package service

import (
	"context"

	"campadmin/model/restmodel"
)

type TrainingEditor struct {
	*DraftEditor[restmodel.RegistrationFormConfig]
	Event restmodel.SeasonEvent
}

// TrainingPatch carries the scalar fields of a training config; nil fields are left alone.
type TrainingPatch struct {
	IsActive              *bool    `json:"isActive"`
	RequiresPayment       *bool    `json:"requiresPayment"`
	RequiresQualification *bool    `json:"requiresQualification"`
	BasePrice             *float64 `json:"basePrice"`
}

func (p TrainingPatch) Apply(config *restmodel.RegistrationFormConfig) {
	if p.IsActive != nil {
		config.IsActive = *p.IsActive
	}
	if p.RequiresPayment != nil {
		config.RequiresPayment = *p.RequiresPayment
	}
	if p.RequiresQualification != nil {
		config.RequiresQualification = *p.RequiresQualification
	}
	if p.BasePrice != nil {
		config.Pricing.BasePrice = *p.BasePrice
	}
}

type TrainingSaveFunc func(ctx context.Context, event restmodel.SeasonEvent, config restmodel.RegistrationFormConfig) (restmodel.RegistrationFormConfig, error)

func trainingDescriptor(event restmodel.SeasonEvent, save TrainingSaveFunc) EditorDescriptor[restmodel.RegistrationFormConfig] {
	return EditorDescriptor[restmodel.RegistrationFormConfig]{
		Kind: "training",
		Clone: func(c restmodel.RegistrationFormConfig) restmodel.RegistrationFormConfig {
			return c.Clone()
		},
		Validate: validateTrainingConfig,
		Save: func(ctx context.Context, draft restmodel.RegistrationFormConfig, key ConfigKey) (restmodel.RegistrationFormConfig, ConfigKey, error) {
			saved, err := save(ctx, event, draft)
			if err != nil {
				return draft, key, err
			}
			return saved, Persisted(event.EventId), nil
		},
	}
}

func NewTrainingEditor(event restmodel.SeasonEvent, config restmodel.RegistrationFormConfig, save TrainingSaveFunc) *TrainingEditor {
	return &TrainingEditor{
		DraftEditor: NewDraftEditor(trainingDescriptor(event, save), Persisted(event.EventId), config),
		Event:       event,
	}
}

func validateTrainingConfig(c restmodel.RegistrationFormConfig) ValidationErrors {
	errs := validateStruct(c)
	for _, p := range c.Pricing.Packages {
		if !(PackageCandidate{Name: p.Name, Price: p.Price}).Valid() {
			errs["packages"] = "Every package needs a name and a price above zero"
			break
		}
	}
	return errs
}

func (e *TrainingEditor) Apply(patch TrainingPatch) {
	e.Patch(patch.Apply)
}

// AddPackage returns false when the candidate is rejected (blank name or price not above zero).
func (e *TrainingEditor) AddPackage(candidate PackageCandidate) bool {
	added := false
	e.Patch(func(c *restmodel.RegistrationFormConfig) {
		c.Pricing.Packages, added = AddPackage(c.Pricing.Packages, candidate)
	})
	return added
}

func (e *TrainingEditor) RemovePackage(id string) {
	e.Patch(func(c *restmodel.RegistrationFormConfig) {
		c.Pricing.Packages = RemovePackage(c.Pricing.Packages, id)
	})
}

func (e *TrainingEditor) MovePackage(index int, direction MoveDirection) {
	e.Patch(func(c *restmodel.RegistrationFormConfig) {
		c.Pricing.Packages = MovePackage(c.Pricing.Packages, index, direction)
	})
}
