package service

import (
	"context"

	"campadmin/model/restmodel"
)

type TournamentEditor struct {
	*DraftEditor[restmodel.TournamentSpecificConfig]
}

// TournamentPatch carries the scalar fields of a tournament config; nil fields are left alone.
// The name goes through SetIdentity so its validation runs.
type TournamentPatch struct {
	TournamentYear       *int     `json:"tournamentYear"`
	DisplayName          *string  `json:"displayName"`
	Description          *string  `json:"description"`
	RegistrationDeadline *string  `json:"registrationDeadline"`
	PaymentDeadline      *string  `json:"paymentDeadline"`
	RequiresRoster       *bool    `json:"requiresRoster"`
	RequiresInsurance    *bool    `json:"requiresInsurance"`
	RefundPolicy         *string  `json:"refundPolicy"`
	RulesDocumentUrl     *string  `json:"rulesDocumentUrl"`
	ScheduleDocumentUrl  *string  `json:"scheduleDocumentUrl"`
	TournamentFee        *float64 `json:"tournamentFee"`
	IsActive             *bool    `json:"isActive"`
}

func (p TournamentPatch) Apply(c *restmodel.TournamentSpecificConfig) {
	setIfPresent(&c.TournamentYear, p.TournamentYear)
	setIfPresent(&c.DisplayName, p.DisplayName)
	setIfPresent(&c.Description, p.Description)
	setIfPresent(&c.RegistrationDeadline, p.RegistrationDeadline)
	setIfPresent(&c.PaymentDeadline, p.PaymentDeadline)
	setIfPresent(&c.RequiresRoster, p.RequiresRoster)
	setIfPresent(&c.RequiresInsurance, p.RequiresInsurance)
	setIfPresent(&c.RefundPolicy, p.RefundPolicy)
	setIfPresent(&c.RulesDocumentUrl, p.RulesDocumentUrl)
	setIfPresent(&c.ScheduleDocumentUrl, p.ScheduleDocumentUrl)
	setIfPresent(&c.TournamentFee, p.TournamentFee)
	setIfPresent(&c.IsActive, p.IsActive)
}

func setIfPresent[A any](target *A, value *A) {
	if value != nil {
		*target = *value
	}
}

type TournamentSaveFunc func(ctx context.Context, config restmodel.TournamentSpecificConfig, key ConfigKey) (restmodel.TournamentSpecificConfig, ConfigKey, error)

func tournamentDescriptor(save TournamentSaveFunc) EditorDescriptor[restmodel.TournamentSpecificConfig] {
	return EditorDescriptor[restmodel.TournamentSpecificConfig]{
		Kind:          "tournament",
		IdentityField: "tournamentName",
		IdentityLabel: "Tournament name",
		Identity: func(c restmodel.TournamentSpecificConfig) string {
			return c.TournamentName
		},
		SetIdentity: func(c *restmodel.TournamentSpecificConfig, name string) {
			c.TournamentName = name
		},
		Clone: func(c restmodel.TournamentSpecificConfig) restmodel.TournamentSpecificConfig {
			return c.Clone()
		},
		Validate: func(c restmodel.TournamentSpecificConfig) ValidationErrors {
			return validateStruct(c)
		},
		Save: save,
	}
}

func NewTournamentEditor(key ConfigKey, config restmodel.TournamentSpecificConfig, save TournamentSaveFunc) *TournamentEditor {
	return &TournamentEditor{
		DraftEditor: NewDraftEditor(tournamentDescriptor(save), key, config),
	}
}

func (e *TournamentEditor) Apply(patch TournamentPatch) {
	e.Patch(patch.Apply)
}

func (e *TournamentEditor) list(c *restmodel.TournamentSpecificConfig, field ListField) *[]string {
	switch field {
	case ListDates:
		return &c.TournamentDates
	case ListLocations:
		return &c.Locations
	case ListDivisions:
		return &c.Divisions
	case ListAgeGroups:
		return &c.AgeGroups
	}
	return nil
}

func (e *TournamentEditor) AddListItem(field ListField, value string) bool {
	added := false
	e.Patch(func(c *restmodel.TournamentSpecificConfig) {
		if items := e.list(c, field); items != nil {
			*items, added = appendItem(field, *items, value)
		}
	})
	return added
}

func (e *TournamentEditor) RemoveListItem(field ListField, index int) bool {
	removed := false
	e.Patch(func(c *restmodel.TournamentSpecificConfig) {
		if items := e.list(c, field); items != nil {
			*items, removed = removeItemAt(*items, index)
		}
	})
	return removed
}

// cleanTournament strips whitespace and blank list entries before the config goes to the backend.
func cleanTournament(c restmodel.TournamentSpecificConfig) restmodel.TournamentSpecificConfig {
	c = c.Clone()
	c.TournamentName = trim(c.TournamentName)
	c.DisplayName = trim(c.DisplayName)
	c.Description = trim(c.Description)
	c.RefundPolicy = trim(c.RefundPolicy)
	c.RulesDocumentUrl = trim(c.RulesDocumentUrl)
	c.ScheduleDocumentUrl = trim(c.ScheduleDocumentUrl)
	c.TournamentDates = cleanList(c.TournamentDates)
	c.Locations = cleanList(c.Locations)
	c.Divisions = cleanList(c.Divisions)
	c.AgeGroups = cleanList(c.AgeGroups)
	return c
}

// normalizeTournamentDates cuts backend timestamps down to plain dates.
func normalizeTournamentDates(c restmodel.TournamentSpecificConfig) restmodel.TournamentSpecificConfig {
	c.RegistrationDeadline = normalizeDate(c.RegistrationDeadline)
	c.PaymentDeadline = normalizeDate(c.PaymentDeadline)
	c.TournamentDates = normalizeDates(c.TournamentDates)
	return c
}
