package service

import (
	"context"
	"strings"

	"campadmin/model/restmodel"
)

type TryoutEditor struct {
	*DraftEditor[restmodel.TryoutSpecificConfig]
}

type TryoutPatch struct {
	TryoutYear           *int     `json:"tryoutYear"`
	DisplayName          *string  `json:"displayName"`
	Description          *string  `json:"description"`
	EventId              *string  `json:"eventId"`
	Season               *string  `json:"season"`
	RegistrationDeadline *string  `json:"registrationDeadline"`
	PaymentDeadline      *string  `json:"paymentDeadline"`
	RequiresPayment      *bool    `json:"requiresPayment"`
	RequiresRoster       *bool    `json:"requiresRoster"`
	RequiresInsurance    *bool    `json:"requiresInsurance"`
	RefundPolicy         *string  `json:"refundPolicy"`
	RulesDocumentUrl     *string  `json:"rulesDocumentUrl"`
	ScheduleDocumentUrl  *string  `json:"scheduleDocumentUrl"`
	TryoutFee            *float64 `json:"tryoutFee"`
	IsActive             *bool    `json:"isActive"`
}

func (p TryoutPatch) Apply(c *restmodel.TryoutSpecificConfig) {
	setIfPresent(&c.TryoutYear, p.TryoutYear)
	setIfPresent(&c.DisplayName, p.DisplayName)
	setIfPresent(&c.Description, p.Description)
	setIfPresent(&c.EventId, p.EventId)
	setIfPresent(&c.Season, p.Season)
	setIfPresent(&c.RegistrationDeadline, p.RegistrationDeadline)
	setIfPresent(&c.PaymentDeadline, p.PaymentDeadline)
	setIfPresent(&c.RequiresPayment, p.RequiresPayment)
	setIfPresent(&c.RequiresRoster, p.RequiresRoster)
	setIfPresent(&c.RequiresInsurance, p.RequiresInsurance)
	setIfPresent(&c.RefundPolicy, p.RefundPolicy)
	setIfPresent(&c.RulesDocumentUrl, p.RulesDocumentUrl)
	setIfPresent(&c.ScheduleDocumentUrl, p.ScheduleDocumentUrl)
	setIfPresent(&c.TryoutFee, p.TryoutFee)
	setIfPresent(&c.IsActive, p.IsActive)
}

type TryoutSaveFunc func(ctx context.Context, config restmodel.TryoutSpecificConfig, key ConfigKey) (restmodel.TryoutSpecificConfig, ConfigKey, error)

func tryoutDescriptor(save TryoutSaveFunc) EditorDescriptor[restmodel.TryoutSpecificConfig] {
	return EditorDescriptor[restmodel.TryoutSpecificConfig]{
		Kind:          "tryout",
		IdentityField: "tryoutName",
		IdentityLabel: "Tryout name",
		Identity: func(c restmodel.TryoutSpecificConfig) string {
			return c.TryoutName
		},
		SetIdentity: func(c *restmodel.TryoutSpecificConfig, name string) {
			c.TryoutName = name
		},
		Clone: func(c restmodel.TryoutSpecificConfig) restmodel.TryoutSpecificConfig {
			return c.Clone()
		},
		Validate: func(c restmodel.TryoutSpecificConfig) ValidationErrors {
			return validateStruct(c)
		},
		Save: save,
	}
}

func NewTryoutEditor(key ConfigKey, config restmodel.TryoutSpecificConfig, save TryoutSaveFunc) *TryoutEditor {
	return &TryoutEditor{
		DraftEditor: NewDraftEditor(tryoutDescriptor(save), key, config),
	}
}

func (e *TryoutEditor) Apply(patch TryoutPatch) {
	e.Patch(patch.Apply)
}

// BindSeasonEvent copies the event's id and season name onto the tryout.
func (e *TryoutEditor) BindSeasonEvent(event restmodel.SeasonEvent) {
	e.Patch(func(c *restmodel.TryoutSpecificConfig) {
		c.EventId = event.EventId
		c.Season = event.Season
	})
}

func (e *TryoutEditor) list(c *restmodel.TryoutSpecificConfig, field ListField) *[]string {
	switch field {
	case ListDates:
		return &c.TryoutDates
	case ListLocations:
		return &c.Locations
	case ListDivisions:
		return &c.Divisions
	case ListAgeGroups:
		return &c.AgeGroups
	}
	return nil
}

func (e *TryoutEditor) AddListItem(field ListField, value string) bool {
	added := false
	e.Patch(func(c *restmodel.TryoutSpecificConfig) {
		if items := e.list(c, field); items != nil {
			*items, added = appendItem(field, *items, value)
		}
	})
	return added
}

func (e *TryoutEditor) RemoveListItem(field ListField, index int) bool {
	removed := false
	e.Patch(func(c *restmodel.TryoutSpecificConfig) {
		if items := e.list(c, field); items != nil {
			*items, removed = removeItemAt(*items, index)
		}
	})
	return removed
}

func cleanTryout(c restmodel.TryoutSpecificConfig) restmodel.TryoutSpecificConfig {
	c = c.Clone()
	c.TryoutName = trim(c.TryoutName)
	c.DisplayName = trim(c.DisplayName)
	c.Description = trim(c.Description)
	c.RefundPolicy = trim(c.RefundPolicy)
	c.RulesDocumentUrl = trim(c.RulesDocumentUrl)
	c.ScheduleDocumentUrl = trim(c.ScheduleDocumentUrl)
	c.TryoutDates = cleanList(c.TryoutDates)
	c.Locations = cleanList(c.Locations)
	c.Divisions = cleanList(c.Divisions)
	c.AgeGroups = cleanList(c.AgeGroups)
	return c
}

func trim(value string) string {
	return strings.TrimSpace(value)
}

func normalizeTryoutDates(c restmodel.TryoutSpecificConfig) restmodel.TryoutSpecificConfig {
	c.RegistrationDeadline = normalizeDate(c.RegistrationDeadline)
	c.PaymentDeadline = normalizeDate(c.PaymentDeadline)
	c.TryoutDates = normalizeDates(c.TryoutDates)
	return c
}
