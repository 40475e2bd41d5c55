package restmodel

// Shapes exchanged with the admin REST API. Field names follow the backend's camelCase JSON.

type SeasonEvent struct {
	EventId     string `json:"eventId"`
	Season      string `json:"season"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
}

type SeasonEventCreate struct {
	Season      string `json:"season" binding:"required" validate:"required"`
	Year        int    `json:"year" binding:"required" validate:"gt=0"`
	Description string `json:"description,omitempty"`
}

type PricingPackage struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type Pricing struct {
	BasePrice float64          `json:"basePrice" validate:"gte=0"`
	Packages  []PricingPackage `json:"packages,omitempty"`
}

type RegistrationFormConfig struct {
	IsActive              bool    `json:"isActive"`
	RequiresPayment       bool    `json:"requiresPayment"`
	RequiresQualification bool    `json:"requiresQualification"`
	Pricing               Pricing `json:"pricing"`
}

// FormConfigEntry is both the PUT /admin/form-configs body and the element of its GET listing.
type FormConfigEntry struct {
	EventId string                 `json:"eventId"`
	Season  string                 `json:"season"`
	Year    int                    `json:"year"`
	Config  RegistrationFormConfig `json:"config"`
}

type TournamentSpecificConfig struct {
	TournamentName       string   `json:"tournamentName"`
	TournamentYear       int      `json:"tournamentYear" validate:"gt=0"`
	DisplayName          string   `json:"displayName,omitempty"`
	Description          string   `json:"description,omitempty"`
	RegistrationDeadline string   `json:"registrationDeadline,omitempty" validate:"omitempty,calendardate"`
	PaymentDeadline      string   `json:"paymentDeadline,omitempty" validate:"omitempty,calendardate"`
	TournamentDates      []string `json:"tournamentDates,omitempty"`
	Locations            []string `json:"locations,omitempty"`
	Divisions            []string `json:"divisions,omitempty"`
	AgeGroups            []string `json:"ageGroups,omitempty"`
	RequiresRoster       bool     `json:"requiresRoster"`
	RequiresInsurance    bool     `json:"requiresInsurance"`
	RefundPolicy         string   `json:"refundPolicy,omitempty"`
	RulesDocumentUrl     string   `json:"rulesDocumentUrl,omitempty"`
	ScheduleDocumentUrl  string   `json:"scheduleDocumentUrl,omitempty"`
	TournamentFee        float64  `json:"tournamentFee" validate:"gte=0"`
	IsActive             bool     `json:"isActive"`
}

type TournamentConfigPayload struct {
	TournamentSpecificConfig
	OriginalTournamentName string `json:"originalTournamentName,omitempty"`
}

type TryoutSpecificConfig struct {
	TryoutName           string   `json:"tryoutName"`
	TryoutYear           int      `json:"tryoutYear" validate:"gt=0"`
	DisplayName          string   `json:"displayName,omitempty"`
	Description          string   `json:"description,omitempty"`
	EventId              string   `json:"eventId,omitempty"`
	Season               string   `json:"season,omitempty"`
	RegistrationDeadline string   `json:"registrationDeadline,omitempty" validate:"omitempty,calendardate"`
	PaymentDeadline      string   `json:"paymentDeadline,omitempty" validate:"omitempty,calendardate"`
	TryoutDates          []string `json:"tryoutDates,omitempty"`
	Locations            []string `json:"locations,omitempty"`
	Divisions            []string `json:"divisions,omitempty"`
	AgeGroups            []string `json:"ageGroups,omitempty"`
	RequiresPayment      bool     `json:"requiresPayment"`
	RequiresRoster       bool     `json:"requiresRoster"`
	RequiresInsurance    bool     `json:"requiresInsurance"`
	RefundPolicy         string   `json:"refundPolicy,omitempty"`
	RulesDocumentUrl     string   `json:"rulesDocumentUrl,omitempty"`
	ScheduleDocumentUrl  string   `json:"scheduleDocumentUrl,omitempty"`
	TryoutFee            float64  `json:"tryoutFee" validate:"gte=0"`
	IsActive             bool     `json:"isActive"`
}

type TryoutConfigPayload struct {
	TryoutSpecificConfig
	OriginalTryoutName string `json:"originalTryoutName,omitempty"`
}

func DefaultRegistrationFormConfig() RegistrationFormConfig {
	return RegistrationFormConfig{
		Pricing: Pricing{Packages: []PricingPackage{}},
	}
}

func DefaultTournamentConfig(year int) TournamentSpecificConfig {
	return TournamentSpecificConfig{
		TournamentYear:  year,
		TournamentDates: []string{},
		Locations:       []string{},
		Divisions:       []string{},
		AgeGroups:       []string{},
	}
}

func DefaultTryoutConfig(year int) TryoutSpecificConfig {
	return TryoutSpecificConfig{
		TryoutYear:  year,
		TryoutDates: []string{},
		Locations:   []string{},
		Divisions:   []string{},
		AgeGroups:   []string{},
	}
}

func (c RegistrationFormConfig) Clone() RegistrationFormConfig {
	c.Pricing.Packages = cloneSlice(c.Pricing.Packages)
	return c
}

func (c TournamentSpecificConfig) Clone() TournamentSpecificConfig {
	c.TournamentDates = cloneSlice(c.TournamentDates)
	c.Locations = cloneSlice(c.Locations)
	c.Divisions = cloneSlice(c.Divisions)
	c.AgeGroups = cloneSlice(c.AgeGroups)
	return c
}

func (c TryoutSpecificConfig) Clone() TryoutSpecificConfig {
	c.TryoutDates = cloneSlice(c.TryoutDates)
	c.Locations = cloneSlice(c.Locations)
	c.Divisions = cloneSlice(c.Divisions)
	c.AgeGroups = cloneSlice(c.AgeGroups)
	return c
}

func cloneSlice[A any](input []A) []A {
	if input == nil {
		return nil
	}
	output := make([]A, len(input))
	copy(output, input)
	return output
}
