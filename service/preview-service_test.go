package service

import (
	"testing"

	"campadmin/model/restmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectWithoutConfiguration(t *testing.T) {
	preview := Project(PreviewInput{})
	assert.Equal(t, PreviewNone, preview.Mode)
	assert.False(t, preview.Configured)
	assert.Equal(t, NotConfigured, preview.Placeholder)
	assert.NotEmpty(t, preview.CallToAction)
	assert.Contains(t, preview.Render(), NotConfigured)
}

func TestProjectTrainingWithoutPackages(t *testing.T) {
	config := restmodel.RegistrationFormConfig{}
	preview := Project(PreviewInput{Training: &config})
	assert.Equal(t, PreviewTraining, preview.Mode)
	assert.True(t, preview.Configured)
	assert.Equal(t, "Base price only: $0", preview.PricingHeading)
	assert.Empty(t, preview.Packages)
	assert.Equal(t, "Inactive", preview.StatusBadge)
	assert.Equal(t, NoDescription, preview.Description)
	assert.Equal(t, "Training Registration", preview.Title)
}

func TestProjectTrainingWithPackages(t *testing.T) {
	config := restmodel.RegistrationFormConfig{
		IsActive:        true,
		RequiresPayment: true,
		Pricing: restmodel.Pricing{
			BasePrice: 99.5,
			Packages: []restmodel.PricingPackage{
				{Id: "a", Name: "2x/Week", Price: 150},
				{Id: "b", Name: "Drop-in", Price: 19.99},
			},
		},
	}
	event := restmodel.SeasonEvent{EventId: "w25", Season: "Winter", Year: 2025, Description: "Indoor sessions"}
	preview := Project(PreviewInput{Training: &config, SeasonEvent: &event})

	assert.Equal(t, "Winter 2025 Training", preview.Title)
	assert.Equal(t, "Active", preview.StatusBadge)
	assert.Equal(t, "Indoor sessions", preview.Description)
	assert.Equal(t, "Base price: $99.50", preview.FeeLabel)
	assert.Equal(t, "Available Packages (2)", preview.PricingHeading)
	require.Len(t, preview.Packages, 2)
	assert.Equal(t, "$150", preview.Packages[0].Price)
	assert.Equal(t, "$19.99", preview.Packages[1].Price)
	assert.Equal(t, []Requirement{
		{Label: "Payment", Required: true, Icon: "✓"},
		{Label: "Qualification", Required: false, Icon: "✗"},
	}, preview.Requirements)
	assert.Contains(t, preview.Render(), "2x/Week $150")
}

func TestProjectTournament(t *testing.T) {
	config := restmodel.TournamentSpecificConfig{
		TournamentName:       "Spring Cup",
		TournamentYear:       2025,
		Divisions:            []string{"U10", "U12"},
		RequiresRoster:       true,
		TournamentFee:        300,
		RegistrationDeadline: "2025-03-01",
	}
	preview := Project(PreviewInput{Tournament: &config})
	assert.Equal(t, PreviewTournament, preview.Mode)
	assert.Equal(t, "Spring Cup 2025", preview.Title)
	assert.Equal(t, "$300 per team", preview.FeeLabel)
	assert.Equal(t, NoDescription, preview.Description)
	assert.Equal(t, []ListSummary{
		{Label: "Dates", Count: 0, Joined: "None"},
		{Label: "Locations", Count: 0, Joined: "None"},
		{Label: "Divisions", Count: 2, Joined: "U10, U12"},
		{Label: "Age Groups", Count: 0, Joined: "None"},
	}, preview.Lists)
	assert.Equal(t, []ScheduleItem{
		{Label: "Registration deadline", Value: "2025-03-01"},
		{Label: "Payment deadline", Value: "Not set"},
	}, preview.Schedule)
	assert.Equal(t, "✓", preview.Requirements[0].Icon)
}

func TestProjectTryoutPrefersDisplayName(t *testing.T) {
	config := restmodel.TryoutSpecificConfig{
		TryoutName:  "fall-tryout",
		DisplayName: "Fall Tryouts",
		TryoutYear:  2025,
		TryoutFee:   25,
		Season:      "Fall",
		Description: "Bring sneakers",
	}
	preview := Project(PreviewInput{Tryout: &config})
	assert.Equal(t, PreviewTryout, preview.Mode)
	assert.Equal(t, "Fall Tryouts 2025", preview.Title)
	assert.Equal(t, "$25 per player", preview.FeeLabel)
	assert.Equal(t, "Bring sneakers", preview.Description)
	assert.Len(t, preview.Requirements, 3)
	assert.Equal(t, ScheduleItem{Label: "Season", Value: "Fall"}, preview.Schedule[len(preview.Schedule)-1])
}

func TestProjectDoesNotModifyInput(t *testing.T) {
	config := restmodel.TournamentSpecificConfig{TournamentName: "Spring Cup", Locations: []string{"Main Gym"}}
	before := config.Clone()
	Project(PreviewInput{Tournament: &config})
	assert.Equal(t, before, config)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", formatMoney(0))
	assert.Equal(t, "$150", formatMoney(150))
	assert.Equal(t, "$149.99", formatMoney(149.99))
	assert.Equal(t, "$12.50", formatMoney(12.5))
}
