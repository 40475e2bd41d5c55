package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"campadmin/model/restmodel"
)

type PreviewMode string

const (
	PreviewNone       PreviewMode = "none"
	PreviewTraining   PreviewMode = "training"
	PreviewTournament PreviewMode = "tournament"
	PreviewTryout     PreviewMode = "tryout"
)

const (
	NotConfigured     = "Not configured"
	NoDescription     = "No description provided"
	NotConfiguredHint = "Select a season, tournament or tryout and save a configuration to preview it"
	noneLabel         = "None"
	notSetLabel       = "Not set"
)

// PreviewInput carries at most one configuration; when several are set the first of
// training, tournament, tryout wins.
type PreviewInput struct {
	Training    *restmodel.RegistrationFormConfig
	SeasonEvent *restmodel.SeasonEvent
	Tournament  *restmodel.TournamentSpecificConfig
	Tryout      *restmodel.TryoutSpecificConfig
}

type Requirement struct {
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Icon     string `json:"icon"`
}

type ListSummary struct {
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Joined string `json:"joined"`
}

type PackageBadge struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

type ScheduleItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Preview struct {
	Mode           PreviewMode    `json:"mode"`
	Configured     bool           `json:"configured"`
	Placeholder    string         `json:"placeholder,omitempty"`
	CallToAction   string         `json:"call_to_action,omitempty"`
	Title          string         `json:"title,omitempty"`
	StatusBadge    string         `json:"status_badge,omitempty"`
	Description    string         `json:"description,omitempty"`
	FeeLabel       string         `json:"fee_label,omitempty"`
	PricingHeading string         `json:"pricing_heading,omitempty"`
	Packages       []PackageBadge `json:"packages,omitempty"`
	Requirements   []Requirement  `json:"requirements,omitempty"`
	Lists          []ListSummary  `json:"lists,omitempty"`
	Schedule       []ScheduleItem `json:"schedule,omitempty"`
	Summary        string         `json:"summary,omitempty"`
}

// Project derives the read-only preview of a configuration. It never modifies its input.
func Project(in PreviewInput) Preview {
	switch {
	case in.Training != nil:
		return projectTraining(*in.Training, in.SeasonEvent)
	case in.Tournament != nil:
		return projectTournament(*in.Tournament)
	case in.Tryout != nil:
		return projectTryout(*in.Tryout)
	}
	return Preview{
		Mode:         PreviewNone,
		Placeholder:  NotConfigured,
		CallToAction: NotConfiguredHint,
	}
}

func projectTraining(config restmodel.RegistrationFormConfig, event *restmodel.SeasonEvent) Preview {
	title := "Training Registration"
	description := ""
	if event != nil {
		title = strings.TrimSpace(fmt.Sprintf("%s %d Training", event.Season, event.Year))
		description = event.Description
	}
	preview := Preview{
		Mode:        PreviewTraining,
		Configured:  true,
		Title:       title,
		StatusBadge: statusBadge(config.IsActive),
		Description: describe(description),
		FeeLabel:    "Base price: " + formatMoney(config.Pricing.BasePrice),
		Requirements: []Requirement{
			requirement("Payment", config.RequiresPayment),
			requirement("Qualification", config.RequiresQualification),
		},
		Summary: summary(config.IsActive, title),
	}
	packages := config.Pricing.Packages
	if len(packages) == 0 {
		preview.PricingHeading = "Base price only: " + formatMoney(config.Pricing.BasePrice)
		return preview
	}
	preview.PricingHeading = fmt.Sprintf("Available Packages (%d)", len(packages))
	preview.Packages = make([]PackageBadge, 0, len(packages))
	for _, p := range packages {
		preview.Packages = append(preview.Packages, PackageBadge{
			Name:        p.Name,
			Price:       formatMoney(p.Price),
			Description: p.Description,
		})
	}
	return preview
}

func projectTournament(config restmodel.TournamentSpecificConfig) Preview {
	title := titleOf(config.DisplayName, config.TournamentName, "Untitled tournament", config.TournamentYear)
	return Preview{
		Mode:        PreviewTournament,
		Configured:  true,
		Title:       title,
		StatusBadge: statusBadge(config.IsActive),
		Description: describe(config.Description),
		FeeLabel:    formatMoney(config.TournamentFee) + " per team",
		Requirements: []Requirement{
			requirement("Roster", config.RequiresRoster),
			requirement("Insurance", config.RequiresInsurance),
		},
		Lists:    listSummaries(config.TournamentDates, config.Locations, config.Divisions, config.AgeGroups),
		Schedule: schedule(config.RegistrationDeadline, config.PaymentDeadline),
		Summary:  summary(config.IsActive, title),
	}
}

func projectTryout(config restmodel.TryoutSpecificConfig) Preview {
	title := titleOf(config.DisplayName, config.TryoutName, "Untitled tryout", config.TryoutYear)
	preview := Preview{
		Mode:        PreviewTryout,
		Configured:  true,
		Title:       title,
		StatusBadge: statusBadge(config.IsActive),
		Description: describe(config.Description),
		FeeLabel:    formatMoney(config.TryoutFee) + " per player",
		Requirements: []Requirement{
			requirement("Payment", config.RequiresPayment),
			requirement("Roster", config.RequiresRoster),
			requirement("Insurance", config.RequiresInsurance),
		},
		Lists:    listSummaries(config.TryoutDates, config.Locations, config.Divisions, config.AgeGroups),
		Schedule: schedule(config.RegistrationDeadline, config.PaymentDeadline),
		Summary:  summary(config.IsActive, title),
	}
	if config.Season != "" {
		preview.Schedule = append(preview.Schedule, ScheduleItem{Label: "Season", Value: config.Season})
	}
	return preview
}

func titleOf(displayName string, name string, fallback string, year int) string {
	label := strings.TrimSpace(displayName)
	if label == "" {
		label = strings.TrimSpace(name)
	}
	if label == "" {
		label = fallback
	}
	if year > 0 {
		return fmt.Sprintf("%s %d", label, year)
	}
	return label
}

func statusBadge(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func describe(description string) string {
	if strings.TrimSpace(description) == "" {
		return NoDescription
	}
	return description
}

func requirement(label string, required bool) Requirement {
	icon := "✗"
	if required {
		icon = "✓"
	}
	return Requirement{Label: label, Required: required, Icon: icon}
}

func listSummaries(dates []string, locations []string, divisions []string, ageGroups []string) []ListSummary {
	return []ListSummary{
		listSummary("Dates", dates),
		listSummary("Locations", locations),
		listSummary("Divisions", divisions),
		listSummary("Age Groups", ageGroups),
	}
}

func listSummary(label string, items []string) ListSummary {
	joined := strings.Join(items, ", ")
	if len(items) == 0 {
		joined = noneLabel
	}
	return ListSummary{Label: label, Count: len(items), Joined: joined}
}

func schedule(registrationDeadline string, paymentDeadline string) []ScheduleItem {
	return []ScheduleItem{
		{Label: "Registration deadline", Value: orNotSet(registrationDeadline)},
		{Label: "Payment deadline", Value: orNotSet(paymentDeadline)},
	}
}

func orNotSet(value string) string {
	if value == "" {
		return notSetLabel
	}
	return value
}

func summary(active bool, title string) string {
	if active {
		return fmt.Sprintf("Registration for %s is open.", title)
	}
	return fmt.Sprintf("Registration for %s is not open yet.", title)
}

// formatMoney drops the cents of whole amounts: 150 -> "$150", 149.5 -> "$149.50".
func formatMoney(amount float64) string {
	if amount == math.Trunc(amount) {
		return "$" + strconv.FormatFloat(amount, 'f', 0, 64)
	}
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Render lays the preview out as plain text.
func (p Preview) Render() string {
	if !p.Configured {
		return p.Placeholder + "\n" + p.CallToAction + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n", p.Title, p.StatusBadge)
	fmt.Fprintf(&b, "%s\n", p.Description)
	fmt.Fprintf(&b, "Fee: %s\n", p.FeeLabel)
	if p.PricingHeading != "" {
		fmt.Fprintf(&b, "%s\n", p.PricingHeading)
		for _, pkg := range p.Packages {
			fmt.Fprintf(&b, "  %s %s\n", pkg.Name, pkg.Price)
		}
	}
	for _, r := range p.Requirements {
		fmt.Fprintf(&b, "%s %s\n", r.Icon, r.Label)
	}
	for _, l := range p.Lists {
		fmt.Fprintf(&b, "%s (%d): %s\n", l.Label, l.Count, l.Joined)
	}
	for _, s := range p.Schedule {
		fmt.Fprintf(&b, "%s: %s\n", s.Label, s.Value)
	}
	b.WriteString(p.Summary + "\n")
	return b.String()
}
