package service

import (
	"strings"
)

type ListField string

const (
	ListDates     ListField = "dates"
	ListLocations ListField = "locations"
	ListDivisions ListField = "divisions"
	ListAgeGroups ListField = "ageGroups"
)

func ParseListField(value string) (ListField, bool) {
	switch ListField(value) {
	case ListDates, ListLocations, ListDivisions, ListAgeGroups:
		return ListField(value), true
	}
	return "", false
}

// appendItem ignores blank input, and input that is not a date for the date list.
func appendItem(field ListField, items []string, value string) ([]string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return items, false
	}
	if field == ListDates {
		if _, ok := parseDate(value); !ok {
			return items, false
		}
		value = normalizeDate(value)
	}
	output := make([]string, len(items), len(items)+1)
	copy(output, items)
	return append(output, value), true
}

func removeItemAt(items []string, index int) ([]string, bool) {
	if index < 0 || index >= len(items) {
		return items, false
	}
	output := make([]string, 0, len(items)-1)
	output = append(output, items[:index]...)
	return append(output, items[index+1:]...), true
}

// cleanList trims entries and drops blanks before a config is sent to the backend.
func cleanList(items []string) []string {
	output := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			output = append(output, item)
		}
	}
	return output
}
