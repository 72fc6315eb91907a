package models

import "strings"

// Division identifies one of the five SK Group business divisions. The same
// enum backs the project catalog, project enquiries and payment metadata so
// the three surfaces can never drift apart.
type Division string

const (
	DivisionConstruction Division = "construction"
	DivisionLegal        Division = "legal"
	DivisionPR           Division = "pr"
	DivisionEvents       Division = "events"
	DivisionTissue       Division = "tissue"
)

// Divisions lists every valid division in declaration order.
var Divisions = []Division{
	DivisionConstruction,
	DivisionLegal,
	DivisionPR,
	DivisionEvents,
	DivisionTissue,
}

// ParseDivision normalizes raw input (trim, lowercase) and reports whether
// it names a valid division. Invalid input is never coerced.
func ParseDivision(raw string) (Division, bool) {
	d := Division(strings.ToLower(strings.TrimSpace(raw)))
	for _, valid := range Divisions {
		if d == valid {
			return d, true
		}
	}
	return "", false
}

// DivisionNames returns the valid division values joined for error messages.
func DivisionNames() string {
	names := make([]string, len(Divisions))
	for i, d := range Divisions {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

// ProjectStatus is the lifecycle state of a catalog project.
type ProjectStatus string

const (
	StatusCompleted ProjectStatus = "Completed"
	StatusOngoing   ProjectStatus = "Ongoing"
)

// ParseProjectStatus reports whether the trimmed input is a valid status.
// Status values are case sensitive, matching the stored representation.
func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	s := ProjectStatus(strings.TrimSpace(raw))
	if s == StatusCompleted || s == StatusOngoing {
		return s, true
	}
	return "", false
}

// PaymentType classifies what a payment order is for.
type PaymentType string

const (
	PaymentConsultation PaymentType = "consultation"
	PaymentBooking      PaymentType = "booking"
	PaymentSample       PaymentType = "sample"
	PaymentCustom       PaymentType = "custom"
)

// ParsePaymentType reports whether the trimmed, lowercased input names a
// valid payment type.
func ParsePaymentType(raw string) (PaymentType, bool) {
	p := PaymentType(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PaymentConsultation, PaymentBooking, PaymentSample, PaymentCustom:
		return p, true
	}
	return "", false
}
