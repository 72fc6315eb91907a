// Package enquiry models the multi-step contact form as an explicit state
// machine, independent of any UI. Each transition is gated by validation of
// the fields collected so far.
package enquiry

import (
	"fmt"
	"strings"

	"skgroup/lib/models"
	"skgroup/lib/validation"
)

// Step identifies the stage a form is in.
type Step int

const (
	CollectingContact Step = iota
	CollectingDetails
	Submitted
)

func (s Step) String() string {
	switch s {
	case CollectingContact:
		return "collecting_contact"
	case CollectingDetails:
		return "collecting_details"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ErrWrongStep is returned when a transition is attempted out of order.
type ErrWrongStep struct {
	Expected Step
	Actual   Step
}

func (e *ErrWrongStep) Error() string {
	return fmt.Sprintf("form is %s, expected %s", e.Actual, e.Expected)
}

// Form accumulates enquiry fields across steps. The zero value starts at
// CollectingContact.
type Form struct {
	step    Step
	enquiry models.ContactEnquiry
}

// Step returns the form's current stage.
func (f *Form) Step() Step {
	return f.step
}

// SetContact records the first-step fields and advances to
// CollectingDetails when they validate.
func (f *Form) SetContact(name, email, phone, city string) (*validation.FieldError, error) {
	if f.step != CollectingContact {
		return nil, &ErrWrongStep{Expected: CollectingContact, Actual: f.step}
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	city = strings.TrimSpace(city)

	switch {
	case name == "":
		return &validation.FieldError{Field: "name", Code: validation.CodeMissingName, Message: "Name is required"}, nil
	case email == "":
		return &validation.FieldError{Field: "email", Code: validation.CodeMissingEmail, Message: "Email is required"}, nil
	case !strings.Contains(email, "@"):
		return &validation.FieldError{Field: "email", Code: validation.CodeInvalidEmail, Message: "Invalid email format"}, nil
	case phone == "":
		return &validation.FieldError{Field: "phone", Code: validation.CodeMissingPhone, Message: "Phone is required"}, nil
	case city == "":
		return &validation.FieldError{Field: "city", Code: validation.CodeMissingCity, Message: "City is required"}, nil
	}

	f.enquiry.Name = name
	f.enquiry.Email = email
	f.enquiry.Phone = phone
	f.enquiry.City = city
	f.step = CollectingDetails
	return nil, nil
}

// SetDetails records the second-step fields and advances to Submitted when
// the complete enquiry validates.
func (f *Form) SetDetails(division, subject, message, fileName string, fileData []byte) (*validation.FieldError, error) {
	if f.step != CollectingDetails {
		return nil, &ErrWrongStep{Expected: CollectingDetails, Actual: f.step}
	}

	candidate := f.enquiry
	candidate.Division = strings.TrimSpace(division)
	candidate.Subject = strings.TrimSpace(subject)
	candidate.Message = strings.TrimSpace(message)
	candidate.FileName = fileName
	candidate.FileData = fileData

	if fieldErr := validation.ContactEnquiry(&candidate); fieldErr != nil {
		return fieldErr, nil
	}

	f.enquiry = candidate
	f.step = Submitted
	return nil, nil
}

// Back returns from CollectingDetails to CollectingContact, keeping the
// fields entered so far. Submitted forms cannot go back.
func (f *Form) Back() {
	if f.step == CollectingDetails {
		f.step = CollectingContact
	}
}

// Enquiry returns the completed enquiry once the form reached Submitted.
func (f *Form) Enquiry() (*models.ContactEnquiry, error) {
	if f.step != Submitted {
		return nil, fmt.Errorf("form is still %s", f.step)
	}
	enquiry := f.enquiry
	return &enquiry, nil
}
