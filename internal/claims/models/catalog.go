package models

import (
	"strings"

	dErrors "claimguard/pkg/domain-errors"
	"claimguard/pkg/validation"
)

// ServiceDescription is one entry of the closed service catalog the scorer
// knows how to price.
type ServiceDescription string

const (
	ServiceInjection        ServiceDescription = "Injection beneath the skin or into muscle for therapy, diagnosis, or prevention"
	ServiceCardiacCT        ServiceDescription = "CT scan of heart blood vessels and grafts with contrast dye"
	ServiceChestXRay        ServiceDescription = "X-ray of chest, 2 views, front and side"
	ServiceCriticalCare     ServiceDescription = "Critical care delivery critically ill or injured patient"
	ServiceClottingTime     ServiceDescription = "Blood test, clotting time"
	ServiceBreastTomography ServiceDescription = "Screening digital tomography of both breasts"
)

// Catalog lists every service in display order.
var Catalog = []ServiceDescription{
	ServiceInjection,
	ServiceCardiacCT,
	ServiceChestXRay,
	ServiceCriticalCare,
	ServiceClottingTime,
	ServiceBreastTomography,
}

func (d ServiceDescription) String() string { return string(d) }

// Known reports whether d is in the catalog.
func (d ServiceDescription) Known() bool {
	for _, c := range Catalog {
		if c == d {
			return true
		}
	}
	return false
}

// ParseServiceDescription trims s and requires an exact catalog match.
func ParseServiceDescription(s string) (ServiceDescription, error) {
	d := ServiceDescription(strings.TrimSpace(s))
	if d == "" {
		return "", dErrors.New(dErrors.CodeValidation, "service description is required")
	}
	if !d.Known() {
		return "", dErrors.New(dErrors.CodeValidation, "service description is not a recognized service")
	}
	return d, nil
}

func init() {
	validation.RegisterString("service_description", func(s string) bool {
		return ServiceDescription(s).Known()
	})
}
