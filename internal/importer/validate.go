package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
)

const windowLayout = "2006-01-02 15:04"

var validEventStatuses = map[string]bool{
	"planned": true, "confirmed": true, "done": true, "cancelled": true,
}

// ValidateImportSchema checks the import schema before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	typeRefs := make(map[string]bool)
	errs = append(errs, validatePhaseTypes(schema.PhaseTypes, typeRefs)...)
	errs = append(errs, validateVehicles(schema.Vehicles)...)
	errs = append(errs, validateCrew(schema.Crew)...)
	errs = append(errs, validateEvents(schema.Events, typeRefs)...)

	return errs
}

func validatePhaseTypes(types []PhaseTypeImport, typeRefs map[string]bool) []error {
	var errs []error

	for i, pt := range types {
		prefix := fmt.Sprintf("phase_types[%d]", i)

		if pt.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if typeRefs[pt.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, pt.Ref))
		} else {
			typeRefs[pt.Ref] = true
		}

		if pt.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if pt.Role == "" {
			errs = append(errs, fmt.Errorf("%s.role is required", prefix))
		} else if !domain.ValidPhaseRoles[pt.Role] {
			errs = append(errs, fmt.Errorf("%s.role: invalid value %q", prefix, pt.Role))
		}
	}

	return errs
}

func validateVehicles(vehicles []VehicleImport) []error {
	var errs []error
	refs := make(map[string]bool)

	for i, v := range vehicles {
		prefix := fmt.Sprintf("vehicles[%d]", i)

		if v.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[v.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, v.Ref))
		} else {
			refs[v.Ref] = true
		}

		if v.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if v.Kind == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		} else if !domain.ValidVehicleKinds[v.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, v.Kind))
		}
		if v.Seats < 0 {
			errs = append(errs, fmt.Errorf("%s.seats must not be negative", prefix))
		}
	}

	return errs
}

func validateCrew(crew []EmployeeImport) []error {
	var errs []error
	refs := make(map[string]bool)

	for i, c := range crew {
		prefix := fmt.Sprintf("crew[%d]", i)

		if c.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[c.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, c.Ref))
		} else {
			refs[c.Ref] = true
		}

		if c.FirstName == "" && c.LastName == "" {
			errs = append(errs, fmt.Errorf("%s: first_name or last_name is required", prefix))
		}
	}

	return errs
}

func validateEvents(events []EventImport, typeRefs map[string]bool) []error {
	var errs []error

	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)

		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if e.Status != "" && !validEventStatuses[e.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, e.Status))
		}
		errs = append(errs, validateWindow(prefix, e.Start, e.End)...)

		for j, p := range e.Phases {
			pp := fmt.Sprintf("%s.phases[%d]", prefix, j)

			if p.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", pp))
			}
			if p.TypeRef == "" {
				errs = append(errs, fmt.Errorf("%s.type_ref is required", pp))
			} else if !typeRefs[p.TypeRef] {
				errs = append(errs, fmt.Errorf("%s.type_ref: ref %q not found in phase_types", pp, p.TypeRef))
			}
			errs = append(errs, validateWindow(pp, p.Start, p.End)...)
		}
	}

	return errs
}

// validateWindow checks both endpoints for format and the ordering
// invariant. A zero-length window is accepted, an inverted one is not.
func validateWindow(prefix, start, end string) []error {
	var errs []error

	startTime, startErr := parseTimestamp(prefix+".start", start, &errs)
	endTime, endErr := parseTimestamp(prefix+".end", end, &errs)
	if startErr || endErr {
		return errs
	}
	if endTime.Before(startTime) {
		errs = append(errs, fmt.Errorf("%s: end %q before start %q", prefix, end, start))
	}
	return errs
}

func parseTimestamp(field, value string, errs *[]error) (time.Time, bool) {
	if value == "" {
		*errs = append(*errs, fmt.Errorf("%s is required", field))
		return time.Time{}, true
	}
	t, err := time.ParseInLocation(windowLayout, value, time.Local)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid time %q (expected YYYY-MM-DD HH:MM)", field, value))
		return time.Time{}, true
	}
	return t, false
}
