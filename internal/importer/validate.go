package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/contractwatch/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseDay(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("milestone_status", func(fl validator.FieldLevel) bool {
		return domain.ValidMilestoneStatuses[fl.Field().String()]
	})
	return v
}

// ErrInvalidRecord marks a single record or edit that failed its field rules.
var ErrInvalidRecord = errors.New("invalid record")

// ValidateRecord checks the validate tags of one struct, such as a milestone
// being added or a set of field edits. Every failing field is reported.
func ValidateRecord(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	errs := []error{ErrInvalidRecord}
	for _, fe := range fieldErrs {
		errs = append(errs, describeFieldError(fe))
	}
	return errors.Join(errs...)
}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if err := validate.Struct(schema); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []error{fmt.Errorf("validating import: %w", err)}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	if len(schema.Vendors) == 0 && len(schema.Contracts) == 0 {
		errs = append(errs, fmt.Errorf("import contains no vendors or contracts"))
	}

	vendorIDs := make(map[string]bool, len(schema.Vendors))
	for i, v := range schema.Vendors {
		if v.VendorID == "" {
			continue
		}
		if vendorIDs[v.VendorID] {
			errs = append(errs, fmt.Errorf("vendors[%d].vendor_id: duplicate %q", i, v.VendorID))
		}
		vendorIDs[v.VendorID] = true
	}

	contractIDs := make(map[string]bool, len(schema.Contracts))
	for i, c := range schema.Contracts {
		if c.VendorID != "" && !vendorIDs[c.VendorID] {
			errs = append(errs, fmt.Errorf("contracts[%d].vendor_id: unknown vendor %q", i, c.VendorID))
		}
		if c.ContractID == "" {
			continue
		}
		if contractIDs[c.ContractID] {
			errs = append(errs, fmt.Errorf("contracts[%d].contract_id: duplicate %q", i, c.ContractID))
		}
		contractIDs[c.ContractID] = true
	}

	for i, m := range schema.Milestones {
		if m.ContractID != "" && !contractIDs[m.ContractID] {
			errs = append(errs, fmt.Errorf("milestones[%d].contract_id: unknown contract %q", i, m.ContractID))
		}
	}
	for i, p := range schema.Payments {
		if p.ContractID != "" && !contractIDs[p.ContractID] {
			errs = append(errs, fmt.Errorf("payments[%d].contract_id: unknown contract %q", i, p.ContractID))
		}
	}
	for i, co := range schema.ChangeOrders {
		if co.ContractID != "" && !contractIDs[co.ContractID] {
			errs = append(errs, fmt.Errorf("change_orders[%d].contract_id: unknown contract %q", i, co.ContractID))
		}
	}

	return errs
}

func describeFieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "day":
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, fe.Value())
	case "milestone_status", "oneof":
		return fmt.Errorf("%s: invalid value %q", field, fe.Value())
	case "email":
		return fmt.Errorf("%s: invalid email %q", field, fe.Value())
	case "gte":
		return fmt.Errorf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Errorf("%s must be <= %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Errorf("%s: failed %s validation", field, fe.Tag())
	}
}
