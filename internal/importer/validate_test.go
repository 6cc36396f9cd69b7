package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(f float64) *float64 { return &f }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Vendors: []VendorImport{
			{VendorID: "V-001", VendorName: "Acme Paving"},
		},
		Contracts: []ContractImport{
			{ContractID: "C-001", Title: "Road Resurfacing", VendorID: "V-001"},
		},
	}
}

func errorText(errs []error) string {
	var parts []string
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := validMinimalSchema()
	schema.Vendors[0].ContactEmail = "ops@acme.example"
	schema.Vendors[0].PerformanceScore = ptrFloat(72)
	schema.Contracts[0].OriginalAmount = ptrFloat(100000)
	schema.Contracts[0].CurrentAmount = ptrFloat(115000)
	schema.Contracts[0].StartDate = "2025-01-01"
	schema.Contracts[0].OriginalEndDate = "2025-12-31"
	schema.Contracts[0].PercentComplete = ptrFloat(40)
	schema.Milestones = []MilestoneImport{
		{ContractID: "C-001", Title: "Design", Status: "In Progress", DueDate: "2025-03-01"},
	}
	schema.Payments = []PaymentImport{
		{ContractID: "C-001", Amount: 2500, PaymentType: "ACH", PaymentDate: "2025-02-01"},
	}
	schema.ChangeOrders = []ChangeOrderImport{
		{ContractID: "C-001", Amount: 15000, RequestedDate: "2025-02-15"},
	}

	errs := ValidateImportSchema(schema)
	assert.Empty(t, errs, errorText(errs))
}

func TestValidateImportSchema_Empty(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no vendors or contracts")
}

func TestValidateImportSchema_RequiredFields(t *testing.T) {
	schema := &ImportSchema{
		Vendors:   []VendorImport{{VendorName: "Nameless ID"}},
		Contracts: []ContractImport{{ContractID: "C-1"}},
	}

	text := errorText(ValidateImportSchema(schema))
	assert.Contains(t, text, "vendors[0].vendor_id is required")
	assert.Contains(t, text, "contracts[0].title is required")
}

func TestValidateImportSchema_FieldRules(t *testing.T) {
	schema := validMinimalSchema()
	schema.Vendors[0].ContactEmail = "not-an-email"
	schema.Contracts[0].OriginalAmount = ptrFloat(-10)
	schema.Contracts[0].PercentComplete = ptrFloat(140)
	schema.Contracts[0].StartDate = "01/02/2025"
	schema.Milestones = []MilestoneImport{{ContractID: "C-001", Title: "M", Status: "Finished"}}
	schema.Payments = []PaymentImport{{ContractID: "C-001", Amount: 10, PaymentType: "Barter"}}

	text := errorText(ValidateImportSchema(schema))
	assert.Contains(t, text, "vendors[0].contact_email: invalid email")
	assert.Contains(t, text, "contracts[0].original_amount must be >= 0")
	assert.Contains(t, text, "contracts[0].percent_complete must be <= 100")
	assert.Contains(t, text, `contracts[0].start_date: invalid date format "01/02/2025"`)
	assert.Contains(t, text, `milestones[0].status: invalid value "Finished"`)
	assert.Contains(t, text, `payments[0].payment_type: invalid value "Barter"`)
}

func TestValidateImportSchema_DateWithTimeSuffixAccepted(t *testing.T) {
	schema := validMinimalSchema()
	schema.Contracts[0].AwardDate = "2025-01-15T10:30:00"

	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_References(t *testing.T) {
	schema := validMinimalSchema()
	schema.Vendors = append(schema.Vendors, VendorImport{VendorID: "V-001", VendorName: "Dup"})
	schema.Contracts = append(schema.Contracts,
		ContractImport{ContractID: "C-001", Title: "Dup"},
		ContractImport{ContractID: "C-002", Title: "Orphan", VendorID: "V-404"},
	)
	schema.Milestones = []MilestoneImport{{ContractID: "C-404", Title: "Lost"}}
	schema.Payments = []PaymentImport{{ContractID: "C-405", Amount: 1}}
	schema.ChangeOrders = []ChangeOrderImport{{ContractID: "C-406", Amount: 1}}

	text := errorText(ValidateImportSchema(schema))
	assert.Contains(t, text, `vendors[1].vendor_id: duplicate "V-001"`)
	assert.Contains(t, text, `contracts[1].contract_id: duplicate "C-001"`)
	assert.Contains(t, text, `contracts[2].vendor_id: unknown vendor "V-404"`)
	assert.Contains(t, text, `milestones[0].contract_id: unknown contract "C-404"`)
	assert.Contains(t, text, `payments[0].contract_id: unknown contract "C-405"`)
	assert.Contains(t, text, `change_orders[0].contract_id: unknown contract "C-406"`)
}

func TestParseImportSchema_BadJSON(t *testing.T) {
	_, err := ParseImportSchema([]byte(`{"contracts": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing import file")
}

func TestValidateRecord(t *testing.T) {
	ok := MilestoneImport{ContractID: "K-1", Title: "Foundation", Status: "In Progress", DueDate: "2025-09-01"}
	assert.NoError(t, ValidateRecord(ok))

	bad := MilestoneImport{ContractID: "K-1", Status: "Done", DueDate: "Sept 1", PercentComplete: 140}
	err := ValidateRecord(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), `status: invalid value "Done"`)
	assert.Contains(t, err.Error(), `due_date: invalid date format "Sept 1"`)
	assert.Contains(t, err.Error(), "percent_complete must be <= 100")
}
