// Package gst implements the Indian GST business rules layered on GSTIN
// validation: transaction-type derivation between two registrations, tax-rate
// splitting across CGST/SGST/UTGST/IGST, and the turnover thresholds that
// gate mandatory HSN/SAC digit counts.
package gst

import (
	"fmt"

	"github.com/coolbeans/taxid/pkg/lookup"
	"github.com/coolbeans/taxid/pkg/taxid"
)

// TransactionType classifies a supply by the state codes of the two parties.
type TransactionType string

const (
	IntraState TransactionType = "INTRA_STATE"
	InterState TransactionType = "INTER_STATE"
)

// Component is one of the GST split tax heads.
type Component string

const (
	CGST  Component = "CGST"
	SGST  Component = "SGST"
	UTGST Component = "UTGST"
	IGST  Component = "IGST"
)

// Determination is the outcome of comparing a supplier and recipient GSTIN.
type Determination struct {
	Type       TransactionType `json:"type"`
	Components []Component     `json:"tax_components"`

	// SupplierState and RecipientState are the resolved state entries.
	SupplierState  lookup.Entry `json:"supplier_state"`
	RecipientState lookup.Entry `json:"recipient_state"`
}

// RateSplit is a total GST rate distributed over tax heads. Heads not used by
// the transaction type stay zero.
type RateSplit struct {
	CGST  float64 `json:"cgst,omitempty"`
	SGST  float64 `json:"sgst,omitempty"`
	UTGST float64 `json:"utgst,omitempty"`
	IGST  float64 `json:"igst,omitempty"`
}

// DetermineTransactionType compares the state codes of two valid GSTINs.
// Equal codes mean an intra-state supply split into CGST plus SGST (UTGST in
// place of SGST when the recipient state is a union territory); different
// codes mean an inter-state supply taxed wholly as IGST. Invalid GSTINs are
// errors: callers are expected to validate user input before deriving tax
// treatment from it.
func DetermineTransactionType(supplierGSTIN, recipientGSTIN string) (Determination, error) {
	supplier, err := taxid.Parse(taxid.KindGSTIN, supplierGSTIN)
	if err != nil {
		return Determination{}, fmt.Errorf("supplier: %w", err)
	}
	recipient, err := taxid.Parse(taxid.KindGSTIN, recipientGSTIN)
	if err != nil {
		return Determination{}, fmt.Errorf("recipient: %w", err)
	}

	determination := Determination{
		SupplierState:  supplier.Lookups["state"],
		RecipientState: recipient.Lookups["state"],
	}
	if supplier.Segments["state"] == recipient.Segments["state"] {
		determination.Type = IntraState
		if determination.RecipientState.UnionTerritory {
			determination.Components = []Component{CGST, UTGST}
		} else {
			determination.Components = []Component{CGST, SGST}
		}
	} else {
		determination.Type = InterState
		determination.Components = []Component{IGST}
	}
	return determination, nil
}

// SplitRate distributes a total GST rate over tax heads. Intra-state supplies
// halve the rate equally between CGST and SGST (or UTGST for union-territory
// recipients); inter-state supplies assign the whole rate to IGST.
func SplitRate(totalRate float64, transactionType TransactionType, unionTerritory bool) (RateSplit, error) {
	if totalRate < 0 {
		return RateSplit{}, fmt.Errorf("total rate cannot be negative, got %v", totalRate)
	}
	switch transactionType {
	case IntraState:
		half := totalRate / 2
		if unionTerritory {
			return RateSplit{CGST: half, UTGST: half}, nil
		}
		return RateSplit{CGST: half, SGST: half}, nil
	case InterState:
		return RateSplit{IGST: totalRate}, nil
	default:
		return RateSplit{}, fmt.Errorf("unknown transaction type %q", transactionType)
	}
}

// Turnover thresholds in rupees for mandatory HSN/SAC digit counts.
const (
	turnoverFiveCrore = 5_00_00_000
	turnoverFiftyLakh = 50_00_000
)

// RequiredHSNDigits returns the mandatory HSN/SAC digit count for an annual
// turnover in rupees: 6 digits above five crore, 4 above fifty lakh, and 0
// (optional) below.
func RequiredHSNDigits(annualTurnover int64) int {
	switch {
	case annualTurnover > turnoverFiveCrore:
		return 6
	case annualTurnover > turnoverFiftyLakh:
		return 4
	default:
		return 0
	}
}
