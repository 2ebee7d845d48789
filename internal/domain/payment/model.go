package payment

import "time"

// Payment is one tblInvoice row joined to tblwork and tblpatients, as shown
// in a patient's payment history. Amounts are carried in both the local
// currency and USD, exactly as recorded at payment time.
type Payment struct {
	InvoiceID         int64     `db:"invoice_id" json:"invoice_id"`
	WorkID            int64     `db:"work_id" json:"work_id"`
	PersonID          int64     `db:"person_id" json:"person_id"`
	PatientName       string    `db:"patient_name" json:"patient_name"`
	WorkType          string    `db:"work_type" json:"work_type"`
	AmountPaid        float64   `db:"amount_paid" json:"amount_paid"`
	AmountPaidUSD     float64   `db:"amount_paid_usd" json:"amount_paid_usd"`
	AmountReceived    float64   `db:"amount_received" json:"amount_received"`
	AmountReceivedUSD float64   `db:"amount_received_usd" json:"amount_received_usd"`
	ChangeDue         float64   `db:"change_due" json:"change_due"`
	PaymentDate       time.Time `db:"payment_date" json:"payment_date"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
}

// WorkBalance is an active work item with its payment aggregate, used when
// preparing a new invoice.
type WorkBalance struct {
	WorkID        int64   `db:"work_id" json:"work_id"`
	WorkType      string  `db:"work_type" json:"work_type"`
	TotalRequired float64 `db:"total_required" json:"total_required"`
	TotalPaid     float64 `db:"total_paid" json:"total_paid"`
	Remaining     float64 `db:"remaining" json:"remaining"`
}

// Invoice is a new tblInvoice row. InvoiceID is filled from the generated
// identity after insert.
type Invoice struct {
	InvoiceID         int64     `db:"invoice_id" json:"invoice_id"`
	WorkID            int64     `db:"work_id" json:"work_id"`
	AmountPaid        float64   `db:"amount_paid" json:"amount_paid"`
	AmountPaidUSD     float64   `db:"amount_paid_usd" json:"amount_paid_usd"`
	AmountReceived    float64   `db:"amount_received" json:"amount_received"`
	AmountReceivedUSD float64   `db:"amount_received_usd" json:"amount_received_usd"`
	ChangeDue         float64   `db:"change_due" json:"change_due"`
	PaymentDate       time.Time `db:"payment_date" json:"payment_date"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
}
