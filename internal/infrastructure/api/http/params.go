package http

const (
	TransactionIDParam = "transactionID"
	ProjectIDParam     = "projectID"

	ApproverIDHeader = "X-Approver-ID"

	DateLayout = "2006-01-02"
)
