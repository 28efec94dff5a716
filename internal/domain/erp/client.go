package erp

import "context"

// Client is the port to the upstream billing backend. Implementations
// live in internal/infrastructure/erp.
type Client interface {
	// TodayRate fetches the current gold/silver board rates.
	TodayRate(ctx context.Context) (*TodayRate, error)

	// ListItems fetches the stock item catalogue.
	ListItems(ctx context.Context) ([]ItemRow, error)

	// TagIssueStatus checks whether a tag has already been issued.
	// Returns nil (no error) when the backend has no record of the tag.
	TagIssueStatus(ctx context.Context, itemID int, tagNo string) (*TagStatus, error)

	// EstimationRows fetches the priced component rows for a tag.
	EstimationRows(ctx context.Context, itemID int, tagNo string) ([]EstimationRow, error)

	// NextTranNo fetches the next transaction number.
	NextTranNo(ctx context.Context) (string, error)

	// EstBatchNo fetches the estimation batch number for the given bill date.
	EstBatchNo(ctx context.Context, costID, billDate, companyID string, isEstimate bool) (string, error)

	// StoneInputs fetches the stone rows recorded against a tag.
	StoneInputs(ctx context.Context, itemID int, tagNo string) ([]StoneInput, error)

	// StoneCatCode fetches the stone category code for a stone item.
	StoneCatCode(ctx context.Context, itemID int, stnItemID string) (string, error)

	// TagMeta fetches stock metadata for a tag.
	TagMeta(ctx context.Context, tagNo string) (*TagMeta, error)

	// TranDate fetches the issuance date recorded for a tag.
	TranDate(ctx context.Context, itemID int, tagNo string) (string, error)

	// PostIssueBatch posts the assembled transaction-item records and
	// returns the per-tag sequence acknowledgements.
	PostIssueBatch(ctx context.Context, records []IssueRecord) ([]IssueAck, error)

	// NextStoneSno fetches the next stone-line sequence number.
	NextStoneSno(ctx context.Context, costID, companyID string) (string, error)

	// PostStoneBatch posts stone lines. Uses a shorter timeout than
	// the rest of the client.
	PostStoneBatch(ctx context.Context, records []StoneRecord) error

	// NextTaxSno fetches the next tax-entry sequence number.
	NextTaxSno(ctx context.Context, costID, companyID string) (string, error)

	// TaxDetails fetches the tax configuration rows for an item.
	TaxDetails(ctx context.Context, itemID int) ([]TaxDetail, error)

	// PostTaxEntry posts a single GST entry.
	PostTaxEntry(ctx context.Context, record TaxRecord) error

	// AdvanceTranNo advances the backend transaction counter.
	AdvanceTranNo(ctx context.Context) error

	// IPAddress fetches the backend-visible client IP.
	IPAddress(ctx context.Context) (string, error)

	// TranDetails fetches the posted transaction header.
	TranDetails(ctx context.Context, tranNo string) (*TranDetails, error)

	// PostPrintMeta registers print metadata for a submitted estimation.
	PostPrintMeta(ctx context.Context, meta PrintMeta) error

	// PrintedRows fetches the posted item rows for receipt composition.
	PrintedRows(ctx context.Context, estBatchNo string) ([]PrintedRow, error)

	// Offer fetches the optional weight-based discount for a tag.
	Offer(ctx context.Context, tagNo string) (*Offer, error)
}
