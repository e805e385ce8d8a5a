// Package edinet provides a client for the EDINET API v2 (Japan FSA electronic disclosure).
package edinet

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteCall classifies every failure of a remote call: transport errors,
	// non-200 HTTP statuses and API-level error statuses.
	ErrRemoteCall = errors.New("EDINET remote call failed")

	// ErrMissingAPIKey is returned before any request when no API key is configured.
	ErrMissingAPIKey = errors.New("EDINET API key is not set (EDINET_API_KEY)")

	// ErrInvalidDocumentType is returned for document types the API does not serve.
	ErrInvalidDocumentType = errors.New("invalid EDINET document type")
)

// DocumentType selects the format returned by the document download endpoint.
type DocumentType string

const (
	DocumentTypeXBRL         DocumentType = "1" // ZIP: XBRL, PDF and audit report
	DocumentTypePDF          DocumentType = "2" // submitted PDF
	DocumentTypeAlternatePDF DocumentType = "3" // alternative / English PDF
	DocumentTypeCSV          DocumentType = "5" // ZIP: CSV converted from XBRL
)

// Valid reports whether t is a document type the API serves.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeXBRL, DocumentTypePDF, DocumentTypeAlternatePDF, DocumentTypeCSV:
		return true
	}
	return false
}

// Well-known codes for SearchFilters.
const (
	OrdinanceCodeFIEA    = "010"    // Financial Instruments and Exchange Act disclosure
	FormCodeAnnualReport = "030000" // annual securities report
)

// SearchFilters narrows SearchDocuments results. Empty fields do not filter.
type SearchFilters struct {
	// SecCode matches on its first 4 characters against the first 4 of the
	// 5-digit registry code, so "5819" matches "58190".
	SecCode       string
	OrdinanceCode string
	FormCode      string
}

// Document is the metadata of one filing returned by the documents list endpoint.
type Document struct {
	SeqNumber            int     `json:"seqNumber"`
	DocID                string  `json:"docID"`
	EdinetCode           *string `json:"edinetCode"`
	SecCode              *string `json:"secCode"`
	JCN                  *string `json:"JCN"`
	FilerName            *string `json:"filerName"`
	FundCode             *string `json:"fundCode"`
	OrdinanceCode        *string `json:"ordinanceCode"`
	FormCode             *string `json:"formCode"`
	DocTypeCode          *string `json:"docTypeCode"`
	PeriodStart          *string `json:"periodStart"`
	PeriodEnd            *string `json:"periodEnd"`
	SubmitDateTime       *string `json:"submitDateTime"`
	DocDescription       *string `json:"docDescription"`
	IssuerEdinetCode     *string `json:"issuerEdinetCode"`
	SubjectEdinetCode    *string `json:"subjectEdinetCode"`
	SubsidiaryEdinetCode *string `json:"subsidiaryEdinetCode"`
	CurrentReportReason  *string `json:"currentReportReason"`
	ParentDocID          *string `json:"parentDocID"`
	OpeDateTime          *string `json:"opeDateTime"`
	WithdrawalStatus     string  `json:"withdrawalStatus"`
	DocInfoEditStatus    string  `json:"docInfoEditStatus"`
	DisclosureStatus     string  `json:"disclosureStatus"`
	XBRLFlag             string  `json:"xbrlFlag"`
	PDFFlag              string  `json:"pdfFlag"`
	AttachDocFlag        string  `json:"attachDocFlag"`
	EnglishDocFlag       string  `json:"englishDocFlag"`
	CSVFlag              string  `json:"csvFlag"`
	LegalStatus          string  `json:"legalStatus"`
}

// documentsResponse is the documents.json envelope.
type documentsResponse struct {
	Metadata struct {
		Title     string `json:"title"`
		Status    string `json:"status"`
		Message   string `json:"message"`
		Resultset struct {
			Count int `json:"count"`
		} `json:"resultset"`
	} `json:"metadata"`
	Results []Document `json:"results"`
}

// APIError represents a non-success response from the EDINET API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EDINET API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Unwrap classifies every APIError as ErrRemoteCall.
func (e *APIError) Unwrap() error {
	return ErrRemoteCall
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
