package entities

import (
	"fmt"
	"strings"
	"time"

	"visitlog/internal/visitors/domain/normalize"
)

// DocumentType определяет вариант документа.
type DocumentType string

// Поддерживаемые варианты документа.
const (
	DocumentPassport DocumentType = "passport"
	DocumentLicense  DocumentType = "license"
	DocumentOther    DocumentType = "other"
)

// Подписи вариантов для отображения.
const (
	LabelPassport      = "Паспорт"
	LabelLicense       = "Водительское удостоверение"
	LabelOtherFallback = "Другой документ"
)

const dateLayout = "2006-01-02"

// ParseDocumentType проверяет тег варианта.
func ParseDocumentType(s string) (DocumentType, error) {
	switch t := DocumentType(strings.TrimSpace(s)); t {
	case DocumentPassport, DocumentLicense, DocumentOther:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
	}
}

// Document это закрытая сумма вариантов документа: Passport, License или OtherDocument.
type Document interface {
	Type() DocumentType
	Label() string
	document()
}

// Passport паспорт посетителя.
type Passport struct {
	Series         string
	Number         string
	IssueDate      *time.Time
	IssuedBy       string
	DepartmentCode string
}

func (Passport) Type() DocumentType { return DocumentPassport }
func (Passport) Label() string      { return LabelPassport }
func (Passport) document()          {}

// DisplaySeries возвращает серию в виде "XX XX".
func (p Passport) DisplaySeries() string { return normalize.PassportSeries(p.Series) }

// DisplayDepartmentCode возвращает код подразделения в виде "XXX-XXX".
func (p Passport) DisplayDepartmentCode() string { return normalize.DepartmentCode(p.DepartmentCode) }

// License водительское удостоверение.
type License struct {
	SeriesNumber string
	IssueDate    *time.Time
	Region       string
	IssuedBy     string
}

func (License) Type() DocumentType { return DocumentLicense }
func (License) Label() string      { return LabelLicense }
func (License) document()          {}

// DisplaySeriesNumber возвращает серию и номер в виде "XX XX XXXXXX".
func (l License) DisplaySeriesNumber() string { return normalize.LicenseSeriesNumber(l.SeriesNumber) }

// OtherDocument произвольный документ. SeriesNumberOriginal хранит ввод без изменений.
type OtherDocument struct {
	Name                 string
	SeriesNumber         string
	SeriesNumberOriginal string
	IssueDate            *time.Time
	IssuedBy             string
}

func (OtherDocument) Type() DocumentType { return DocumentOther }
func (OtherDocument) document()          {}

func (o OtherDocument) Label() string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	return LabelOtherFallback
}

// RawDocumentFields содержит все поля документа из запроса, без учета варианта.
type RawDocumentFields struct {
	PassportSeries         string
	PassportNumber         string
	PassportIssueDate      string
	PassportIssuedBy       string
	PassportDepartmentCode string

	LicenseSeriesNumber string
	LicenseIssueDate    string
	LicenseRegion       string
	LicenseIssuedBy     string

	OtherDocumentName string
	OtherSeriesNumber string
	OtherIssueDate    string
	OtherIssuedBy     string
}

// SelectVariant выбирает поля заявленного варианта и нормализует их.
// Поля других вариантов игнорируются.
func SelectVariant(docType string, raw RawDocumentFields) (Document, error) {
	t, err := ParseDocumentType(docType)
	if err != nil {
		return nil, err
	}

	switch t {
	case DocumentPassport:
		issued, err := parseDate(raw.PassportIssueDate)
		if err != nil {
			return nil, err
		}
		return Passport{
			Series:         normalize.Digits(raw.PassportSeries),
			Number:         strings.TrimSpace(raw.PassportNumber),
			IssueDate:      issued,
			IssuedBy:       strings.TrimSpace(raw.PassportIssuedBy),
			DepartmentCode: normalize.Digits(raw.PassportDepartmentCode),
		}, nil
	case DocumentLicense:
		issued, err := parseDate(raw.LicenseIssueDate)
		if err != nil {
			return nil, err
		}
		return License{
			SeriesNumber: normalize.Digits(raw.LicenseSeriesNumber),
			IssueDate:    issued,
			Region:       strings.TrimSpace(raw.LicenseRegion),
			IssuedBy:     strings.TrimSpace(raw.LicenseIssuedBy),
		}, nil
	default:
		issued, err := parseDate(raw.OtherIssueDate)
		if err != nil {
			return nil, err
		}
		return OtherDocument{
			Name:                 strings.TrimSpace(raw.OtherDocumentName),
			SeriesNumber:         normalize.Digits(raw.OtherSeriesNumber),
			SeriesNumberOriginal: raw.OtherSeriesNumber,
			IssueDate:            issued,
			IssuedBy:             strings.TrimSpace(raw.OtherIssuedBy),
		}, nil
	}
}

// DocumentRecord хранимый документ посетителя.
type DocumentRecord struct {
	ID        string
	VisitorID string
	Document  Document
	CreatedBy *string
	DeletedBy *string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// DocumentRef идентифицирует активный документ и его вариант.
type DocumentRef struct {
	ID   string
	Type DocumentType
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &d, nil
}
