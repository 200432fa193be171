package postgres

import (
	"errors"
	"fmt"
	"time"

	"visitlog/internal/visitors/domain/entities"
)

// ErrUnknownStoredType возвращается, если в хранилище найден неизвестный тип документа.
var ErrUnknownStoredType = errors.New("unknown document type in storage")

// Колонки вариантов в порядке variantArgs.
const variantColumns = `passport_series, passport_number, passport_issue_date, passport_issued_by, passport_department_code,
                license_series_number, license_issue_date, license_region, license_issued_by,
                other_document_name, other_series_number, other_series_number_original, other_issue_date, other_issued_by`

// documentRow плоская строка таблицы documents. Заполнены только колонки своего варианта.
type documentRow struct {
	ID        string
	VisitorID string
	Type      string

	PassportSeries         *string
	PassportNumber         *string
	PassportIssueDate      *time.Time
	PassportIssuedBy       *string
	PassportDepartmentCode *string

	LicenseSeriesNumber *string
	LicenseIssueDate    *time.Time
	LicenseRegion       *string
	LicenseIssuedBy     *string

	OtherDocumentName         *string
	OtherSeriesNumber         *string
	OtherSeriesNumberOriginal *string
	OtherIssueDate            *time.Time
	OtherIssuedBy             *string

	CreatedBy *string
	DeletedBy *string
	CreatedAt time.Time
	DeletedAt *time.Time
}

func rowFromDocument(doc entities.Document) documentRow {
	row := documentRow{Type: string(doc.Type())}

	switch d := doc.(type) {
	case entities.Passport:
		row.PassportSeries = nullable(d.Series)
		row.PassportNumber = nullable(d.Number)
		row.PassportIssueDate = d.IssueDate
		row.PassportIssuedBy = nullable(d.IssuedBy)
		row.PassportDepartmentCode = nullable(d.DepartmentCode)
	case entities.License:
		row.LicenseSeriesNumber = nullable(d.SeriesNumber)
		row.LicenseIssueDate = d.IssueDate
		row.LicenseRegion = nullable(d.Region)
		row.LicenseIssuedBy = nullable(d.IssuedBy)
	case entities.OtherDocument:
		row.OtherDocumentName = nullable(d.Name)
		row.OtherSeriesNumber = nullable(d.SeriesNumber)
		row.OtherSeriesNumberOriginal = nullable(d.SeriesNumberOriginal)
		row.OtherIssueDate = d.IssueDate
		row.OtherIssuedBy = nullable(d.IssuedBy)
	}

	return row
}

func (r *documentRow) variantArgs() []any {
	return []any{
		r.PassportSeries, r.PassportNumber, r.PassportIssueDate, r.PassportIssuedBy, r.PassportDepartmentCode,
		r.LicenseSeriesNumber, r.LicenseIssueDate, r.LicenseRegion, r.LicenseIssuedBy,
		r.OtherDocumentName, r.OtherSeriesNumber, r.OtherSeriesNumberOriginal, r.OtherIssueDate, r.OtherIssuedBy,
	}
}

func (r *documentRow) scanDest() []any {
	return []any{
		&r.ID, &r.VisitorID, &r.Type,
		&r.PassportSeries, &r.PassportNumber, &r.PassportIssueDate, &r.PassportIssuedBy, &r.PassportDepartmentCode,
		&r.LicenseSeriesNumber, &r.LicenseIssueDate, &r.LicenseRegion, &r.LicenseIssuedBy,
		&r.OtherDocumentName, &r.OtherSeriesNumber, &r.OtherSeriesNumberOriginal, &r.OtherIssueDate, &r.OtherIssuedBy,
		&r.CreatedBy, &r.DeletedBy, &r.CreatedAt, &r.DeletedAt,
	}
}

func (r *documentRow) document() (entities.Document, error) {
	switch entities.DocumentType(r.Type) {
	case entities.DocumentPassport:
		return entities.Passport{
			Series:         valueOf(r.PassportSeries),
			Number:         valueOf(r.PassportNumber),
			IssueDate:      r.PassportIssueDate,
			IssuedBy:       valueOf(r.PassportIssuedBy),
			DepartmentCode: valueOf(r.PassportDepartmentCode),
		}, nil
	case entities.DocumentLicense:
		return entities.License{
			SeriesNumber: valueOf(r.LicenseSeriesNumber),
			IssueDate:    r.LicenseIssueDate,
			Region:       valueOf(r.LicenseRegion),
			IssuedBy:     valueOf(r.LicenseIssuedBy),
		}, nil
	case entities.DocumentOther:
		return entities.OtherDocument{
			Name:                 valueOf(r.OtherDocumentName),
			SeriesNumber:         valueOf(r.OtherSeriesNumber),
			SeriesNumberOriginal: valueOf(r.OtherSeriesNumberOriginal),
			IssueDate:            r.OtherIssueDate,
			IssuedBy:             valueOf(r.OtherIssuedBy),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoredType, r.Type)
	}
}

func (r *documentRow) record() (*entities.DocumentRecord, error) {
	doc, err := r.document()
	if err != nil {
		return nil, err
	}
	return &entities.DocumentRecord{
		ID:        r.ID,
		VisitorID: r.VisitorID,
		Document:  doc,
		CreatedBy: r.CreatedBy,
		DeletedBy: r.DeletedBy,
		CreatedAt: r.CreatedAt,
		DeletedAt: r.DeletedAt,
	}, nil
}
