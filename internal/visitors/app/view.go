package app

import (
	"time"

	"visitlog/internal/visitors/domain/entities"
)

// VisitView представляет посещение в виде для отображения.
type VisitView struct {
	VisitorID      string
	FullName       string
	DepartmentID   string
	DepartmentName string
	BirthDate      time.Time
	Position       string
	Phone          string
	EntryAt        time.Time
	ExitAt         time.Time
	Remarks        string
	Document       *DocumentView
}

// DocumentView документ посетителя в виде для отображения.
// Заполнены только поля его варианта.
type DocumentView struct {
	Type      entities.DocumentType
	Label     string
	IssueDate *time.Time
	IssuedBy  string

	Series         string
	Number         string
	DepartmentCode string

	SeriesNumber string
	Region       string

	Name string
}

func newVisitView(v *entities.Visitor, departmentName string, record *entities.DocumentRecord) *VisitView {
	view := &VisitView{
		VisitorID:      v.ID,
		FullName:       v.FullName,
		DepartmentID:   v.DepartmentID,
		DepartmentName: departmentName,
		BirthDate:      v.BirthDate,
		Position:       v.Position,
		Phone:          v.DisplayPhone(),
		EntryAt:        v.EntryAt,
		ExitAt:         v.ExitAt,
	}
	if v.Remarks != nil {
		view.Remarks = *v.Remarks
	}
	if record != nil {
		view.Document = newDocumentView(record.Document)
	}
	return view
}

func newDocumentView(doc entities.Document) *DocumentView {
	view := &DocumentView{Type: doc.Type(), Label: doc.Label()}

	switch d := doc.(type) {
	case entities.Passport:
		view.Series = d.DisplaySeries()
		view.Number = d.Number
		view.DepartmentCode = d.DisplayDepartmentCode()
		view.IssueDate = d.IssueDate
		view.IssuedBy = d.IssuedBy
	case entities.License:
		view.SeriesNumber = d.DisplaySeriesNumber()
		view.Region = d.Region
		view.IssueDate = d.IssueDate
		view.IssuedBy = d.IssuedBy
	case entities.OtherDocument:
		view.Name = d.Name
		view.SeriesNumber = d.SeriesNumberOriginal
		view.IssueDate = d.IssueDate
		view.IssuedBy = d.IssuedBy
	}

	return view
}
