package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
	"visitlog/pkg/logger"
)

const seedConcurrency = 4

var (
	seedSurnames    = []string{"иванов", "петров", "сидоров", "кузнецов", "смирнов", "попов", "соколов", "лебедев"}
	seedFirstNames  = []string{"иван", "петр", "алексей", "сергей", "андрей", "дмитрий", "михаил", "николай"}
	seedPositions   = []string{"инженер", "менеджер", "бухгалтер", "курьер", "аудитор", "монтажник"}
	seedDepartments = []string{"бухгалтерия", "охрана", "отдел кадров", "юридический отдел", "склад", "канцелярия"}
	seedRegions     = []string{"Москва", "Санкт-Петербург", "Тверская область", "Казань"}
	seedOtherNames  = []string{"Военный билет", "Служебное удостоверение", "Загранпаспорт"}
	seedDocTypes    = []entities.DocumentType{entities.DocumentPassport, entities.DocumentLicense, entities.DocumentOther}
)

// SeedResult содержит число созданных записей.
type SeedResult struct {
	Departments int
	Visitors    int
}

// Seeder заполняет пустую базу тестовыми подразделениями и посещениями.
// Посещения создаются через VisitCoordinator и проходят те же проверки.
type Seeder struct {
	departments repositories.DepartmentRepository
	coordinator *VisitCoordinator
	rnd         *rand.Rand
	now         func() time.Time
}

// NewSeeder создает Seeder с детерминированным генератором.
func NewSeeder(departments repositories.DepartmentRepository, coordinator *VisitCoordinator, seed uint64) *Seeder {
	return &Seeder{
		departments: departments,
		coordinator: coordinator,
		rnd:         rand.New(rand.NewPCG(seed, seed)),
		now:         time.Now,
	}
}

type seedVisit struct {
	fields    entities.VisitorFields
	docType   entities.DocumentType
	docFields entities.RawDocumentFields
}

// Seed создает departmentCount подразделений и visitorsPerType посещений для каждого варианта документа.
func (s *Seeder) Seed(ctx context.Context, actorID string, departmentCount, visitorsPerType int) (*SeedResult, error) {
	ctx = logger.NewActorContext(ctx, actorID)
	log := logger.Log(ctx).With(zap.String("method", "Seeder.Seed"))
	log.Info(ctx, "seeding database",
		zap.Int("departments", departmentCount), zap.Int("visitorsPerType", visitorsPerType))

	if departmentCount <= 0 {
		return &SeedResult{}, nil
	}

	departmentIDs := make([]string, 0, departmentCount)
	for i := range departmentCount {
		name := seedDepartments[i%len(seedDepartments)]
		if i >= len(seedDepartments) {
			name += " " + strconv.Itoa(i/len(seedDepartments)+1)
		}
		id, err := s.departments.Create(ctx, name, actorID)
		if err != nil {
			return nil, fmt.Errorf("failed to seed department: %w", err)
		}
		departmentIDs = append(departmentIDs, id)
	}

	visits := make([]seedVisit, 0, visitorsPerType*len(seedDocTypes))
	for _, docType := range seedDocTypes {
		for range visitorsPerType {
			visits = append(visits, s.visit(docType, departmentIDs))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, v := range visits {
		g.Go(func() error {
			_, err := s.coordinator.CreateVisit(gctx, v.fields, string(v.docType), v.docFields, actorID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to seed visitors: %w", err)
	}

	result := &SeedResult{Departments: len(departmentIDs), Visitors: len(visits)}
	log.Info(ctx, "database seeded", zap.Int("departments", result.Departments), zap.Int("visitors", result.Visitors))
	return result, nil
}

func (s *Seeder) visit(docType entities.DocumentType, departmentIDs []string) seedVisit {
	entry := s.now().Add(-time.Duration(s.rnd.IntN(30*24)) * time.Hour).Truncate(time.Minute)
	issued := s.now().AddDate(-1-s.rnd.IntN(10), 0, 0).Format("2006-01-02")

	v := seedVisit{
		fields: entities.VisitorFields{
			FullName:     pick(s.rnd, seedSurnames) + " " + pick(s.rnd, seedFirstNames),
			DepartmentID: pick(s.rnd, departmentIDs),
			BirthDate:    time.Date(1960+s.rnd.IntN(45), time.Month(1+s.rnd.IntN(12)), 1+s.rnd.IntN(28), 0, 0, 0, 0, time.UTC),
			Position:     pick(s.rnd, seedPositions),
			Phone:        "7" + s.digits(10),
			EntryAt:      entry,
			ExitAt:       entry.Add(time.Duration(1+s.rnd.IntN(8)) * time.Hour),
		},
		docType: docType,
	}

	switch docType {
	case entities.DocumentPassport:
		v.docFields = entities.RawDocumentFields{
			PassportSeries:         s.digits(4),
			PassportNumber:         s.digits(6),
			PassportIssueDate:      issued,
			PassportIssuedBy:       "ОВД " + pick(s.rnd, seedRegions),
			PassportDepartmentCode: s.digits(6),
		}
	case entities.DocumentLicense:
		v.docFields = entities.RawDocumentFields{
			LicenseSeriesNumber: s.digits(10),
			LicenseIssueDate:    issued,
			LicenseRegion:       pick(s.rnd, seedRegions),
			LicenseIssuedBy:     "ГИБДД " + s.digits(4),
		}
	default:
		v.docFields = entities.RawDocumentFields{
			OtherDocumentName: pick(s.rnd, seedOtherNames),
			OtherSeriesNumber: s.digits(2) + "-" + s.digits(7),
			OtherIssueDate:    issued,
			OtherIssuedBy:     pick(s.rnd, seedRegions),
		}
	}

	return v
}

func (s *Seeder) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + s.rnd.IntN(10))
	}
	return string(b)
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.IntN(len(items))]
}
