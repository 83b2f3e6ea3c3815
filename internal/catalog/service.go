package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/db"
	"github.com/kareemadel/printshop-backend/pkg/db/models"
	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

// Service exposes catalog management plus the customer-facing read paths.
type Service interface {
	CreateYear(ctx context.Context, input CreateYearInput) (*YearDTO, error)
	UpdateYear(ctx context.Context, id uuid.UUID, input UpdateYearInput) (*YearDTO, error)
	DeleteYear(ctx context.Context, id uuid.UUID) error
	ListYears(ctx context.Context, activeOnly bool) ([]YearDTO, error)

	CreateSubject(ctx context.Context, input CreateSubjectInput) (*SubjectDTO, error)
	UpdateSubject(ctx context.Context, id uuid.UUID, input UpdateSubjectInput) (*SubjectDTO, error)
	DeleteSubject(ctx context.Context, id uuid.UUID) error
	ListSubjects(ctx context.Context, yearID *uuid.UUID, activeOnly bool) ([]SubjectDTO, error)

	CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error)
	UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ListBooks(ctx context.Context, subjectID *uuid.UUID, activeOnly bool) ([]BookDTO, error)

	CreatePrintTier(ctx context.Context, input CreatePrintTierInput) (*PrintTierDTO, error)
	UpdatePrintTier(ctx context.Context, id uuid.UUID, input UpdatePrintTierInput) (*PrintTierDTO, error)
	DeletePrintTier(ctx context.Context, id uuid.UUID) error
	ListPrintTiers(ctx context.Context, activeOnly bool) ([]PrintTierDTO, error)

	CreateAddOn(ctx context.Context, input CreateAddOnInput) (*AddOnDTO, error)
	UpdateAddOn(ctx context.Context, id uuid.UUID, input UpdateAddOnInput) (*AddOnDTO, error)
	DeleteAddOn(ctx context.Context, id uuid.UUID) error
	ListAddOns(ctx context.Context, activeOnly bool) ([]AddOnDTO, error)

	Dashboard(ctx context.Context) (*DashboardDTO, error)

	CustomerYears(ctx context.Context) ([]YearDTO, error)
	CustomerSubjects(ctx context.Context, yearID uuid.UUID) ([]SubjectDTO, error)
	CustomerBooks(ctx context.Context, subjectID uuid.UUID) ([]BookDTO, error)
	CustomerBookTree(ctx context.Context) ([]YearGroupDTO, error)
	CustomerOptions(ctx context.Context) (*OptionsDTO, error)
	VisibleBookLineage(ctx context.Context, bookID uuid.UUID) (*BookLineage, error)
}

// CreateYearInput holds the validated payload to create an academic year.
type CreateYearInput struct {
	Name        string
	Description *string
	IsActive    *bool
}

// UpdateYearInput holds optional mutation values for an academic year.
type UpdateYearInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type CreateSubjectInput struct {
	YearID      uuid.UUID
	Name        string
	Description *string
	IsActive    *bool
}

type UpdateSubjectInput struct {
	YearID      *uuid.UUID
	Name        *string
	Description *string
	IsActive    *bool
}

type CreateBookInput struct {
	SubjectID   uuid.UUID
	Name        string
	PageCount   int
	Description *string
	IsActive    *bool
}

type UpdateBookInput struct {
	SubjectID   *uuid.UUID
	Name        *string
	PageCount   *int
	Description *string
	IsActive    *bool
}

type CreatePrintTierInput struct {
	Name         string
	PricePerUnit decimal.Decimal
	PagesPerUnit int
	Description  *string
	IsActive     *bool
}

type UpdatePrintTierInput struct {
	Name         *string
	PricePerUnit *decimal.Decimal
	PagesPerUnit *int
	Description  *string
	IsActive     *bool
}

type CreateAddOnInput struct {
	Name        string
	Price       decimal.Decimal
	Description *string
	IsActive    *bool
}

type UpdateAddOnInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	IsActive    *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}

func conflictOrDependency(err error, entity string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, entity+" name already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist "+entity)
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// --- academic years ---

func (s *service) CreateYear(ctx context.Context, input CreateYearInput) (*YearDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year name required")
	}
	year := &models.AcademicYear{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		IsActive:    activeOrDefault(input.IsActive),
	}
	created, err := s.repo.CreateYear(ctx, year)
	if err != nil {
		return nil, conflictOrDependency(err, "year")
	}
	return NewYearDTO(created), nil
}

func (s *service) UpdateYear(ctx context.Context, id uuid.UUID, input UpdateYearInput) (*YearDTO, error) {
	if _, err := s.repo.FindYear(ctx, id); err != nil {
		return nil, notFound(err, "year")
	}
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "year name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateYear(ctx, id, updates); err != nil {
			return nil, conflictOrDependency(err, "year")
		}
	}
	year, err := s.repo.FindYear(ctx, id)
	if err != nil {
		return nil, notFound(err, "year")
	}
	return NewYearDTO(year), nil
}

func (s *service) DeleteYear(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindYear(ctx, id); err != nil {
		return notFound(err, "year")
	}
	if err := s.repo.DeleteYear(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete year")
	}
	return nil
}

func (s *service) ListYears(ctx context.Context, activeOnly bool) ([]YearDTO, error) {
	rows, err := s.repo.ListYears(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list years")
	}
	return newYearDTOs(rows), nil
}

// --- subjects ---

func (s *service) CreateSubject(ctx context.Context, input CreateSubjectInput) (*SubjectDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject name required")
	}
	if input.YearID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year id required")
	}
	if _, err := s.repo.FindYear(ctx, input.YearID); err != nil {
		return nil, notFound(err, "year")
	}
	subject := &models.Subject{
		ID:          uuid.New(),
		YearID:      input.YearID,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    activeOrDefault(input.IsActive),
	}
	created, err := s.repo.CreateSubject(ctx, subject)
	if err != nil {
		return nil, conflictOrDependency(err, "subject")
	}
	return NewSubjectDTO(created), nil
}

func (s *service) UpdateSubject(ctx context.Context, id uuid.UUID, input UpdateSubjectInput) (*SubjectDTO, error) {
	if _, err := s.repo.FindSubject(ctx, id); err != nil {
		return nil, notFound(err, "subject")
	}
	updates := map[string]any{}
	if input.YearID != nil {
		if _, err := s.repo.FindYear(ctx, *input.YearID); err != nil {
			return nil, notFound(err, "year")
		}
		updates["year_id"] = *input.YearID
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateSubject(ctx, id, updates); err != nil {
			return nil, conflictOrDependency(err, "subject")
		}
	}
	subject, err := s.repo.FindSubject(ctx, id)
	if err != nil {
		return nil, notFound(err, "subject")
	}
	return NewSubjectDTO(subject), nil
}

func (s *service) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSubject(ctx, id); err != nil {
		return notFound(err, "subject")
	}
	if err := s.repo.DeleteSubject(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete subject")
	}
	return nil
}

func (s *service) ListSubjects(ctx context.Context, yearID *uuid.UUID, activeOnly bool) ([]SubjectDTO, error) {
	rows, err := s.repo.ListSubjects(ctx, yearID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subjects")
	}
	return newSubjectDTOs(rows), nil
}

// --- books ---

func (s *service) CreateBook(ctx context.Context, input CreateBookInput) (*BookDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "book name required")
	}
	if input.PageCount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page_count must be positive")
	}
	if input.SubjectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject id required")
	}
	if _, err := s.repo.FindSubject(ctx, input.SubjectID); err != nil {
		return nil, notFound(err, "subject")
	}
	book := &models.Book{
		ID:          uuid.New(),
		SubjectID:   input.SubjectID,
		Name:        input.Name,
		PageCount:   input.PageCount,
		Description: input.Description,
		IsActive:    activeOrDefault(input.IsActive),
	}
	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist book")
	}
	return NewBookDTO(created), nil
}

func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, input UpdateBookInput) (*BookDTO, error) {
	if _, err := s.repo.FindBook(ctx, id); err != nil {
		return nil, notFound(err, "book")
	}
	updates := map[string]any{}
	if input.SubjectID != nil {
		if _, err := s.repo.FindSubject(ctx, *input.SubjectID); err != nil {
			return nil, notFound(err, "subject")
		}
		updates["subject_id"] = *input.SubjectID
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "book name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.PageCount != nil {
		if *input.PageCount <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page_count must be positive")
		}
		updates["page_count"] = *input.PageCount
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateBook(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update book")
		}
	}
	book, err := s.repo.FindBook(ctx, id)
	if err != nil {
		return nil, notFound(err, "book")
	}
	return NewBookDTO(book), nil
}

func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindBook(ctx, id); err != nil {
		return notFound(err, "book")
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete book")
	}
	return nil
}

func (s *service) ListBooks(ctx context.Context, subjectID *uuid.UUID, activeOnly bool) ([]BookDTO, error) {
	rows, err := s.repo.ListBooks(ctx, subjectID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}
	return newBookDTOs(rows), nil
}

// --- print tiers ---

func (s *service) CreatePrintTier(ctx context.Context, input CreatePrintTierInput) (*PrintTierDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "print tier name required")
	}
	if input.PricePerUnit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit cannot be negative")
	}
	if input.PagesPerUnit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pages_per_unit must be positive")
	}
	tier := &models.PrintTier{
		ID:           uuid.New(),
		Name:         input.Name,
		PricePerUnit: input.PricePerUnit,
		PagesPerUnit: input.PagesPerUnit,
		Description:  input.Description,
		IsActive:     activeOrDefault(input.IsActive),
	}
	created, err := s.repo.CreatePrintTier(ctx, tier)
	if err != nil {
		return nil, conflictOrDependency(err, "print tier")
	}
	return NewPrintTierDTO(created), nil
}

func (s *service) UpdatePrintTier(ctx context.Context, id uuid.UUID, input UpdatePrintTierInput) (*PrintTierDTO, error) {
	if _, err := s.repo.FindPrintTier(ctx, id); err != nil {
		return nil, notFound(err, "print tier")
	}
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "print tier name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.PricePerUnit != nil {
		if input.PricePerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_per_unit cannot be negative")
		}
		updates["price_per_unit"] = *input.PricePerUnit
	}
	if input.PagesPerUnit != nil {
		if *input.PagesPerUnit <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pages_per_unit must be positive")
		}
		updates["pages_per_unit"] = *input.PagesPerUnit
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdatePrintTier(ctx, id, updates); err != nil {
			return nil, conflictOrDependency(err, "print tier")
		}
	}
	tier, err := s.repo.FindPrintTier(ctx, id)
	if err != nil {
		return nil, notFound(err, "print tier")
	}
	return NewPrintTierDTO(tier), nil
}

func (s *service) DeletePrintTier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindPrintTier(ctx, id); err != nil {
		return notFound(err, "print tier")
	}
	if err := s.repo.DeletePrintTier(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete print tier")
	}
	return nil
}

func (s *service) ListPrintTiers(ctx context.Context, activeOnly bool) ([]PrintTierDTO, error) {
	rows, err := s.repo.ListPrintTiers(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list print tiers")
	}
	return newPrintTierDTOs(rows), nil
}

// --- add-ons ---

func (s *service) CreateAddOn(ctx context.Context, input CreateAddOnInput) (*AddOnDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "add-on name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	addon := &models.AddOn{
		ID:          uuid.New(),
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		IsActive:    activeOrDefault(input.IsActive),
	}
	created, err := s.repo.CreateAddOn(ctx, addon)
	if err != nil {
		return nil, conflictOrDependency(err, "add-on")
	}
	return NewAddOnDTO(created), nil
}

func (s *service) UpdateAddOn(ctx context.Context, id uuid.UUID, input UpdateAddOnInput) (*AddOnDTO, error) {
	if _, err := s.repo.FindAddOn(ctx, id); err != nil {
		return nil, notFound(err, "add-on")
	}
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "add-on name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateAddOn(ctx, id, updates); err != nil {
			return nil, conflictOrDependency(err, "add-on")
		}
	}
	addon, err := s.repo.FindAddOn(ctx, id)
	if err != nil {
		return nil, notFound(err, "add-on")
	}
	return NewAddOnDTO(addon), nil
}

func (s *service) DeleteAddOn(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindAddOn(ctx, id); err != nil {
		return notFound(err, "add-on")
	}
	if err := s.repo.DeleteAddOn(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete add-on")
	}
	return nil
}

func (s *service) ListAddOns(ctx context.Context, activeOnly bool) ([]AddOnDTO, error) {
	rows, err := s.repo.ListAddOns(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list add-ons")
	}
	return newAddOnDTOs(rows), nil
}

// --- dashboard ---

func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	counts, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count catalog")
	}
	return &DashboardDTO{
		Years:      counts.Years,
		Subjects:   counts.Subjects,
		Books:      counts.Books,
		PrintTiers: counts.PrintTiers,
		AddOns:     counts.AddOns,
		Invoices:   counts.Invoices,
	}, nil
}

// --- customer views ---
//
// Customer reads filter at every traversal level: a record with an
// inactive ancestor stays hidden even when the record itself is active.

func (s *service) CustomerYears(ctx context.Context) ([]YearDTO, error) {
	return s.ListYears(ctx, true)
}

func (s *service) CustomerSubjects(ctx context.Context, yearID uuid.UUID) ([]SubjectDTO, error) {
	year, err := s.repo.FindYear(ctx, yearID)
	if err != nil {
		return nil, notFound(err, "year")
	}
	if !year.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "year not found")
	}
	return s.ListSubjects(ctx, &yearID, true)
}

func (s *service) CustomerBooks(ctx context.Context, subjectID uuid.UUID) ([]BookDTO, error) {
	subject, err := s.repo.FindSubject(ctx, subjectID)
	if err != nil {
		return nil, notFound(err, "subject")
	}
	if !subject.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subject not found")
	}
	year, err := s.repo.FindYear(ctx, subject.YearID)
	if err != nil {
		return nil, notFound(err, "year")
	}
	if !year.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subject not found")
	}
	return s.ListBooks(ctx, &subjectID, true)
}

// CustomerBookTree returns every visible book grouped under its subject
// and year, for the storefront landing view.
func (s *service) CustomerBookTree(ctx context.Context) ([]YearGroupDTO, error) {
	years, err := s.repo.ListYears(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list years")
	}
	subjects, err := s.repo.ListSubjects(ctx, nil, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subjects")
	}
	books, err := s.repo.ListBooks(ctx, nil, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list books")
	}

	booksBySubject := make(map[uuid.UUID][]BookDTO)
	for i := range books {
		booksBySubject[books[i].SubjectID] = append(booksBySubject[books[i].SubjectID], *NewBookDTO(&books[i]))
	}
	subjectsByYear := make(map[uuid.UUID][]SubjectGroupDTO)
	for i := range subjects {
		group := SubjectGroupDTO{
			Subject: *NewSubjectDTO(&subjects[i]),
			Books:   booksBySubject[subjects[i].ID],
		}
		if group.Books == nil {
			group.Books = []BookDTO{}
		}
		subjectsByYear[subjects[i].YearID] = append(subjectsByYear[subjects[i].YearID], group)
	}

	tree := make([]YearGroupDTO, 0, len(years))
	for i := range years {
		group := YearGroupDTO{
			Year:     *NewYearDTO(&years[i]),
			Subjects: subjectsByYear[years[i].ID],
		}
		if group.Subjects == nil {
			group.Subjects = []SubjectGroupDTO{}
		}
		tree = append(tree, group)
	}
	return tree, nil
}

// CustomerOptions bundles the active print tiers and add-ons offered at
// checkout.
func (s *service) CustomerOptions(ctx context.Context) (*OptionsDTO, error) {
	tiers, err := s.ListPrintTiers(ctx, true)
	if err != nil {
		return nil, err
	}
	addons, err := s.ListAddOns(ctx, true)
	if err != nil {
		return nil, err
	}
	if tiers == nil {
		tiers = []PrintTierDTO{}
	}
	if addons == nil {
		addons = []AddOnDTO{}
	}
	return &OptionsDTO{PrintTiers: tiers, AddOns: addons}, nil
}

// VisibleBookLineage loads a book with its parents, requiring the whole
// chain to be active.
func (s *service) VisibleBookLineage(ctx context.Context, bookID uuid.UUID) (*BookLineage, error) {
	lineage, err := s.repo.FindBookLineage(ctx, bookID)
	if err != nil {
		return nil, notFound(err, "book")
	}
	if !lineage.Book.IsActive || !lineage.Subject.IsActive || !lineage.Year.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
	}
	return lineage, nil
}
