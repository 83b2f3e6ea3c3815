package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
)

// Repository wires together catalog persistence for all five entity types.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func activeScope(activeOnly bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			return db.Where("is_active = ?", true)
		}
		return db
	}
}

// --- academic years ---

func (r *Repository) CreateYear(ctx context.Context, year *models.AcademicYear) (*models.AcademicYear, error) {
	if err := r.db.WithContext(ctx).Create(year).Error; err != nil {
		return nil, err
	}
	return year, nil
}

func (r *Repository) FindYear(ctx context.Context, id uuid.UUID) (*models.AcademicYear, error) {
	var year models.AcademicYear
	if err := r.db.WithContext(ctx).First(&year, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &year, nil
}

func (r *Repository) ListYears(ctx context.Context, activeOnly bool) ([]models.AcademicYear, error) {
	var rows []models.AcademicYear
	err := r.db.WithContext(ctx).
		Scopes(activeScope(activeOnly)).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateYear(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.AcademicYear{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteYear removes the year and all descendant subjects and books in one
// transaction. The database cascade covers postgres; the explicit deletes
// keep sqlite test databases honest too.
func (r *Repository) DeleteYear(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subjectIDs := tx.Model(&models.Subject{}).Select("id").Where("year_id = ?", id)
		if err := tx.Where("subject_id IN (?)", subjectIDs).Delete(&models.Book{}).Error; err != nil {
			return err
		}
		if err := tx.Where("year_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.AcademicYear{}).Error
	})
}

// --- subjects ---

func (r *Repository) CreateSubject(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if err := r.db.WithContext(ctx).Create(subject).Error; err != nil {
		return nil, err
	}
	return subject, nil
}

func (r *Repository) FindSubject(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *Repository) ListSubjects(ctx context.Context, yearID *uuid.UUID, activeOnly bool) ([]models.Subject, error) {
	q := r.db.WithContext(ctx).Scopes(activeScope(activeOnly))
	if yearID != nil {
		q = q.Where("year_id = ?", *yearID)
	}
	var rows []models.Subject
	err := q.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateSubject(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Subject{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&models.Book{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Subject{}).Error
	})
}

// --- books ---

func (r *Repository) CreateBook(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (r *Repository) FindBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *Repository) ListBooks(ctx context.Context, subjectID *uuid.UUID, activeOnly bool) ([]models.Book, error) {
	q := r.db.WithContext(ctx).Scopes(activeScope(activeOnly))
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	var rows []models.Book
	err := q.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateBook(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{}).Error
}

// BookLineage is a book joined with its subject and year, used for cart
// snapshots and customer visibility checks.
type BookLineage struct {
	Book    models.Book
	Subject models.Subject
	Year    models.AcademicYear
}

// FindBookLineage loads a book together with its parent subject and year.
func (r *Repository) FindBookLineage(ctx context.Context, bookID uuid.UUID) (*BookLineage, error) {
	var lineage BookLineage
	if err := r.db.WithContext(ctx).First(&lineage.Book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&lineage.Subject, "id = ?", lineage.Book.SubjectID).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(&lineage.Year, "id = ?", lineage.Subject.YearID).Error; err != nil {
		return nil, err
	}
	return &lineage, nil
}

// --- print tiers ---

func (r *Repository) CreatePrintTier(ctx context.Context, tier *models.PrintTier) (*models.PrintTier, error) {
	if err := r.db.WithContext(ctx).Create(tier).Error; err != nil {
		return nil, err
	}
	return tier, nil
}

func (r *Repository) FindPrintTier(ctx context.Context, id uuid.UUID) (*models.PrintTier, error) {
	var tier models.PrintTier
	if err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *Repository) ListPrintTiers(ctx context.Context, activeOnly bool) ([]models.PrintTier, error) {
	var rows []models.PrintTier
	err := r.db.WithContext(ctx).
		Scopes(activeScope(activeOnly)).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdatePrintTier(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PrintTier{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) DeletePrintTier(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PrintTier{}).Error
}

// --- add-ons ---

func (r *Repository) CreateAddOn(ctx context.Context, addon *models.AddOn) (*models.AddOn, error) {
	if err := r.db.WithContext(ctx).Create(addon).Error; err != nil {
		return nil, err
	}
	return addon, nil
}

func (r *Repository) FindAddOn(ctx context.Context, id uuid.UUID) (*models.AddOn, error) {
	var addon models.AddOn
	if err := r.db.WithContext(ctx).First(&addon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addon, nil
}

func (r *Repository) ListAddOns(ctx context.Context, activeOnly bool) ([]models.AddOn, error) {
	var rows []models.AddOn
	err := r.db.WithContext(ctx).
		Scopes(activeScope(activeOnly)).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindAddOnsByIDs returns the add-ons that exist among the requested ids.
// Missing ids are simply absent from the result.
func (r *Repository) FindAddOnsByIDs(ctx context.Context, ids []uuid.UUID, activeOnly bool) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.AddOn
	err := r.db.WithContext(ctx).
		Scopes(activeScope(activeOnly)).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) UpdateAddOn(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.AddOn{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) DeleteAddOn(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AddOn{}).Error
}

// --- dashboard ---

// Counts aggregates row counts per entity for the admin dashboard.
type Counts struct {
	Years      int64
	Subjects   int64
	Books      int64
	PrintTiers int64
	AddOns     int64
	Invoices   int64
}

func (r *Repository) CountAll(ctx context.Context) (*Counts, error) {
	var counts Counts
	tallies := []struct {
		model any
		dest  *int64
	}{
		{&models.AcademicYear{}, &counts.Years},
		{&models.Subject{}, &counts.Subjects},
		{&models.Book{}, &counts.Books},
		{&models.PrintTier{}, &counts.PrintTiers},
		{&models.AddOn{}, &counts.AddOns},
		{&models.Invoice{}, &counts.Invoices},
	}
	for _, tally := range tallies {
		if err := r.db.WithContext(ctx).Model(tally.model).Count(tally.dest).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}
