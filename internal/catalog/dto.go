package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareemadel/printshop-backend/pkg/db/models"
)

// YearDTO is the academic year payload returned to clients.
type YearDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubjectDTO is the subject payload returned to clients.
type SubjectDTO struct {
	ID          uuid.UUID `json:"id"`
	YearID      uuid.UUID `json:"year_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookDTO is the book payload returned to clients.
type BookDTO struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   uuid.UUID `json:"subject_id"`
	Name        string    `json:"name"`
	PageCount   int       `json:"page_count"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PrintTierDTO is the print tier payload returned to clients.
type PrintTierDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	PagesPerUnit int             `json:"pages_per_unit"`
	Description  *string         `json:"description,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AddOnDTO is the add-on payload returned to clients.
type AddOnDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SubjectGroupDTO nests a subject's visible books under it.
type SubjectGroupDTO struct {
	Subject SubjectDTO `json:"subject"`
	Books   []BookDTO  `json:"books"`
}

// YearGroupDTO nests a year's visible subjects and books under it.
type YearGroupDTO struct {
	Year     YearDTO           `json:"year"`
	Subjects []SubjectGroupDTO `json:"subjects"`
}

// OptionsDTO bundles the active checkout choices.
type OptionsDTO struct {
	PrintTiers []PrintTierDTO `json:"print_tiers"`
	AddOns     []AddOnDTO     `json:"addons"`
}

// DashboardDTO aggregates entity counts for the admin landing view.
type DashboardDTO struct {
	Years      int64 `json:"years"`
	Subjects   int64 `json:"subjects"`
	Books      int64 `json:"books"`
	PrintTiers int64 `json:"print_tiers"`
	AddOns     int64 `json:"addons"`
	Invoices   int64 `json:"invoices"`
}

func NewYearDTO(year *models.AcademicYear) *YearDTO {
	return &YearDTO{
		ID:          year.ID,
		Name:        year.Name,
		Description: year.Description,
		IsActive:    year.IsActive,
		CreatedAt:   year.CreatedAt,
		UpdatedAt:   year.UpdatedAt,
	}
}

func NewSubjectDTO(subject *models.Subject) *SubjectDTO {
	return &SubjectDTO{
		ID:          subject.ID,
		YearID:      subject.YearID,
		Name:        subject.Name,
		Description: subject.Description,
		IsActive:    subject.IsActive,
		CreatedAt:   subject.CreatedAt,
		UpdatedAt:   subject.UpdatedAt,
	}
}

func NewBookDTO(book *models.Book) *BookDTO {
	return &BookDTO{
		ID:          book.ID,
		SubjectID:   book.SubjectID,
		Name:        book.Name,
		PageCount:   book.PageCount,
		Description: book.Description,
		IsActive:    book.IsActive,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

func NewPrintTierDTO(tier *models.PrintTier) *PrintTierDTO {
	return &PrintTierDTO{
		ID:           tier.ID,
		Name:         tier.Name,
		PricePerUnit: tier.PricePerUnit,
		PagesPerUnit: tier.PagesPerUnit,
		Description:  tier.Description,
		IsActive:     tier.IsActive,
		CreatedAt:    tier.CreatedAt,
		UpdatedAt:    tier.UpdatedAt,
	}
}

func NewAddOnDTO(addon *models.AddOn) *AddOnDTO {
	return &AddOnDTO{
		ID:          addon.ID,
		Name:        addon.Name,
		Price:       addon.Price,
		Description: addon.Description,
		IsActive:    addon.IsActive,
		CreatedAt:   addon.CreatedAt,
		UpdatedAt:   addon.UpdatedAt,
	}
}

func newYearDTOs(rows []models.AcademicYear) []YearDTO {
	out := make([]YearDTO, len(rows))
	for i := range rows {
		out[i] = *NewYearDTO(&rows[i])
	}
	return out
}

func newSubjectDTOs(rows []models.Subject) []SubjectDTO {
	out := make([]SubjectDTO, len(rows))
	for i := range rows {
		out[i] = *NewSubjectDTO(&rows[i])
	}
	return out
}

func newBookDTOs(rows []models.Book) []BookDTO {
	out := make([]BookDTO, len(rows))
	for i := range rows {
		out[i] = *NewBookDTO(&rows[i])
	}
	return out
}

func newPrintTierDTOs(rows []models.PrintTier) []PrintTierDTO {
	out := make([]PrintTierDTO, len(rows))
	for i := range rows {
		out[i] = *NewPrintTierDTO(&rows[i])
	}
	return out
}

func newAddOnDTOs(rows []models.AddOn) []AddOnDTO {
	out := make([]AddOnDTO, len(rows))
	for i := range rows {
		out[i] = *NewAddOnDTO(&rows[i])
	}
	return out
}
