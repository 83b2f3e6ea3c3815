package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kareemadel/printshop-backend/pkg/errors"
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, code, appErr.Code())
}

func TestYearCRUD(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateYear(ctx, CreateYearInput{Name: "First Year", Description: strPtr("freshmen")})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := svc.UpdateYear(ctx, created.ID, UpdateYearInput{Name: strPtr("First Year (rev)")})
	require.NoError(t, err)
	assert.Equal(t, "First Year (rev)", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "freshmen", *updated.Description)

	_, err = svc.UpdateYear(ctx, created.ID, UpdateYearInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	all, err := svc.ListYears(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	active, err := svc.ListYears(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCreateYearValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateYear(context.Background(), CreateYearInput{})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestDuplicateYearNameConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateYear(ctx, CreateYearInput{Name: "Second Year"})
	require.NoError(t, err)

	_, err = svc.CreateYear(ctx, CreateYearInput{Name: "Second Year"})
	requireCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateSubjectRequiresYear(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateSubject(context.Background(), CreateSubjectInput{
		YearID: uuid.New(),
		Name:   "Maths",
	})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateBookValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, err := svc.CreateYear(ctx, CreateYearInput{Name: "Third Year"})
	require.NoError(t, err)
	subject, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Physics"})
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Mechanics", PageCount: 0})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: uuid.New(), Name: "Mechanics", PageCount: 130})
	requireCode(t, err, pkgerrors.CodeNotFound)

	book, err := svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Mechanics", PageCount: 130})
	require.NoError(t, err)
	assert.Equal(t, 130, book.PageCount)
}

func TestDeleteYearCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, err := svc.CreateYear(ctx, CreateYearInput{Name: "Cascade Year"})
	require.NoError(t, err)

	maths, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Maths"})
	require.NoError(t, err)
	physics, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Physics"})
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: maths.ID, Name: "Algebra", PageCount: 120})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: physics.ID, Name: "Optics", PageCount: 90})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteYear(ctx, year.ID))

	subjects, err := svc.ListSubjects(ctx, nil, false)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	books, err := svc.ListBooks(ctx, nil, false)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestPrintTierValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "single-sided",
		PricePerUnit: decimal.RequireFromString("-0.5"),
		PagesPerUnit: 2,
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "single-sided",
		PricePerUnit: decimal.RequireFromString("0.5"),
		PagesPerUnit: 0,
	})
	requireCode(t, err, pkgerrors.CodeValidation)

	tier, err := svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "single-sided",
		PricePerUnit: decimal.RequireFromString("0.5"),
		PagesPerUnit: 2,
	})
	require.NoError(t, err)
	assert.True(t, tier.PricePerUnit.Equal(decimal.RequireFromString("0.5")))
}

func TestPrintTierAcceptsZeroPrice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// price_per_unit is non-negative: a free tier is valid.
	tier, err := svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "free promo",
		PricePerUnit: decimal.Zero,
		PagesPerUnit: 2,
	})
	require.NoError(t, err)
	assert.True(t, tier.PricePerUnit.IsZero())

	zero := decimal.Zero
	updated, err := svc.UpdatePrintTier(ctx, tier.ID, UpdatePrintTierInput{PricePerUnit: &zero})
	require.NoError(t, err)
	assert.True(t, updated.PricePerUnit.IsZero())

	negative := decimal.RequireFromString("-1")
	_, err = svc.UpdatePrintTier(ctx, tier.ID, UpdatePrintTierInput{PricePerUnit: &negative})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCustomerVisibilityIsTransitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, err := svc.CreateYear(ctx, CreateYearInput{Name: "Visible Year"})
	require.NoError(t, err)
	subject, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Chemistry"})
	require.NoError(t, err)
	book, err := svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Organic", PageCount: 200})
	require.NoError(t, err)

	lineage, err := svc.VisibleBookLineage(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Visible Year", lineage.Year.Name)
	assert.Equal(t, "Chemistry", lineage.Subject.Name)

	// Deactivating the subject hides its active book from customers.
	_, err = svc.UpdateSubject(ctx, subject.ID, UpdateSubjectInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.CustomerBooks(ctx, subject.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.VisibleBookLineage(ctx, book.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.UpdateSubject(ctx, subject.ID, UpdateSubjectInput{IsActive: boolPtr(true)})
	require.NoError(t, err)
	_, err = svc.UpdateYear(ctx, year.ID, UpdateYearInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = svc.CustomerSubjects(ctx, year.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.VisibleBookLineage(ctx, book.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestDashboardCounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, err := svc.CreateYear(ctx, CreateYearInput{Name: "Count Year"})
	require.NoError(t, err)
	subject, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "History"})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Ancient Egypt", PageCount: 310})
	require.NoError(t, err)
	_, err = svc.CreateAddOn(ctx, CreateAddOnInput{Name: "Cover", Price: decimal.RequireFromString("7.0")})
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.Years)
	assert.Equal(t, int64(1), dashboard.Subjects)
	assert.Equal(t, int64(1), dashboard.Books)
	assert.Equal(t, int64(1), dashboard.AddOns)
	assert.Equal(t, int64(0), dashboard.PrintTiers)
	assert.Equal(t, int64(0), dashboard.Invoices)
}

func TestCustomerBookTreeGroupsVisibleBooks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, err := svc.CreateYear(ctx, CreateYearInput{Name: "Tree Year"})
	require.NoError(t, err)
	hiddenYear, err := svc.CreateYear(ctx, CreateYearInput{Name: "Hidden Tree Year", IsActive: boolPtr(false)})
	require.NoError(t, err)
	subject, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Maths"})
	require.NoError(t, err)
	emptySubject, err := svc.CreateSubject(ctx, CreateSubjectInput{YearID: year.ID, Name: "Art"})
	require.NoError(t, err)
	_, err = svc.CreateSubject(ctx, CreateSubjectInput{YearID: hiddenYear.ID, Name: "Ghost"})
	require.NoError(t, err)
	book, err := svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Algebra", PageCount: 130})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, CreateBookInput{SubjectID: subject.ID, Name: "Draft", PageCount: 80, IsActive: boolPtr(false)})
	require.NoError(t, err)

	tree, err := svc.CustomerBookTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, year.ID, tree[0].Year.ID)
	require.Len(t, tree[0].Subjects, 2)

	var mathsBooks []BookDTO
	for _, group := range tree[0].Subjects {
		if group.Subject.ID == subject.ID {
			mathsBooks = group.Books
		}
		if group.Subject.ID == emptySubject.ID {
			assert.Empty(t, group.Books)
		}
	}
	require.Len(t, mathsBooks, 1)
	assert.Equal(t, book.ID, mathsBooks[0].ID)
}

func TestCustomerOptionsListsOnlyActive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tier, err := svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "Single-sided black",
		PricePerUnit: decimal.RequireFromString("0.5"),
		PagesPerUnit: 2,
	})
	require.NoError(t, err)
	_, err = svc.CreatePrintTier(ctx, CreatePrintTierInput{
		Name:         "Retired tier",
		PricePerUnit: decimal.RequireFromString("1.0"),
		PagesPerUnit: 1,
		IsActive:     boolPtr(false),
	})
	require.NoError(t, err)
	addon, err := svc.CreateAddOn(ctx, CreateAddOnInput{Name: "Binding", Price: decimal.RequireFromString("5.0")})
	require.NoError(t, err)

	options, err := svc.CustomerOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options.PrintTiers, 1)
	assert.Equal(t, tier.ID, options.PrintTiers[0].ID)
	require.Len(t, options.AddOns, 1)
	assert.Equal(t, addon.ID, options.AddOns[0].ID)
}
