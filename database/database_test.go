package database

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) Database {
	t.Helper()

	db, err := Open(context.Background(), Options{
		Driver:   DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	database := New(db)
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})
	return database
}

func inTx(t *testing.T, d Database, fn func(u UnitOfWork) error) {
	t.Helper()
	u, err := d.Begin(context.Background())
	require.NoError(t, err)
	defer u.Rollback()
	require.NoError(t, fn(u))
	_, err = u.Commit()
	require.NoError(t, err)
}

func newProject(title string, order int, active bool) *models.Project {
	return &models.Project{Title: title, Category: "Backend", Description: "d", Tags: "go,sql", DisplayOrder: order, IsActive: active}
}

func TestProjectRepo_InsertAndGet(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	p := newProject("Portfolio API", 1, true)
	inTx(t, d, func(u UnitOfWork) error { return u.ProjectRepo().Insert(ctx, p) })

	require.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.Nil(t, p.UpdatedAt)

	got, err := d.ProjectRepo().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio API", got.Title)
	assert.True(t, got.IsActive)

	_, err = d.ProjectRepo().GetByID(ctx, p.ID+100)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProjectRepo_SoftDeleteHidesRow(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	p := newProject("Doomed", 0, true)
	inTx(t, d, func(u UnitOfWork) error { return u.ProjectRepo().Insert(ctx, p) })

	u, err := d.Begin(ctx)
	require.NoError(t, err)
	ok, err := u.ProjectRepo().SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	rows, err := u.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = d.ProjectRepo().GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	active, err := d.ProjectRepo().ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := d.ProjectRepo().ListAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, all)

	withDeleted, err := d.ProjectRepo().ListAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, withDeleted, 1)
	assert.True(t, withDeleted[0].IsDeleted)
	assert.NotNil(t, withDeleted[0].UpdatedAt)

	// second delete finds nothing live
	u, err = d.Begin(ctx)
	require.NoError(t, err)
	defer u.Rollback()
	ok, err = u.ProjectRepo().SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectRepo_Ordering(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	inTx(t, d, func(u UnitOfWork) error {
		for _, p := range []*models.Project{
			newProject("Third", 3, true),
			newProject("Hidden", 0, false),
			newProject("First", 1, true),
			newProject("Second", 2, true),
		} {
			if err := u.ProjectRepo().Insert(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})

	active, err := d.ProjectRepo().ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second", "Third"}, projectTitles(active))

	all, err := d.ProjectRepo().ListAll(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hidden", "First", "Second", "Third"}, projectTitles(all))
}

func projectTitles(ps []*models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestProjectRepo_UpdateStampsUpdatedAt(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	p := newProject("Before", 0, true)
	inTx(t, d, func(u UnitOfWork) error { return u.ProjectRepo().Insert(ctx, p) })
	createdAt := p.CreatedAt

	inTx(t, d, func(u UnitOfWork) error {
		got, err := u.ProjectRepo().GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		got.Title = "After"
		return u.ProjectRepo().Update(ctx, got)
	})

	got, err := d.ProjectRepo().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	require.NotNil(t, got.UpdatedAt)
	assert.WithinDuration(t, createdAt, got.CreatedAt, time.Second)
}

func TestSkillRepo_Listings(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	skills := []*models.Skill{
		{Name: "Kafka", Category: models.SkillCategoryIntegrationAndInfrastructure, Proficiency: 70, DisplayOrder: 1, IsActive: true},
		{Name: "SAP", Category: models.SkillCategoryERPEcosystem, Proficiency: 80, DisplayOrder: 2, IsActive: true},
		{Name: "Oracle EBS", Category: models.SkillCategoryERPEcosystem, Proficiency: 60, DisplayOrder: 1, IsActive: true},
		{Name: "Go", Category: models.SkillCategoryBackendSystems, Proficiency: 90, DisplayOrder: 5, IsActive: true},
		{Name: "Dynamics", Category: models.SkillCategoryERPEcosystem, Proficiency: 40, DisplayOrder: 0, IsActive: false},
	}
	inTx(t, d, func(u UnitOfWork) error {
		for _, s := range skills {
			if err := u.SkillRepo().Insert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})

	active, err := d.SkillRepo().ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Oracle EBS", "SAP", "Kafka"}, skillNames(active))

	erp, err := d.SkillRepo().ListByCategory(ctx, models.SkillCategoryERPEcosystem)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oracle EBS", "SAP"}, skillNames(erp))

	all, err := d.SkillRepo().ListAll(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Dynamics", "Oracle EBS", "SAP", "Kafka"}, skillNames(all))
}

func skillNames(ss []*models.Skill) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}

func TestExperienceRepo_CurrentAndOrdering(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	day := func(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }
	end := day(2021, time.December)
	exps := []*models.Experience{
		{Title: "Old", StartDate: day(2018, time.January), EndDate: &end, IsActive: true},
		{Title: "Now", StartDate: day(2022, time.March), IsCurrent: true, IsActive: true},
		{Title: "Side", StartDate: day(2022, time.March), DisplayOrder: 1, IsActive: true},
		{Title: "Stale current", StartDate: day(2020, time.May), IsCurrent: true, IsActive: false},
	}
	inTx(t, d, func(u UnitOfWork) error {
		for _, e := range exps {
			if err := u.ExperienceRepo().Insert(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})

	cur, err := d.ExperienceRepo().GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Now", cur.Title)

	active, err := d.ExperienceRepo().ListActive(ctx)
	require.NoError(t, err)
	titles := make([]string, len(active))
	for i, e := range active {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{"Now", "Side", "Old"}, titles)

	all, err := d.ExperienceRepo().ListAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Stale current", all[2].Title)
}

func TestExperienceRepo_NoCurrent(t *testing.T) {
	d := testDB(t)

	_, err := d.ExperienceRepo().GetCurrent(context.Background())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProfileRepo_Get(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	_, err := d.ProfileRepo().Get(ctx)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	p := &models.Profile{Name: "Rafael", Role: "Backend Engineer"}
	inTx(t, d, func(u UnitOfWork) error { return u.ProfileRepo().Insert(ctx, p) })

	got, err := d.ProfileRepo().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Backend Engineer", got.Role)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	u, err := d.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, u.ProjectRepo().Insert(ctx, newProject("Ghost", 0, true)))
	require.NoError(t, u.Rollback())
	require.NoError(t, u.Rollback())

	all, err := d.ProjectRepo().ListAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = u.Commit()
	assert.Error(t, err)
}

func TestUnitOfWork_CommitCountsRows(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	u, err := d.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, u.ProjectRepo().Insert(ctx, newProject("One", 0, true)))
	require.NoError(t, u.SkillRepo().Insert(ctx, &models.Skill{Name: "Go", Category: models.SkillCategoryBackendSystems, IsActive: true}))
	rows, err := u.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.NoError(t, u.Rollback())
}

func TestColumnMismatchReport(t *testing.T) {
	d := testDB(t)
	db := d.GetDB()

	require.NoError(t, db.Exec(`ALTER TABLE projects ADD COLUMN legacy_slug TEXT`).Error)

	reports, err := ColumnMismatchReport(db)
	require.NoError(t, err)
	require.Len(t, reports, len(models.All()))

	var buf bytes.Buffer
	total := WriteColumnMismatchReport(&buf, reports)
	assert.Equal(t, 1, total)
	assert.Contains(t, buf.String(), "legacy_slug")
	assert.Contains(t, buf.String(), "Total mismatched columns across all tables: 1")
}

func TestPing(t *testing.T) {
	d := testDB(t)
	assert.NoError(t, d.Ping(context.Background()))
}
