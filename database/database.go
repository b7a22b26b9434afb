package database

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

// Store is the persistence surface the services depend on. Reads outside a
// unit of work go through the accessors; every mutation runs inside Begin.
type Store interface {
	ProjectRepo() ProjectRepository
	SkillRepo() SkillRepository
	ExperienceRepo() ExperienceRepository
	ProfileRepo() ProfileRepository
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork groups mutations into one transaction. Repositories obtained from
// it share the transaction; Commit reports the rows they affected.
type UnitOfWork interface {
	ProjectRepo() ProjectRepository
	SkillRepo() SkillRepository
	ExperienceRepo() ExperienceRepository
	ProfileRepo() ProfileRepository
	Commit() (int64, error)
	// Rollback is a no-op after Commit, so it can always be deferred.
	Rollback() error
}

type Database struct {
	db             *gorm.DB
	projectRepo    *ProjectRepo
	skillRepo      *SkillRepo
	experienceRepo *ExperienceRepo
	profileRepo    *ProfileRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		projectRepo:    NewProjectRepo(db),
		skillRepo:      NewSkillRepo(db),
		experienceRepo: NewExperienceRepo(db),
		profileRepo:    NewProfileRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() ProjectRepository {
	return d.projectRepo
}

func (d Database) SkillRepo() SkillRepository {
	return d.skillRepo
}

func (d Database) ExperienceRepo() ExperienceRepository {
	return d.experienceRepo
}

func (d Database) ProfileRepo() ProfileRepository {
	return d.profileRepo
}

// GetDB returns the underlying connection.
func (d Database) GetDB() *gorm.DB {
	return d.db
}

func (d Database) Begin(ctx context.Context) (UnitOfWork, error) {
	tx := d.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	u := &unitOfWork{tx: tx}
	u.projectRepo = newProjectRepo(tx, &u.rows)
	u.skillRepo = newSkillRepo(tx, &u.rows)
	u.experienceRepo = newExperienceRepo(tx, &u.rows)
	u.profileRepo = newProfileRepo(tx, &u.rows)
	return u, nil
}

// Ping checks that the store is reachable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type unitOfWork struct {
	tx   *gorm.DB
	rows int64
	done bool

	projectRepo    *ProjectRepo
	skillRepo      *SkillRepo
	experienceRepo *ExperienceRepo
	profileRepo    *ProfileRepo
}

func (u *unitOfWork) ProjectRepo() ProjectRepository       { return u.projectRepo }
func (u *unitOfWork) SkillRepo() SkillRepository           { return u.skillRepo }
func (u *unitOfWork) ExperienceRepo() ExperienceRepository { return u.experienceRepo }
func (u *unitOfWork) ProfileRepo() ProfileRepository       { return u.profileRepo }

func (u *unitOfWork) Commit() (int64, error) {
	if u.done {
		return 0, fmt.Errorf("unit of work already finished")
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return 0, err
	}
	return u.rows, nil
}

func (u *unitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}

// Migrate creates or alters the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// At most one live profile. Postgres only; sqlite serializes writers on one connection.
	if db.Dialector.Name() == DriverPostgres {
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_profiles_single_live ON profiles ((true)) WHERE is_deleted = false`).Error; err != nil {
			return fmt.Errorf("create profile singleton index: %w", err)
		}
	}
	return nil
}
