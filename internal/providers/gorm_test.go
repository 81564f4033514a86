package providers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/healthtrack-backend/internal/data/db"
	"github.com/yungbote/healthtrack-backend/internal/domain"
	"github.com/yungbote/healthtrack-backend/internal/platform/logger"
	"github.com/yungbote/healthtrack-backend/internal/platform/pointers"
)

func sqliteDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seededDirectory(tb testing.TB, gdb *gorm.DB) *GormDirectory {
	tb.Helper()
	seed, err := SeedProviders()
	if err != nil {
		tb.Fatalf("SeedProviders: %v", err)
	}
	dir := NewGormDirectory(gdb, logger.NewNop())
	if err := dir.Seed(context.Background(), seed); err != nil {
		tb.Fatalf("Seed: %v", err)
	}
	return dir
}

func exerciseDirectory(t *testing.T, dir *GormDirectory) {
	t.Helper()
	ctx := context.Background()

	got, err := dir.LookupBySpecialization(ctx, "dermatologist")
	if err != nil {
		t.Fatalf("LookupBySpecialization: %v", err)
	}
	if len(got) != 1 || got[0].ID != "DOC002" {
		t.Fatalf("lookup=%+v", got)
	}
	if len(got[0].ConditionsTreated) != 5 {
		t.Fatalf("conditions_treated round trip: %v", got[0].ConditionsTreated)
	}

	found, total, err := dir.Search(ctx, domain.ProviderFilter{Specialization: "logist", MinRating: pointers.Float64(4.5)})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Cardiologist 4.5, Neurologist 4.6, Gynecologist 4.9
	if total != 3 || len(found) != 3 || found[0].ID != "DOC001" {
		t.Fatalf("search total=%d found=%+v", total, found)
	}

	rec, err := Recommend(ctx, dir, "Migraine", "")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(rec.Providers) != 1 || rec.Providers[0].ID != "DOC005" {
		t.Fatalf("recommend=%+v", rec)
	}
}

func TestGormDirectorySQLite(t *testing.T) {
	gdb := sqliteDB(t)
	dir := seededDirectory(t, gdb)
	exerciseDirectory(t, dir)

	// Re-seeding updates in place.
	if err := dir.Seed(context.Background(), []domain.Provider{{ID: "DOC002", Name: "Dr. Saima Ahmed", Specialization: "Dermatologist", Rating: 5}}); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var count int64
	if err := gdb.Model(&domain.Provider{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 8 {
		t.Fatalf("expected 8 rows after upsert, got %d", count)
	}
	got, _ := dir.LookupBySpecialization(context.Background(), "Dermatologist")
	if len(got) != 1 || got[0].Rating != 5 {
		t.Fatalf("upsert did not update: %+v", got)
	}
}

func TestGormDirectoryPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run directory integration tests")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	tx := gdb.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() { _ = tx.Rollback().Error })

	exerciseDirectory(t, seededDirectory(t, tx))
}
