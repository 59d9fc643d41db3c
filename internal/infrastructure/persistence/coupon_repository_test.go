package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/clinic/backend/internal/domain/coupon"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCouponTestDB creates an in-memory SQLite database for testing
func setupCouponTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE coupons (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			code TEXT NOT NULL UNIQUE,
			description TEXT,
			kind TEXT NOT NULL,
			value TEXT NOT NULL,
			valid_from DATETIME NOT NULL,
			valid_until DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			max_redemptions INTEGER NOT NULL DEFAULT 0,
			redemption_count INTEGER NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err)

	return db
}

func couponWindow() (time.Time, time.Time) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func TestGormCouponRepository_SaveAndFindByID(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	c, err := coupon.NewCoupon("WELCOME10", coupon.KindPercentOff, decimal.NewFromInt(10), from, until)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", found.Code)
	assert.Equal(t, coupon.KindPercentOff, found.Kind)
	assert.True(t, found.Value.Equal(decimal.NewFromInt(10)))
	assert.True(t, found.IsValidAt(from.AddDate(0, 6, 0)))
}

func TestGormCouponRepository_FindByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	c, err := coupon.NewCoupon("SPRING25", coupon.KindAmountOff, decimal.NewFromInt(25000), from, until)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByCode(ctx, "spring25")
	require.NoError(t, err)
	assert.Equal(t, "SPRING25", found.Code)

	_, err = repo.FindByCode(ctx, "MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCouponRepository_RedemptionCountPersists(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	c, err := coupon.NewCoupon("LIMITED5", coupon.KindAmountOff, decimal.NewFromInt(5000), from, until)
	require.NoError(t, err)
	require.NoError(t, c.SetMaxRedemptions(5))
	require.NoError(t, c.Redeem(from.AddDate(0, 1, 0)))
	require.NoError(t, c.Redeem(from.AddDate(0, 2, 0)))

	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.MaxRedemptions)
	assert.Equal(t, 2, found.RedemptionCount)
}

func TestGormCouponRepository_FilterByKindAndStatus(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	percent, err := coupon.NewCoupon("PCT15", coupon.KindPercentOff, decimal.NewFromInt(15), from, until)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, percent))

	amount, err := coupon.NewCoupon("AMT10K", coupon.KindAmountOff, decimal.NewFromInt(10000), from, until)
	require.NoError(t, err)
	require.NoError(t, amount.Deactivate())
	require.NoError(t, repo.Save(ctx, amount))

	found, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"kind": coupon.KindPercentOff}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PCT15", found[0].Code)

	found, err = repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"status": coupon.CouponStatusInactive}})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "AMT10K", found[0].Code)
}

func TestGormCouponRepository_Delete(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	c, err := coupon.NewCoupon("GONE", coupon.KindAmountOff, decimal.NewFromInt(1000), from, until)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCouponRepository_ExistsByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewGormCouponRepository(db)
	ctx := context.Background()

	from, until := couponWindow()
	c, err := coupon.NewCoupon("EXISTS", coupon.KindPercentOff, decimal.NewFromInt(20), from, until)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	exists, err := repo.ExistsByCode(ctx, "exists")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, exists)
}
