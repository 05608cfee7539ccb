package kvrepo_test

import (
	"context"
	"testing"
	"time"

	"steakz/internal/adapters/out/postgres/kvrepo"
	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type KeyValueRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *kvrepo.GormKeyValueRepository
}

func (suite *KeyValueRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(kvrepo.NewGormKeyValueRepository(db).Migrate(ctx))
}

func (suite *KeyValueRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE local_storage").Error)
	suite.repository = kvrepo.NewGormKeyValueRepository(suite.db)
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TestLoad_MissingKey_NotFound() {
	data, found, err := suite.repository.Load(suite.T().Context(), "cart_items")

	suite.Require().NoError(err)
	suite.False(found)
	suite.Nil(data)
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TestSave_ThenLoad_ReturnsValue() {
	ctx := suite.T().Context()

	suite.Require().NoError(suite.repository.Save(ctx, "cart_items", []byte(`[]`)))

	data, found, err := suite.repository.Load(ctx, "cart_items")
	suite.Require().NoError(err)
	suite.True(found)
	suite.JSONEq(`[]`, string(data))
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TestSave_ExistingKey_Overwrites() {
	ctx := suite.T().Context()

	suite.Require().NoError(suite.repository.Save(ctx, "cart_items", []byte(`["first"]`)))
	suite.Require().NoError(suite.repository.Save(ctx, "cart_items", []byte(`["second"]`)))

	data, found, err := suite.repository.Load(ctx, "cart_items")
	suite.Require().NoError(err)
	suite.True(found)
	suite.JSONEq(`["second"]`, string(data))

	var count int64
	suite.Require().NoError(suite.db.Model(&kvrepo.EntryDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TestBlankKey_Rejected() {
	ctx := suite.T().Context()

	err := suite.repository.Save(ctx, "  ", []byte(`[]`))
	suite.ErrorIs(err, errs.ErrValueIsRequired)

	_, _, err = suite.repository.Load(ctx, "")
	suite.ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *KeyValueRepositoryIntegrationTestSuite) TestCartStore_SurvivesRestart() {
	ctx := suite.T().Context()

	item, err := cart.NewMenuItem(4, "Ribeye", kernel.MustMoney("32.50"), "")
	suite.Require().NoError(err)

	store := cartstore.New(ctx, suite.repository, nil)
	suite.Require().NoError(store.AddToCart(ctx, item, 2))

	restored := cartstore.New(ctx, kvrepo.NewGormKeyValueRepository(suite.db), nil)
	suite.Equal(2, restored.TotalItems())
	suite.True(restored.TotalPrice().Equal(kernel.MustMoney("65.00")))
}

func TestKeyValueRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(KeyValueRepositoryIntegrationTestSuite))
}
