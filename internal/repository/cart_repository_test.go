package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	// Local overrides (e.g. DOCKER_HOST) live in .env.test when present.
	_ = godotenv.Load("../../.env.test")

	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS cart_items (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			product_id UUID NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, product_id)
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255),
			customer_phone VARCHAR(50) NOT NULL DEFAULT '',
			customer_address TEXT NOT NULL DEFAULT '',
			notes TEXT,
			total_amount DECIMAL(10, 2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			whatsapp_sent_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			product_id UUID NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			product_price DECIMAL(10, 2) NOT NULL,
			quantity INTEGER NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func insertTestProduct(t *testing.T, price decimal.Decimal) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      "Produto " + uuid.New().String()[:8],
		Price:     price,
		Category:  "test",
		CreatedAt: time.Now(),
	}

	_, err := testDB.Exec(`
		INSERT INTO products (id, name, description, price, image_url, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, product.ID, product.Name, product.Description, product.Price, product.ImageURL, product.Category, product.CreatedAt)
	if err != nil {
		t.Fatalf("failed to insert test product: %v", err)
	}

	return product
}

func TestCartLinesAreScopedToUser(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()
	product := insertTestProduct(t, decimal.NewFromFloat(12.50))

	now := time.Now()
	for _, userID := range []uuid.UUID{userA, userB} {
		err := repo.Insert(ctx, &domain.CartItem{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  1,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("failed to insert cart item: %v", err)
		}
	}

	if err := repo.DeleteByUser(ctx, userA); err != nil {
		t.Fatalf("failed to clear cart: %v", err)
	}

	itemsA, err := repo.ListByUser(ctx, userA)
	if err != nil {
		t.Fatalf("failed to list cart: %v", err)
	}
	if len(itemsA) != 0 {
		t.Errorf("expected empty cart for user A, got %d lines", len(itemsA))
	}

	itemsB, err := repo.ListByUser(ctx, userB)
	if err != nil {
		t.Fatalf("failed to list cart: %v", err)
	}
	if len(itemsB) != 1 {
		t.Errorf("expected one line for user B, got %d", len(itemsB))
	}
}

func TestListByUserJoinsProductSnapshot(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	userID := uuid.New()
	product := insertTestProduct(t, decimal.NewFromFloat(99.90))

	now := time.Now()
	err := repo.Insert(ctx, &domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  3,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("failed to insert cart item: %v", err)
	}

	items, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("failed to list cart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}

	item := items[0]
	if item.Product == nil {
		t.Fatal("product snapshot not joined")
	}
	if item.Product.Name != product.Name {
		t.Errorf("joined product name %q, expected %q", item.Product.Name, product.Name)
	}
	if !item.Product.Price.Equal(product.Price) {
		t.Errorf("joined product price %s, expected %s", item.Product.Price, product.Price)
	}
	if !item.Subtotal().Equal(product.Price.Mul(decimal.NewFromInt(3))) {
		t.Errorf("subtotal %s, expected price x 3", item.Subtotal())
	}
}

func TestProperty_UpdateQuantityRoundTrips(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("stored quantity always matches the last update", prop.ForAll(
		func(quantity int) bool {
			userID := uuid.New()
			product := insertTestProduct(t, decimal.NewFromFloat(10.00))

			now := time.Now()
			item := &domain.CartItem{
				ID:        uuid.New(),
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  1,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repo.Insert(ctx, item); err != nil {
				t.Logf("FAIL: insert: %v", err)
				return false
			}

			if err := repo.UpdateQuantity(ctx, userID, item.ID, quantity); err != nil {
				t.Logf("FAIL: update: %v", err)
				return false
			}

			stored, err := repo.FindByUserAndProduct(ctx, userID, product.ID)
			if err != nil {
				t.Logf("FAIL: find: %v", err)
				return false
			}

			return stored.Quantity == quantity
		},
		gen.IntRange(1, 999),
	))

	properties.TestingRun(t)
}

func TestUpdateQuantityUnknownLineReturnsNotFound(t *testing.T) {
	repo := NewCartRepository(testDB)

	err := repo.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 2)
	if err != ErrCartItemNotFound {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}
