package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/domain"
	"github.com/renanmachad/test-backend-thera-consulting/internal/domains/orders/ports"
	"github.com/renanmachad/test-backend-thera-consulting/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and line items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID        string            `gorm:"primaryKey;column:id;type:uuid"`
	Status    string            `gorm:"column:status;type:varchar(32);index"`
	Items     []orderItemRecord `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time         `gorm:"column:created_at;index"`
	UpdatedAt time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps one line item. The price column is the immutable
// purchase-time snapshot; no foreign key to products is enforced so catalog
// deletions leave historical orders intact.
type orderItemRecord struct {
	ID              string          `gorm:"primaryKey;column:id;type:uuid"`
	OrderID         string          `gorm:"column:order_id;type:uuid;index"`
	ProductID       string          `gorm:"column:product_id;type:uuid;index"`
	Quantity        int             `gorm:"column:quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"column:price_at_purchase;type:numeric(12,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Create persists the order and all line items in one transaction.
func (r *Repository) Create(ctx context.Context, status domain.Status, lineItems []domain.LineItem) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := orderRecord{ID: uuid.NewString(), Status: string(status)}
	for _, item := range lineItems {
		record.Items = append(record.Items, orderItemRecord{
			ID:              uuid.NewString(),
			OrderID:         record.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its line items.
func (r *Repository) GetByID(ctx context.Context, id string) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns all orders with line items, most recently created first.
func (r *Repository) List(ctx context.Context) ([]*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*ports.OrderProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// UpdateStatus persists a plain status write.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*ports.OrderProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// ComputeTotal derives the order total in the database. Unknown orders and
// orders without line items yield zero.
func (r *Repository) ComputeTotal(ctx context.Context, id string) (decimal.Decimal, error) {
	if err := r.ensureDB(); err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&orderItemRecord{}).
		Where("order_id = ?", id).
		Select("COALESCE(SUM(price_at_purchase * quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r orderRecord) toProjection() *ports.OrderProjection {
	order := &domain.Order{ID: r.ID, Status: domain.Status(r.Status)}
	for _, item := range r.Items {
		order.LineItems = append(order.LineItems, domain.LineItem{
			ID:              item.ID,
			OrderID:         item.OrderID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	return projection.New(order, r.CreatedAt, r.UpdatedAt)
}
