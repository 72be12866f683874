package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	pkgkafka "github.com/cgdmohamed/drznmobile-sub000/pkg/kafka"
)

// Kafka topics for cart domain events.
var (
	TopicCartUpdated = pkgkafka.Topic("cart", "updated")
	TopicCartCleared = pkgkafka.Topic("cart", "cleared")
)

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from this service.
const SourceStorefront = "storefront-service"

// CartUpdatedData is the payload for a cart.updated event. Monetary amounts
// are decimal strings.
type CartUpdatedData struct {
	CartID    string         `json:"cart_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  string         `json:"subtotal"`
	Discount  string         `json:"discount"`
	Shipping  string         `json:"shipping"`
	VAT       string         `json:"vat"`
	Total     string         `json:"total"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	CartID string `json:"cart_id"`
}

// Producer publishes cart domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			SKU:       item.Product.SKU,
			Price:     item.Product.EffectivePrice().String(),
			Quantity:  item.Quantity,
		}
	}

	data := CartUpdatedData{
		CartID:    cart.ID,
		Items:     items,
		ItemCount: cart.ItemCount,
		Subtotal:  cart.Subtotal.String(),
		Discount:  cart.Discount.String(),
		Shipping:  cart.Shipping.String(),
		VAT:       cart.VAT.String(),
		Total:     cart.Total.String(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cart.ID),
		slog.Int("item_count", cart.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cartID string) error {
	data := CartClearedData{CartID: cartID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, cartID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("cart_id", cartID),
	)

	return nil
}
