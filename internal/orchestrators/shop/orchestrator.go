// Package shop implements the shop orchestrator: a fixed catalog of
// items bought with coins for immediate stat effects.
package shop

import (
	"context"
	"log/slog"

	"github.com/questforge/questforge/internal/engine"
	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/errors"
	"github.com/questforge/questforge/internal/notify"
	"github.com/questforge/questforge/internal/repositories/world"
)

// Service defines the interface for shop operations
type Service interface {
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
	BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error)
}

// ListItemsInput is empty; the catalog is fixed
type ListItemsInput struct{}

// ListItemsOutput returns the catalog in display order
type ListItemsOutput struct {
	Items []entities.Item
}

// BuyItemInput identifies the catalog item to buy
type BuyItemInput struct {
	ItemID string
}

// BuyItemOutput returns the bought item and the user after the purchase
type BuyItemOutput struct {
	Item entities.Item
	User *entities.User
}

// Config holds the dependencies for the shop orchestrator
type Config struct {
	Repo     *world.Repository
	Notifier notify.Sink
	Logger   *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     *world.Repository
	notifier notify.Sink
	log      *slog.Logger
}

// NewOrchestrator creates a new shop orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &orchestrator{
		repo:     cfg.Repo,
		notifier: cfg.Notifier,
		log:      log,
	}, nil
}

// ListItems returns the catalog
func (o *orchestrator) ListItems(_ context.Context, _ *ListItemsInput) (*ListItemsOutput, error) {
	return &ListItemsOutput{Items: entities.ShopItems()}, nil
}

// BuyItem deducts the price and applies the item's effect atomically.
// An unaffordable item leaves the user byte for byte unchanged.
func (o *orchestrator) BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error) {
	if input == nil || input.ItemID == "" {
		return nil, errors.InvalidArgument("item id is required")
	}

	item, ok := entities.ItemByID(input.ItemID)
	if !ok {
		return nil, errors.NotFoundf("item %s not found", input.ItemID)
	}

	out := &BuyItemOutput{Item: item}
	err := o.repo.Update(func(s *world.State) error {
		u := s.Current()
		if u == nil {
			return errors.Unauthenticated("nobody is logged in")
		}
		if err := engine.ApplyPurchase(u, item); err != nil {
			return err
		}
		out.User = u.Clone()
		return nil
	})
	if err != nil {
		if errors.IsResourceExhausted(err) {
			o.notifier.Push(notify.Errorf("Not enough coins for %s!", item.Name))
		}
		return nil, err
	}

	o.log.InfoContext(ctx, "item bought", "item_id", item.ID, "cost", item.Cost)
	o.notifier.Push(notify.Successf("Bought %s %s!", item.Icon, item.Name))
	return out, nil
}
