package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/orchestrators/shop"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse the item shop",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		out, err := a.shop.ListItems(ctx, &shop.ListItemsInput{})
		if err != nil {
			return err
		}
		for _, item := range out.Items {
			fmt.Printf("%-8s %-14s %3d coins  %s\n",
				item.ID, item.Name, item.Cost, describeEffect(item))
		}
		return nil
	}),
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item-id>",
	Short: "Buy an item and apply its effect",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.shop.BuyItem(ctx, &shop.BuyItemInput{ItemID: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Bought %s. %d coins left.\n", out.Item.Name, out.User.Coins)
		return nil
	}),
}

func describeEffect(item entities.Item) string {
	switch item.Effect {
	case entities.EffectRestoreHP:
		return fmt.Sprintf("restores %d HP", item.Value)
	case entities.EffectBoostAttack:
		return fmt.Sprintf("+%d attack", item.Value)
	case entities.EffectBoostDefense:
		return fmt.Sprintf("+%d defense", item.Value)
	}
	return ""
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
}
