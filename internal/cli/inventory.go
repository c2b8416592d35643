package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/listview"
	"github.com/tgienger/tms/internal/models"
)

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory groups and items",
	}
	cmd.AddCommand(newGroupsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	return cmd
}

func groupFields() []fieldFlag[models.InventoryGroup] {
	return []fieldFlag[models.InventoryGroup]{
		{"name", "Group name", func(_ context.Context, g *models.InventoryGroup, v string) error {
			g.Name = strings.TrimSpace(v)
			return nil
		}},
	}
}

func newGroupsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Inventory group commands",
	}

	var f listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords[models.InventoryGroup](cmd, app, app.client.Groups(), listview.Groups, f)
		},
	}
	f.bind(list, "")

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a group",
	}
	addFields := bindFields(add, groupFields())
	add.RunE = func(cmd *cobra.Command, args []string) error {
		return createRecord[models.InventoryGroup](cmd, app, app.client.Groups(), nil, addFields)
	}

	rename := &cobra.Command{
		Use:   "rename <group-id>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(1),
	}
	renameFields := bindFields(rename, groupFields())
	_ = rename.MarkFlagRequired("name")
	rename.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRecord[models.InventoryGroup](cmd, app, app.client.Groups(), "group", argID(args, 0), renameFields)
	}

	del := &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecord[models.InventoryGroup](cmd, app, app.client.Groups(), argID(args, 0))
		},
	}

	cmd.AddCommand(list, add, rename, del)
	return cmd
}

func itemFields() []fieldFlag[models.InventoryItem] {
	return []fieldFlag[models.InventoryItem]{
		{"name", "Item name", func(_ context.Context, i *models.InventoryItem, v string) error {
			i.Name = strings.TrimSpace(v)
			return nil
		}},
		{"quantity", "Quantity in stock", func(_ context.Context, i *models.InventoryItem, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			i.Quantity = n
			return nil
		}},
	}
}

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Commands for the items of one group",
	}

	var f listFlags
	list := &cobra.Command{
		Use:   "list <group-id>",
		Short: "List the items of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords[models.InventoryItem](cmd, app, app.client.Items(argID(args, 0)), listview.Items, f)
		},
	}
	f.bind(list, "")

	add := &cobra.Command{
		Use:   "add <group-id>",
		Short: "Add an item to a group",
		Args:  cobra.ExactArgs(1),
	}
	addFields := bindFields(add, itemFields())
	add.RunE = func(cmd *cobra.Command, args []string) error {
		groupID := argID(args, 0)
		blank := func() models.InventoryItem { return models.InventoryItem{GroupID: groupID} }
		return createRecord[models.InventoryItem](cmd, app, app.client.Items(groupID), blank, addFields)
	}

	update := &cobra.Command{
		Use:   "update <group-id> <item-id>",
		Short: "Change the given fields of an item",
		Args:  cobra.ExactArgs(2),
	}
	updateFields := bindFields(update, itemFields())
	update.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRecord[models.InventoryItem](cmd, app, app.client.Items(argID(args, 0)), "item", argID(args, 1), updateFields)
	}

	del := &cobra.Command{
		Use:   "delete <group-id> <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecord[models.InventoryItem](cmd, app, app.client.Items(argID(args, 0)), argID(args, 1))
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}
