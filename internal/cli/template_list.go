package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) templateListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "template:list",
		Aliases: []string{"t:l"},
		Short:   "Lists templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			templates, err := store.Templates.List(ctx)
			if err != nil {
				return fmt.Errorf("list templates: %w", err)
			}

			items := make([]string, 0, len(templates))
			for _, tpl := range templates {
				item := tpl.Name
				if !tpl.AllowsNewPages() {
					item += " " + a.out.Tint("(no new pages)", TintComment)
				}
				items = append(items, item)
			}
			a.out.RenderList("templates", items)
			return nil
		},
	}
}
