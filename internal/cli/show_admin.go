package cli

import (
	"github.com/spf13/cobra"

	contentService "wireshell/internal/service/content"
)

func (a *App) showAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show:admin",
		Aliases: []string{"s:a"},
		Short:   "Shows the URL of the administration page",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.store(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := contentService.NewAdminService(store.Pages, a.cfg.SiteURL, a.cfg.AdminPath, a.logger)
			url, err := svc.AdminURL(ctx)
			if err != nil {
				return err
			}
			a.printf("Admin Url %s", a.out.Tint(url, TintLink))
			return nil
		},
	}
}
