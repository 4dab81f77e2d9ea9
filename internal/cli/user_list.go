package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	contentService "wireshell/internal/service/content"
)

func (a *App) userListCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:     "user:list",
		Aliases: []string{"u:l"},
		Short:   "Lists users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listUsers(cmd.Context(), role)
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Find users by role")

	return cmd
}

func (a *App) listUsers(ctx context.Context, role string) error {
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	users, err := contentService.NewUserService(store.Users, a.logger).ListUsers(ctx, role)
	if err != nil {
		return err
	}

	a.printf("Users: %d", len(users))
	if len(users) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		superuser := ""
		if u.IsSuperuser() {
			superuser = "✔"
		}
		rows = append(rows, []string{u.Name, u.Email, superuser, strings.Join(u.Roles, ", ")})
	}

	a.out.Println()
	renderTable(a.out.Writer(), []string{"Username", "E-Mail", "Superuser", "Roles"}, rows)
	a.out.Println()
	return nil
}
