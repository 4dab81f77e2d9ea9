package cli

import (
	"context"

	"github.com/spf13/cobra"

	contentSvc "wireshell/internal/domain/services/content"
	"wireshell/internal/sanitizer"
	contentService "wireshell/internal/service/content"
)

// DefaultTemplateAnswer is preselected when prompting for a template.
const DefaultTemplateAnswer = "template"

type pageCreateOptions struct {
	template      string
	parent        string
	title         string
	fieldDataFile string
}

func (a *App) pageCreateCommand() *cobra.Command {
	var opts pageCreateOptions

	cmd := &cobra.Command{
		Use:     "page:create <name>[,<name>...]",
		Aliases: []string{"p:c"},
		Short:   "Creates pages",
		Long: `Creates one page per comma-separated name below the parent page.

Names already taken below the parent are skipped. With --fielddatafile the
JSON object's keys are assigned to the new pages' fields; keys the template
does not know are reported and ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.createPages(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.template, "template", "", "Template")
	cmd.Flags().StringVar(&opts.parent, "parent", "", "Parent page path (default /)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title (default: the page name)")
	cmd.Flags().StringVar(&opts.fieldDataFile, "fielddatafile", "", "Field data file (JSON)")

	return cmd
}

func (a *App) createPages(ctx context.Context, arg string, opts pageCreateOptions) error {
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	templateName := opts.template
	if templateName == "" {
		templateName, err = a.prompter.Ask("Please enter the template", DefaultTemplateAnswer)
		if err != nil {
			return err
		}
	}

	names := sanitizer.New()
	importer := contentService.NewFieldDataImporter(names, a.logger)

	var fieldData []byte
	if opts.fieldDataFile != "" {
		fieldData, err = importer.LoadFile(opts.fieldDataFile)
		if err != nil {
			return err
		}
	}

	creator := contentService.NewPageCreator(
		contentService.NewTemplateResolver(store.Templates, a.logger),
		contentService.NewParentResolver(store.Pages, store.Templates, a.logger),
		store.Pages,
		importer,
		names,
		a.out,
		a.logger,
	)

	_, err = creator.CreatePages(ctx, &contentSvc.CreatePagesRequest{
		Names:        contentService.SplitNames(arg),
		TemplateName: templateName,
		ParentPath:   opts.parent,
		Title:        opts.title,
		FieldData:    fieldData,
	})
	return err
}
