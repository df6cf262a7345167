package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-sections/cmd/sections/internal/bootstrap"
	"github.com/goliatone/go-sections/internal/commands"
	sectionscmd "github.com/goliatone/go-sections/internal/commands/sections"
	"github.com/google/uuid"
)

var moduleBuilder = bootstrap.BuildModule

const usage = `usage: sections <command> [flags]

commands:
  reorder           replace the section order of a page
  toggle-section    flip the active flag of a page section
  toggle-page       flip the active flag of a page
  delete-section    delete a page section and close the gap
  reorder-homepage  replace the homepage section order of a site
  toggle-homepage   flip the active flag of a homepage section
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("sections: %v", err)
	}
}

type target struct {
	configPath string
	site       string
	page       string
	section    string
	order      string
}

func (t *target) bind(fs *flag.FlagSet, withPage, withSection, withOrder bool) {
	fs.StringVar(&t.configPath, "config", "", "Path to a YAML or JSON config file (optional)")
	fs.StringVar(&t.site, "site", "", "Site key")
	if withPage {
		fs.StringVar(&t.page, "page", "", "Page ID")
	}
	if withSection {
		fs.StringVar(&t.section, "section", "", "Section ID")
	}
	if withOrder {
		fs.StringVar(&t.order, "order", "", "Comma separated section IDs in their new order")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return fmt.Errorf("command is required")
	}
	name, rest := args[0], args[1:]

	var t target
	fs := flag.NewFlagSet("sections "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	switch name {
	case "reorder":
		t.bind(fs, true, false, true)
	case "toggle-section", "delete-section":
		t.bind(fs, true, true, false)
	case "toggle-page":
		t.bind(fs, true, false, false)
	case "reorder-homepage":
		t.bind(fs, false, false, true)
	case "toggle-homepage":
		t.bind(fs, false, true, false)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", name)
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}

	pageID, err := bootstrap.ParseUUID(t.page)
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	sectionID, err := bootstrap.ParseUUID(t.section)
	if err != nil {
		return fmt.Errorf("parse section: %w", err)
	}
	order, err := bootstrap.ParseUUIDList(t.order)
	if err != nil {
		return fmt.Errorf("parse order: %w", err)
	}

	module, err := moduleBuilder(ctx, bootstrap.Options{ConfigPath: t.configPath})
	if err != nil {
		return err
	}
	defer module.Module.Close()

	pageSvc := module.Module.Pages()
	homepageSvc := module.Module.Homepage()
	recorder := module.Module.Container().Metrics()

	switch name {
	case "reorder":
		handler := sectionscmd.NewReorderSectionsHandler(pageSvc, module.Logger, commands.WithMetrics[sectionscmd.ReorderSectionsCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.ReorderSectionsCommand{Site: t.site, PageID: pageID, Order: order}); err != nil {
			return err
		}
		sections, err := pageSvc.ListSections(ctx, t.site, pageID)
		if err != nil {
			return err
		}
		for _, section := range sections {
			fmt.Fprintf(out, "%d\t%s\t%s\n", section.SortOrder, section.ID, section.Type)
		}
	case "toggle-section":
		handler := sectionscmd.NewToggleSectionHandler(pageSvc, module.Logger, commands.WithMetrics[sectionscmd.ToggleSectionCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.ToggleSectionCommand{Site: t.site, PageID: pageID, SectionID: sectionID}); err != nil {
			return err
		}
		section, err := pageSvc.GetSection(ctx, t.site, pageID, sectionID)
		if err != nil {
			return err
		}
		printActive(out, section.ID, section.Active)
	case "toggle-page":
		handler := sectionscmd.NewTogglePageHandler(pageSvc, module.Logger, commands.WithMetrics[sectionscmd.TogglePageCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.TogglePageCommand{Site: t.site, PageID: pageID}); err != nil {
			return err
		}
		page, err := pageSvc.GetPage(ctx, t.site, pageID)
		if err != nil {
			return err
		}
		printActive(out, page.ID, page.Active)
	case "delete-section":
		handler := sectionscmd.NewDeleteSectionHandler(pageSvc, module.Logger, commands.WithMetrics[sectionscmd.DeleteSectionCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.DeleteSectionCommand{Site: t.site, PageID: pageID, SectionID: sectionID}); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", sectionID)
	case "reorder-homepage":
		handler := sectionscmd.NewReorderHomepageHandler(homepageSvc, module.Logger, commands.WithMetrics[sectionscmd.ReorderHomepageCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.ReorderHomepageCommand{Site: t.site, Order: order}); err != nil {
			return err
		}
		sections, err := homepageSvc.List(ctx, t.site)
		if err != nil {
			return err
		}
		for _, section := range sections {
			fmt.Fprintf(out, "%d\t%s\t%s\n", section.SortOrder, section.ID, section.Identifier)
		}
	case "toggle-homepage":
		handler := sectionscmd.NewToggleHomepageSectionHandler(homepageSvc, module.Logger, commands.WithMetrics[sectionscmd.ToggleHomepageSectionCommand](recorder))
		if err := handler.Execute(ctx, sectionscmd.ToggleHomepageSectionCommand{Site: t.site, SectionID: sectionID}); err != nil {
			return err
		}
		section, err := homepageSvc.Get(ctx, t.site, sectionID)
		if err != nil {
			return err
		}
		printActive(out, section.ID, section.Active)
	}
	return nil
}

func printActive(out io.Writer, id uuid.UUID, active bool) {
	state := "inactive"
	if active {
		state = "active"
	}
	fmt.Fprintf(out, "%s %s\n", id, state)
}
