package main

import (
	"github.com/spf13/cobra"

	"github.com/mjanssen/docflow/internal/cli"
	"github.com/mjanssen/docflow/internal/config"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the configured category map",
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := config.CategoriesFromViper()
			if err != nil {
				return err
			}

			cmd.Println(cli.TitleStyle.Render("Categories"))
			for _, cat := range categories.Categories() {
				marker := "  "
				if cat.Key == categories.Fallback() {
					marker = cli.WarningStyle.Render("* ")
				}
				cmd.Printf("%s%-20s %s\n", marker, cat.Key, cli.SubtleStyle.Render(cat.Path))
			}
			cmd.Println(cli.SubtleStyle.Render("\n* fallback category"))
			return nil
		},
	}
}
