package main

import (
	"fmt"
	"log"

	"github.com/huddle-dev/huddle/db"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gdb, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := db.MigrateDatabase(gdb); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			log.Println("Migrations applied")
			return nil
		},
	}
}
