// marksctl is the operator CLI: schema migration, admin seeding, and offline
// imports of marks files. It shares the reconciliation engine with the HTTP
// server, so both paths apply identical upsert rules.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"marksapi/internal/config"
	"marksapi/internal/database"
	"marksapi/internal/model"
	"marksapi/internal/service"
	"marksapi/internal/tabular"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "marksctl",
		Short:         "Administer the student marks backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedAdminCmd(), newImportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB loads config and connects; every subcommand goes through here so a
// connection failure is always reported instead of slipping past.
func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Open runs the migration itself.
			if _, err := openDB(); err != nil {
				return err
			}
			fmt.Println("Schema is up to date")
			return nil
		},
	}
}

func newSeedAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin staff account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			generated := false
			if password == "" {
				password, err = randomPassword()
				if err != nil {
					return err
				}
				generated = true
			}

			staff, err := service.NewStaffService(db).Create(email, password, model.RoleAdmin)
			if err != nil {
				return err
			}

			fmt.Println("Admin account:", staff.Email)
			if generated {
				fmt.Println("Generated password:", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "admin@example.com", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (generated and printed when omitted)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var file, uploadedBy string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a marks spreadsheet (.csv or .xlsx) without the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			table, err := tabular.Read(f, file)
			if err != nil {
				return err
			}

			summary, err := service.NewImportService(db).ImportTable(table, uploadedBy, filepath.Base(file))
			if err != nil {
				return err
			}

			fmt.Printf("Processed %d rows\n", summary.Processed)
			for _, re := range summary.RowErrors {
				fmt.Printf("  row %d skipped: %s\n", re.Row, re.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to the marks file (required)")
	cmd.Flags().StringVar(&uploadedBy, "uploaded-by", "marksctl", "Identity recorded as the uploader")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func randomPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
