package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/config"
	"github.com/foodgram-go/backend/internal/database"
	"github.com/foodgram-go/backend/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "foodgram",
		Short:        "Foodgram administration commands",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd(), loadDataCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			cmd.Println("migrations applied")
			return nil
		},
	}
}

func loadDataCmd() *cobra.Command {
	var ingredientsPath, tagsPath string

	cmd := &cobra.Command{
		Use:   "load-data",
		Short: "Load ingredient and tag reference data from CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ingredientsPath == "" && tagsPath == "" {
				return fmt.Errorf("nothing to load, pass --ingredients and/or --tags")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			svc := service.NewIngredientService(db)

			if ingredientsPath != "" {
				n, err := loadCSV(ingredientsPath, svc.LoadIngredientsCSV)
				if err != nil {
					return fmt.Errorf("loading ingredients: %w", err)
				}
				cmd.Printf("loaded %d ingredients\n", n)
			}
			if tagsPath != "" {
				n, err := loadCSV(tagsPath, svc.LoadTagsCSV)
				if err != nil {
					return fmt.Errorf("loading tags: %w", err)
				}
				cmd.Printf("loaded %d tags\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ingredientsPath, "ingredients", "", "path to a name,unit CSV file")
	cmd.Flags().StringVar(&tagsPath, "tags", "", "path to a name,color,slug CSV file")
	return cmd
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return database.New(cfg)
}

func loadCSV(path string, load func(r io.Reader) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return load(f)
}
