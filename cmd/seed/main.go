package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jefftrojan/afritrade-rev/internal/config"
	"github.com/jefftrojan/afritrade-rev/internal/db"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedSupplier struct {
	Name       string
	Email      string
	Company    string
	Location   string
	Categories []string
	Capacity   int
	Products   []seedProduct
}

type seedProduct struct {
	Name    string
	Details string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.User{}, &model.Product{}, &model.Order{}, &model.Notification{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("products already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	suppliers := buildSeedSuppliers()

	var total int
	err = gdb.Transaction(func(tx *gorm.DB) error {
		for _, s := range suppliers {
			user := model.User{
				Name:              s.Name,
				Email:             s.Email,
				PasswordHash:      string(hash),
				Role:              model.RoleSupplier,
				Location:          s.Location,
				CompanyName:       s.Company,
				ProductCategories: model.StringList(s.Categories),
				Capacity:          s.Capacity,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("insert supplier %q: %w", s.Email, err)
			}
			for i, p := range s.Products {
				prod := model.Product{
					ProductName:    p.Name,
					Location:       s.Location,
					SupplierName:   s.Company,
					ProductDetails: p.Details,
					ImageURL:       picsumURL(s.Company, i+1),
					UserID:         user.ID,
				}
				if err := tx.Create(&prod).Error; err != nil {
					return fmt.Errorf("insert product %q: %w", p.Name, err)
				}
				total++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d suppliers, %d products", len(suppliers), total)
	return nil
}

func buildSeedSuppliers() []seedSupplier {
	return []seedSupplier{
		{
			Name: "Amina Uwase", Email: "amina@kivucoffee.rw", Company: "Kivu Coffee Co-op",
			Location: "Kigali, Rwanda", Categories: []string{"coffee", "tea"}, Capacity: 500,
			Products: []seedProduct{
				{Name: "Arabica Green Beans", Details: "Washed arabica from Lake Kivu highlands, grade A, 60kg bags."},
				{Name: "Black Tea Leaves", Details: "Orthodox black tea, vacuum packed, 25kg cartons."},
			},
		},
		{
			Name: "Joseph Mensah", Email: "joseph@accratextiles.gh", Company: "Accra Textiles Ltd",
			Location: "Accra, Ghana", Categories: []string{"textiles"}, Capacity: 1200,
			Products: []seedProduct{
				{Name: "Kente Fabric Rolls", Details: "Handwoven kente, 12 yard rolls, assorted patterns."},
				{Name: "Cotton Batik Sheets", Details: "Wax print batik, 6 yard sheets, colourfast dyes."},
			},
		},
		{
			Name: "Fatima Diallo", Email: "fatima@sahelgrains.sn", Company: "Sahel Grains",
			Location: "Dakar, Senegal", Categories: []string{"grains", "cereals"}, Capacity: 2000,
			Products: []seedProduct{
				{Name: "Fonio 25kg", Details: "Cleaned and hulled fonio, 25kg woven sacks."},
				{Name: "Millet Flour", Details: "Stone ground millet flour, 10kg food grade bags."},
				{Name: "Sorghum Grain", Details: "Red sorghum, moisture below 13 percent, 50kg sacks."},
			},
		},
		{
			Name: "Daniel Okoye", Email: "daniel@lagosagro.ng", Company: "Lagos Agro Exports",
			Location: "Lagos, Nigeria", Categories: []string{"cocoa", "cashew"}, Capacity: 3000,
			Products: []seedProduct{
				{Name: "Raw Cashew Nuts", Details: "W320 grade raw cashew, jute bags, export ready."},
				{Name: "Cocoa Beans", Details: "Fermented and sun dried cocoa beans, 64kg bags."},
			},
		},
	}
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.Model(&model.Product{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	return strings.EqualFold(os.Getenv("FORCE_SEED"), "true"), nil
}

func picsumURL(company string, idx int) string {
	slug := strings.ToLower(strings.ReplaceAll(company, " ", "-"))
	return fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", slug, idx)
}
