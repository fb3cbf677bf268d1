package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/martrack-dev/martrack/internal/auth"
	"github.com/martrack-dev/martrack/internal/models"
	"github.com/martrack-dev/martrack/internal/secrets"
)

// seedFile describes the YAML demo-data layout
type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Stores   []struct {
			Type     string `yaml:"type"`
			APIToken string `yaml:"api_token"`
			Products []struct {
				ExternalID string `yaml:"external_id"`
				Name       string `yaml:"name"`
				Price      int    `yaml:"price"`
				Quantity   int    `yaml:"quantity"`
			} `yaml:"products"`
		} `yaml:"stores"`
	} `yaml:"users"`
	Mappings []struct {
		User     string `yaml:"user"`
		Product1 string `yaml:"product1"` // external IDs
		Product2 string `yaml:"product2"`
	} `yaml:"mappings"`
}

// seedFromFile loads demo data from a YAML file. It is a no-op when the
// database already has users, so restarts don't duplicate data.
func (s *Server) seedFromFile(path string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Msg("Database not empty, skipping seed")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	// external ID -> product ID, per user email
	productIDs := make(map[string]map[string]string)
	userIDs := make(map[string]int)

	for _, su := range seed.Users {
		passwordHash, err := auth.HashPassword(su.Password)
		if err != nil {
			return err
		}

		user := models.User{Email: su.Email, PasswordHash: passwordHash}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		userIDs[su.Email] = user.ID
		productIDs[su.Email] = make(map[string]string)

		for _, st := range su.Stores {
			encrypted, err := secrets.Encrypt(st.APIToken, s.config.Server.EncryptionKey)
			if err != nil {
				return err
			}

			store := models.Store{UserID: user.ID, Type: st.Type, APIToken: encrypted}
			if err := s.db.Create(&store).Error; err != nil {
				return fmt.Errorf("failed to seed store for %s: %w", su.Email, err)
			}

			for _, p := range st.Products {
				product := models.Product{
					StoreID:    store.ID,
					ExternalID: p.ExternalID,
					Name:       p.Name,
					Price:      p.Price,
					Quantity:   p.Quantity,
				}
				if err := s.db.Create(&product).Error; err != nil {
					return fmt.Errorf("failed to seed product %s: %w", p.ExternalID, err)
				}
				productIDs[su.Email][p.ExternalID] = product.ID
			}
		}
	}

	for _, sm := range seed.Mappings {
		p1, ok1 := productIDs[sm.User][sm.Product1]
		p2, ok2 := productIDs[sm.User][sm.Product2]
		if !ok1 || !ok2 {
			s.logger.Warn().Str("user", sm.User).Msg("Seed mapping references unknown product, skipping")
			continue
		}

		mapping := models.Mapping{UserID: userIDs[sm.User], Product1ID: p1, Product2ID: p2}
		if err := s.db.Create(&mapping).Error; err != nil {
			return fmt.Errorf("failed to seed mapping: %w", err)
		}
	}

	s.logger.Info().Int("users", len(seed.Users)).Msg("Seeded demo data")
	return nil
}
