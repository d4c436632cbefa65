package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			if err := migration.Up(m.db); err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			if err := m.updateVersion(migration.Version); err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"version": -1})).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return doc.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").InsertOne(ctx, bson.M{
		"version":    version,
		"applied_at": time.Now(),
	})
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create core indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				indexes := map[string][]mongo.IndexModel{
					"users": {
						{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
					},
					"shops": {
						{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
						{Keys: bson.D{{Key: "owner_id", Value: 1}}},
					},
					"stores": {
						{Keys: bson.D{{Key: "shop_id", Value: 1}}},
					},
					"menuItems": {
						{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "category", Value: 1}, {Key: "sort_order", Value: 1}}},
						{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "code", Value: 1}}},
					},
					"rewards": {
						{Keys: bson.D{{Key: "shop_id", Value: 1}}},
					},
					"stamps": {
						{Keys: bson.D{{Key: "customer_email", Value: 1}, {Key: "shop_id", Value: 1}, {Key: "reward_id", Value: 1}, {Key: "status", Value: 1}}},
						{Keys: bson.D{{Key: "expires_at", Value: 1}}},
					},
					"claims": {
						{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "status", Value: 1}}},
						{Keys: bson.D{{Key: "customer_email", Value: 1}}},
					},
					"favorites": {
						{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "menu_item_id", Value: 1}}, Options: options.Index().SetUnique(true)},
					},
					"userVisits": {
						{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "shop_id", Value: 1}}, Options: options.Index().SetUnique(true)},
						{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "visited_at", Value: -1}}},
					},
				}

				for collection, models := range indexes {
					if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
