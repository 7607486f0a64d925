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

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
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
	err := m.db.Collection("migrations").FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.M{"version": -1}),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
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
			Description: "Create unique index on orders.stripe_session_id",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				// Enforces at most one order per payment session even when
				// the success callback is delivered concurrently.
				_, err := db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "stripe_session_id", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
		{
			Version:     2,
			Description: "Create unique compound index on coupons(code, user_id)",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("coupons").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{
						{Key: "code", Value: 1},
						{Key: "user_id", Value: 1},
					},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
		{
			Version:     3,
			Description: "Create catalog and cart indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{Keys: bson.D{{Key: "category", Value: 1}}},
					{Keys: bson.D{{Key: "is_featured", Value: 1}}},
				})
				if err != nil {
					return err
				}

				_, err = db.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
		{
			Version:     4,
			Description: "Create orders.created_at index for sales analytics",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{{Key: "created_at", Value: 1}},
				})
				return err
			},
		},
	}
}
