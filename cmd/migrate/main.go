package main

import (
	"context"
	"log"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect through the shared gateway
	gateway := database.NewGateway(cfg.Database.Connection, database.DefaultPoolConfig())
	defer gateway.Close()

	ctx := context.Background()
	db, err := gateway.DB(ctx)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate...")
	if err := gateway.Migrate(ctx, model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Indexes AutoMigrate cannot express
	log.Println("Step 2: Creating list and search indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_notes_listing ON notes (workspace_id, is_archived, is_pinned DESC, updated_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_listing ON documents (workspace_id, is_archived, is_pinned DESC, updated_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_title_lower ON notes (LOWER(title));`,
		`CREATE INDEX IF NOT EXISTS idx_documents_title_lower ON documents (LOWER(title));`,
		`CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email));`,
		`CREATE INDEX IF NOT EXISTS idx_activities_feed ON activities (workspace_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_history ON chat_messages (chat_id, created_at);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed.")
}
