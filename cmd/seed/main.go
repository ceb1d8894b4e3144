package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"lexgenie/internal/config"
	"lexgenie/internal/doctype"
	"lexgenie/internal/domain"
	"lexgenie/internal/repository/postgres"
	"lexgenie/internal/repository/postgres/migrations"
	"lexgenie/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	userID := flag.String("user", "", "User ID to seed data for (defaults to a fresh UUID)")
	clearData := flag.Bool("clear-data", false, "Clear all rows before seeding")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("BLOCKED: Cannot run --clear-data in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	owner := *userID
	if owner == "" {
		owner = uuid.NewString()
	}

	log.Printf("Seeding database (environment: %s, prefix: %s, user: %s)", cfg.Environment, cfg.TablePrefix, owner)

	// Ensure schema is up to date
	ctx := context.Background()
	if err := migrations.Run(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create database connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *clearData {
		log.Println("Clearing existing data...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	chatRepo := postgres.NewChatRepository(repoConfig)

	registry, err := doctype.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load document type registry: %v", err)
	}

	// Seed a folder to file contracts under
	folder := &domain.Folder{
		UserID: owner,
		Name:   "Contracts",
		Color:  "#10B981",
	}
	if err := folderRepo.Create(ctx, folder); err != nil {
		log.Fatalf("Failed to create folder: %v", err)
	}
	log.Printf("Created folder %q (ID: %s)", folder.Name, folder.ID)

	// Seed documents
	log.Println("Seeding documents...")
	for i, prompt := range seedPrompts {
		content := seedContents[i]
		doc := &domain.Document{
			UserID:    owner,
			Title:     utils.TitleFromPrompt(prompt),
			Type:      registry.InferType(prompt),
			Content:   content,
			Prompt:    prompt,
			Status:    domain.StatusCompleted,
			Tags:      []string{},
			WordCount: utils.CountWords(content),
			Preview:   utils.MakePreview(content),
		}
		if doc.Type == "Contract" {
			doc.FolderID = &folder.ID
		}
		if err := docRepo.Create(ctx, doc); err != nil {
			log.Printf("Failed to create document %d: %v", i+1, err)
			continue
		}
		log.Printf("Created document %d/%d: %s (ID: %s, Words: %d)", i+1, len(seedPrompts), doc.Title, doc.ID, doc.WordCount)
	}

	// Seed a chat session with one exchange
	session := &domain.ChatSession{UserID: owner, Title: "Lease questions"}
	if err := chatRepo.CreateSession(ctx, session); err != nil {
		log.Fatalf("Failed to create chat session: %v", err)
	}
	messages := []domain.ChatMessage{
		{SessionID: session.ID, Sender: domain.SenderUser, Content: "What notice period should a month-to-month lease require?"},
		{SessionID: session.ID, Sender: domain.SenderAssistant, Content: "Most jurisdictions require at least 30 days' written notice to end a month-to-month tenancy, though some require 60. Check the statute for the property's state and spell the period out in the lease."},
	}
	for i := range messages {
		if err := chatRepo.CreateMessage(ctx, &messages[i]); err != nil {
			log.Fatalf("Failed to create chat message: %v", err)
		}
	}
	log.Printf("Created chat session %q (ID: %s)", session.Title, session.ID)

	log.Println("Seeding complete!")
}

// clearAllData removes all rows in dependency order, keeping the schema.
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.ChatMessages, tables.ChatSessions, tables.Documents, tables.Folders} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

var seedPrompts = []string{
	"draft a mutual non-disclosure agreement between two software companies",
	"write an employment agreement for a senior engineer position",
	"create a privacy policy for a small e-commerce website",
	"draft a residential lease for a month-to-month tenancy",
}

var seedContents = []string{
	`MUTUAL NON-DISCLOSURE AGREEMENT

This Mutual Non-Disclosure Agreement (the "Agreement") is entered into by and between the undersigned parties for the purpose of preventing the unauthorized disclosure of Confidential Information.

1. DEFINITION OF CONFIDENTIAL INFORMATION
"Confidential Information" means any information disclosed by either party to the other, whether orally, in writing, or by inspection of tangible objects, that is designated as confidential or that reasonably should be understood to be confidential.

2. OBLIGATIONS
Each party agrees to hold the other party's Confidential Information in strict confidence and not to disclose it to any third party without prior written consent.

3. TERM
The obligations under this Agreement shall survive for a period of three (3) years from the date of disclosure.`,
	`EMPLOYMENT AGREEMENT

This Employment Agreement is made between the Company and the Employee.

1. POSITION AND DUTIES
The Employee shall serve as Senior Engineer and shall perform duties customarily associated with that position.

2. COMPENSATION
The Company shall pay the Employee a base salary, payable in accordance with the Company's standard payroll practices.

3. AT-WILL EMPLOYMENT
Employment is at-will and may be terminated by either party at any time, with or without cause or notice.`,
	`PRIVACY POLICY

This Privacy Policy describes how we collect, use, and protect personal information submitted through our website.

1. INFORMATION WE COLLECT
We collect information you provide directly, including name, email address, shipping address, and payment details.

2. HOW WE USE INFORMATION
We use collected information to fulfill orders, provide customer support, and improve our services.

3. DATA RETENTION
We retain personal information only as long as necessary for the purposes described in this policy.`,
	`RESIDENTIAL LEASE AGREEMENT

This Residential Lease Agreement is entered into between the Landlord and the Tenant for a month-to-month tenancy.

1. PREMISES
The Landlord leases to the Tenant the residential premises described herein.

2. RENT
Rent is due on the first day of each month.

3. TERMINATION
Either party may terminate this tenancy by providing at least thirty (30) days' written notice.`,
}
