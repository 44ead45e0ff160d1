package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"nalevel/internal/config"
	"nalevel/internal/domain/models/blog"
	"nalevel/internal/repository"
	"nalevel/internal/repository/kv"
	"nalevel/internal/seed"
	blogService "nalevel/internal/service/blog"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dir := flag.String("dir", "seed", "Directory of Markdown files with YAML frontmatter")
	projectID := flag.String("project", "default", "Project the imported posts belong to")
	authorName := flag.String("author", "Seed", "Author name for imported posts")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()

	if cfg.StoreBackend == "memory" {
		log.Fatalf("Seeding the memory backend has no lasting effect; set STORE_BACKEND")
	}

	ctx := context.Background()
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	contentStore, err := blogService.NewContentStore(ctx,
		kv.NewBlogStateRepository(store, cfg.BlogStoreKey),
		blogService.NewContentAnalyzer(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to load content store: %v", err)
	}

	author := blog.Author{
		ID:   "seed-" + strings.ToLower(strings.ReplaceAll(*authorName, " ", "-")),
		Name: *authorName,
	}

	result, err := seed.NewMarkdownSeeder(contentStore, logger).ImportDir(ctx, *dir, *projectID, author)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("✅ Seed complete: %d imported, %d skipped (project %s)", len(result.Imported), len(result.Skipped), *projectID)
}
