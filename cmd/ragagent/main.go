package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hupe1980/agentbus"
	"github.com/hupe1980/agentbus/agent"
	"github.com/hupe1980/agentbus/config"
	"github.com/hupe1980/agentbus/logging"
	"github.com/hupe1980/agentbus/rag"
	"github.com/hupe1980/agentbus/tool"
)

// ragagent serves a knowledge base agent over the A2A protocol. Documents
// are embedded and indexed in-process at startup; set RAG_DOCS_DIR to index
// your own .txt/.md files.
func main() {
	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("failed to load env files: %v", err)
	}

	cfg := config.AgentFromEnv(":8082")
	// Document embeddings always go through OpenAI, whatever the chat model.
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}
	if v := cfg.MissingModelKey(); v != "" {
		log.Fatalf("%s environment variable is required", v)
	}

	logger := logging.New(&logging.Config{
		Level:  logging.LogLevelInfo,
		Format: "text",
		Output: os.Stderr,
	})

	store, err := rag.NewStore()
	if err != nil {
		log.Fatalf("failed to create document store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := indexDocuments(ctx, store); err != nil {
		log.Fatalf("failed to index documents: %v", err)
	}
	log.Printf("indexed %d documents", store.Count())

	model, err := agentbus.NewModel(cfg.ModelProvider, cfg.ModelName)
	if err != nil {
		log.Fatalf("failed to create model: %v", err)
	}
	ragAgent := agent.New("rag", model, func(o *agent.Options) {
		o.Description = "Answers questions from the indexed knowledge base"
		o.Instruction = "You answer questions strictly from the knowledge base. Use the " +
			"retrieve_documents tool to find relevant passages before answering. If nothing " +
			"relevant is found, say so instead of guessing."
		o.Tools = []tool.Tool{rag.NewRetrievalTool(store)}
		o.Logger = logger
	})

	bus := agentbus.New(ragAgent, func(o *agentbus.Options) {
		o.Addr = cfg.Addr
		o.Logger = logger
	})

	log.Printf("rag agent listening on %s", cfg.Addr)
	if err := bus.Serve(ctx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// indexDocuments fills the store from RAG_DOCS_DIR, or with a small sample
// knowledge base when the variable is unset.
func indexDocuments(ctx context.Context, store *rag.Store) error {
	dir := os.Getenv("RAG_DOCS_DIR")
	if dir == "" {
		return store.Add(ctx,
			rag.Document{
				ID:      "returns-policy",
				Content: "Products can be returned within 30 days of purchase for a full refund, provided they are unused and in their original packaging.",
			},
			rag.Document{
				ID:      "warranty",
				Content: "All hardware products include a two year limited warranty covering manufacturing defects. Accidental damage is not covered.",
			},
			rag.Document{
				ID:      "shipping",
				Content: "Standard shipping takes 3-5 business days. Express shipping is available for an additional fee and delivers within 24 hours.",
			},
		)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var docs []rag.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		docs = append(docs, rag.Document{
			ID:       entry.Name(),
			Content:  string(data),
			Metadata: map[string]string{"source": entry.Name()},
		})
	}
	return store.Add(ctx, docs...)
}
