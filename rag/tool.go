package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentbus/tool"
)

// RetrievalOptions configures the retrieval tool.
type RetrievalOptions struct {
	// TopK bounds the number of documents returned per query.
	TopK int
}

// NewRetrievalTool exposes the store as a function tool so agents can ground
// their answers in indexed documents.
func NewRetrievalTool(store *Store, optFns ...func(o *RetrievalOptions)) *tool.FunctionTool {
	opts := RetrievalOptions{TopK: 3}
	for _, fn := range optFns {
		fn(&opts)
	}

	return tool.NewFunctionTool(
		"retrieve_documents",
		"Search the knowledge base for documents relevant to a question and return their contents",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question to find relevant documents for",
				},
			},
			"required": []string{"question"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			question, _ := args["question"].(string)
			results, err := store.Query(ctx, question, opts.TopK)
			if err != nil {
				return nil, err
			}
			if len(results) == 0 {
				return "No relevant documents found.", nil
			}
			var b strings.Builder
			for i, r := range results {
				fmt.Fprintf(&b, "[%d] %s\n", i+1, r.Content)
			}
			return strings.TrimSpace(b.String()), nil
		},
	)
}
