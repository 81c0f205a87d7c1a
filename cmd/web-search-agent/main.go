// Command web-search-agent serves the mediated web_search tool over MCP
// stdio, so any MCP-capable agent orchestration can use the search pipeline.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"go.mau.fi/util/exerrors"

	"github.com/Filichkin/web-search-agent/pkg/config"
	"github.com/Filichkin/web-search-agent/pkg/extract"
	"github.com/Filichkin/web-search-agent/pkg/mediator"
	"github.com/Filichkin/web-search-agent/pkg/search"
	"github.com/Filichkin/web-search-agent/pkg/store"
	"github.com/Filichkin/web-search-agent/pkg/tools"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg := exerrors.Must(config.Load(*configPath))

	level := exerrors.Must(zerolog.ParseLevel(cfg.Logging.Level))
	var log zerolog.Logger
	if cfg.Logging.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	extractor := extract.New(cfg.Extract)
	resultStore := store.New(cfg.Store.Path).WithEnricher(
		func(ctx context.Context, url, fallback string) string {
			return extractor.Extract(ctx, url, fallback, cfg.Mediator.ExtractMaxChars)
		},
	)
	searcher := search.NewClient(cfg.Search)
	med := mediator.New(cfg.Mediator, searcher, extractor, resultStore)

	// One stdio connection serves one conversation.
	sessionID := xid.New().String()
	webSearch := tools.NewWebSearchTool(med, sessionID)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "web-search-agent",
		Version: "0.1.0",
	}, nil)
	mcpTool := webSearch.ToMCPTool()
	mcp.AddTool(server, &mcpTool,
		func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
			result, err := webSearch.Execute(log.WithContext(ctx), input)
			if err != nil {
				return nil, nil, err
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: result.Text()}},
				IsError: result.Status == tools.ResultError,
			}, nil, nil
		})

	log.Info().
		Str("session_id", sessionID).
		Str("store_path", resultStore.Path()).
		Msg("Serving web_search over stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("MCP server exited")
	}
}
