package mcpserver

import (
	"log/slog"

	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/internal/envconfig"
)

// defaultLimit caps list results when a tool call sets no limit.
const defaultLimit = 100

// cfg is the active server configuration, read once from OASPECS_*
// environment variables. Tool inputs override it per call.
var cfg = envconfig.Load()

// logger receives index and compile diagnostics. The stdio transport owns
// stdout, so slog's default handler (stderr) is the only safe sink.
var logger fragment.Logger = fragment.NewSlogAdapter(slog.Default())
