package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocutover/open-api-specs/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaspecs-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

// decodeResult decodes a tool result into out, preferring structured
// content and falling back to the first text block.
func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()

	var data []byte
	if result.StructuredContent != nil {
		var err error
		data, err = json.Marshal(result.StructuredContent)
		require.NoError(t, err)
	} else {
		require.NotEmpty(t, result.Content)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content is %T", result.Content[0])
		data = []byte(text.Text)
	}
	require.NoError(t, json.Unmarshal(data, out))
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"compile", "versions", "template"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Versions(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "versions",
		Arguments: map[string]any{
			"tree": map[string]any{"root": root},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var out versionsOutput
	decodeResult(t, result, &out)
	assert.Equal(t, []string{"20210101", "20210301", "draft"}, out.Versions)
	assert.Equal(t, "20210301", out.Latest)
	assert.Equal(t, 2, out.OperationCount)
}

func TestIntegration_CallTool_Template(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "template",
		Arguments: map[string]any{
			"tree":      map[string]any{"root": root},
			"operation": "GET /widgets",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var out templateOutput
	decodeResult(t, result, &out)
	assert.Equal(t, "listWidgets", out.OperationID)
	assert.Equal(t, "draft", out.APIVersion)
}

func TestIntegration_CallTool_CompileInvalidVersion(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "compile",
		Arguments: map[string]any{
			"tree":    map[string]any{"root": root},
			"version": "20210101",
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError, "validation failures are reported, not raised")

	var out compileOutput
	decodeResult(t, result, &out)
	assert.False(t, out.Valid)
	assert.Positive(t, out.ErrorCount)
}

func TestIntegration_CallTool_UnknownOperation(t *testing.T) {
	root := writeTree(t, testutil.WidgetTree())
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "template",
		Arguments: map[string]any{
			"tree":      map[string]any{"root": root},
			"operation": "DELETE /widgets",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
