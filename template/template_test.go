package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocutover/open-api-specs/fragment"
	"github.com/gocutover/open-api-specs/oaserrors"
	"github.com/gocutover/open-api-specs/versions"
)

func ctxFor(method, path string) Context {
	return NewContext(fragment.NewOperationKey(method, path, fragment.DefaultAPIPrefix), "draft")
}

func mustNew(t *testing.T, doc map[string]any, ctx Context, opts ...Option) *Template {
	t.Helper()
	tpl, err := New(doc, ctx, opts...)
	require.NoError(t, err)
	return tpl
}

func TestNew_NormalizesKeys(t *testing.T) {
	doc := map[string]any{"id": "listWidgets", "x-owner": "team-a", "summary": "List"}
	tpl := mustNew(t, doc, ctxFor("get", "/widgets"))

	got := tpl.Document()
	assert.Equal(t, map[string]any{"operationId": "listWidgets", "owner": "team-a", "summary": "List"}, got)
	assert.Equal(t, "listWidgets", tpl.OperationID())
	assert.Contains(t, doc, "id", "input is not modified")
}

func TestNew_MissingOperationID(t *testing.T) {
	_, err := New(map[string]any{}, ctxFor("get", "/widgets"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrMissingOperationID))
	assert.Contains(t, err.Error(), "/api/widgets/get")

	tpl, err := New(map[string]any{}, ctxFor("get", "/legacy/widgets/{id}"), WithLegacyPrefixes("/api/legacy/"))
	require.NoError(t, err)
	assert.Equal(t, "getApiLegacyWidgetsById", tpl.OperationID())

	_, err = New(map[string]any{}, ctxFor("get", "/legacyish"), WithLegacyPrefixes("/api/legacy"))
	assert.ErrorIs(t, err, oaserrors.ErrMissingOperationID)
}

func TestTemplate_Defaults(t *testing.T) {
	tpl := mustNew(t, map[string]any{"id": "a"}, ctxFor("get", "/a"))
	assert.Equal(t, []string{"application/json"}, tpl.Consumes())
	assert.Equal(t, []any{map[string]any{"bearerAuth": []any{}}}, tpl.Security())
	assert.Nil(t, tpl.RequestBodyJSON())
	assert.Empty(t, tpl.Parameters())
	assert.Empty(t, tpl.Responses())

	tpl = mustNew(t, map[string]any{"id": "a", "consumes": []any{"multipart/form-data"}, "security": []any{}},
		ctxFor("post", "/a"),
		WithDefaultSecurity([]any{map[string]any{"apiKey": []any{}}}))
	assert.Equal(t, []string{"multipart/form-data"}, tpl.Consumes())
	assert.Equal(t, []any{}, tpl.Security(), "explicit empty security is kept")

	tpl = mustNew(t, map[string]any{"id": "a"}, ctxFor("post", "/a"),
		WithDefaultSecurity([]any{map[string]any{"apiKey": []any{}}}),
		WithDefaultConsumes("text/plain"))
	assert.Equal(t, []any{map[string]any{"apiKey": []any{}}}, tpl.Security())
	assert.Equal(t, []string{"text/plain"}, tpl.Consumes())
}

func TestTemplate_Parameters(t *testing.T) {
	tpl := mustNew(t, map[string]any{
		"id": "a",
		"parameters": []any{
			"page",
			map[string]any{"name": "q"},
			map[string]any{"name": "n", "in": "query", "schema": map[string]any{"type": "integer"}},
			map[string]any{"name": "f", "schema": map[string]any{"oneOf": []any{}}},
			map[string]any{"name": "w", "schema": map[string]any{"$ref": "#/components/schemas/W"}},
			map[string]any{"$ref": "#/components/parameters/limit"},
		},
	}, ctxFor("get", "/a"))

	assert.Equal(t, []any{
		map[string]any{"$ref": "#/components/parameters/page"},
		map[string]any{"name": "q", "in": "formData", "schema": map[string]any{"type": "string"}},
		map[string]any{"name": "n", "in": "query", "schema": map[string]any{"type": "integer"}},
		map[string]any{"name": "f", "in": "formData", "schema": map[string]any{"oneOf": []any{}}},
		map[string]any{"name": "w", "in": "formData", "schema": map[string]any{"$ref": "#/components/schemas/W"}},
		map[string]any{"$ref": "#/components/parameters/limit"},
	}, tpl.Parameters())
}

func TestTemplate_RequestBodyJSON(t *testing.T) {
	tpl := mustNew(t, map[string]any{"id": "a", "requestBody": "NewWidget"}, ctxFor("post", "/widgets"))
	assert.Equal(t, map[string]any{"$ref": "#/components/requestBodies/NewWidget"}, tpl.RequestBodyJSON())

	tpl = mustNew(t, map[string]any{
		"id": "a",
		"requestBody": map[string]any{
			"required": true,
			"schema":   "Widget",
			"examples": map[string]any{"basic": map[string]any{"value": map[string]any{"name": "w"}}},
		},
	}, ctxFor("post", "/widgets"))
	assert.Equal(t, map[string]any{
		"required": true,
		"content": map[string]any{"application/json": map[string]any{
			"schema":   map[string]any{"$ref": "#/components/requestBodies/Widget/content/application~1json/schema"},
			"examples": map[string]any{"basic": map[string]any{"value": map[string]any{"name": "w"}}},
		}},
	}, tpl.RequestBodyJSON())
}

func TestTemplate_Responses(t *testing.T) {
	legacy := mustNew(t, map[string]any{
		"id": "a",
		"responses": []any{
			map[string]any{"status": 200, "description": "ok", "schema": "Widget"},
			map[string]any{"status": 404},
		},
	}, ctxFor("get", "/widgets"))

	assert.Equal(t, map[string]any{
		"200": map[string]any{
			"description": "ok",
			"schema":      map[string]any{"$ref": "#/components/schemas/Widget"},
			"examples":    map[string]any{},
		},
		"404": map[string]any{"description": "", "examples": map[string]any{}},
	}, legacy.Responses())
	assert.Equal(t, []string{"200", "404"}, legacy.StatusCodes())

	keyed := mustNew(t, map[string]any{
		"id":        "a",
		"responses": map[string]any{"201": map[string]any{"$ref": "#/components/responses/Created"}},
	}, ctxFor("post", "/widgets"))
	assert.Equal(t, map[string]any{"201": map[string]any{"$ref": "#/components/responses/Created"}}, keyed.Responses())
}

func TestTemplate_Examples(t *testing.T) {
	tpl := mustNew(t, map[string]any{
		"id": "listWidgets",
		"responses": map[string]any{
			"200": map[string]any{
				"description": "Widgets",
				"examples": map[string]any{
					"empty_list": map[string]any{"value": []any{}},
					"one":        map[string]any{"summary": "A single widget", "value": []any{map[string]any{"name": "w"}}},
				},
			},
			"404": map[string]any{},
		},
	}, ctxFor("get", "/widgets"))

	examples := tpl.Examples()
	require.Len(t, examples, 4)

	master := examples[0]
	assert.True(t, master.Master)
	assert.Equal(t, "200", master.Status)
	assert.Equal(t, "Widgets", master.Description)
	assert.Equal(t, []string{ConditionBodyHasData}, master.PostConditions)
	assert.Equal(t, "/api/widgets/get", master.Operation)
	assert.Equal(t, "listWidgets", master.OperationID)

	assert.False(t, examples[1].Master)
	assert.Equal(t, "empty_list", examples[1].Name)
	assert.Equal(t, "Empty List", examples[1].Description)
	assert.Equal(t, map[string]any{"value": []any{}}, examples[1].Value)
	assert.Equal(t, master.Status, examples[1].Status, "documented examples inherit the master context")
	assert.Equal(t, master.APIVersion, examples[1].APIVersion)

	assert.Equal(t, "A single widget", examples[2].Description)

	notFound := examples[3]
	assert.True(t, notFound.Master)
	assert.Equal(t, "404", notFound.Status)
	assert.Equal(t, "Get Api Widgets 404", notFound.Description)
	assert.Empty(t, notFound.PostConditions, "non-200 responses skip the data check")
}

func TestTemplate_ExamplesDataCheckDisabled(t *testing.T) {
	tpl := mustNew(t, map[string]any{
		"id":        "a",
		"responses": map[string]any{"200": map[string]any{"description": "ok", "data_check": false}},
	}, ctxFor("get", "/a"))
	examples := tpl.Examples()
	require.Len(t, examples, 1)
	assert.Empty(t, examples[0].PostConditions)
}

func TestTemplate_Get(t *testing.T) {
	tpl := mustNew(t, map[string]any{
		"id":      "a",
		"owner":   map[string]any{"id": 42, "name": "team"},
		"summary": "List",
	}, ctxFor("get", "/a"))

	v, ok := tpl.Get("operationId")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	v, ok = tpl.Get("consumes")
	assert.True(t, ok)
	assert.Equal(t, []string{"application/json"}, v)

	v, ok = tpl.Get("ownerId")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = tpl.Get("summary")
	assert.True(t, ok)
	assert.Equal(t, "List", v)

	_, ok = tpl.Get("summaryId")
	assert.False(t, ok)
	_, ok = tpl.Get("missing")
	assert.False(t, ok)

	assert.Contains(t, tpl.Names(), "requestBodyJson")
}

func TestTemplate_Query(t *testing.T) {
	tpl := mustNew(t, map[string]any{
		"id": "a",
		"parameters": []any{
			map[string]any{"name": "page", "in": "query"},
			map[string]any{"name": "size", "in": "query"},
		},
	}, ctxFor("get", "/a"))

	got, err := tpl.Query("$.parameters[*].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"page", "size"}, got)

	got, err = tpl.Query("$.operationId")
	require.NoError(t, err)
	assert.Equal(t, []any{"a"}, got)

	_, err = tpl.Query("$.parameters[")
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"widgets/get.yml":          "id: listWidgets\n",
		"widgets/get/20210101.yml": "id: listWidgetsV1\n",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	idx, err := versions.New(versions.WithRoot(root))
	require.NoError(t, err)

	tpl, err := Find(idx, "GET /widgets", "20210101")
	require.NoError(t, err)
	assert.Equal(t, "listWidgetsV1", tpl.OperationID())
	assert.Equal(t, "20210101", tpl.Context().APIVersion)

	tpl, err = Find(idx, "/api/widgets/get", "20210301")
	require.NoError(t, err)
	assert.Equal(t, "listWidgets", tpl.OperationID())

	_, err = Find(idx, "GET /unknown", "draft")
	assert.ErrorIs(t, err, oaserrors.ErrOperationNotFound)

	_, err = Find(idx, "nonsense", "draft")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}
