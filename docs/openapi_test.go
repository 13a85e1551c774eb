package docs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"school-backend/docs"
	"school-backend/models"
)

func sampleResources() []docs.Resource {
	return []docs.Resource{
		{
			Path: "/pagamentos", Tag: "Pagamentos", Keys: []string{"id_pagamento"},
			Updatable: true, Model: new(models.Payment),
		},
		{
			Path: "/atividades_alunos", Tag: "Atividades-Alunos", Keys: []string{"id_atividade", "id_aluno"},
			Model: new(models.ActivityStudent),
		},
		{
			Path: "/order-details", Tag: "Detalhes do Pedido", Keys: []string{"order_id", "product_id"},
			Updatable: true, Model: new(models.OrderDetail),
			Extra: []docs.Operation{{
				Method: http.MethodGet, Path: "/order-details/{order_id}", Summary: "by order",
				Params: []string{"order_id"}, Array: true, NotFound: true,
			}},
		},
	}
}

// render builds the document and decodes its JSON form.
func render(t *testing.T) map[string]interface{} {
	t.Helper()
	spec, err := docs.Build(docs.Info{Title: "API", Version: "1.0.0"}, sampleResources())
	require.NoError(t, err)

	raw, err := json.Marshal(spec)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func object(t *testing.T, v interface{}, key string) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	require.True(t, ok, "expected an object holding %q", key)
	out, ok := m[key].(map[string]interface{})
	require.True(t, ok, "missing %q", key)
	return out
}

func TestBuildPaths(t *testing.T) {
	doc := render(t)
	assert.Equal(t, "3.0.3", doc["openapi"])

	paths := object(t, doc, "paths")
	collection := object(t, paths, "/pagamentos")
	assert.Contains(t, collection, "get")
	assert.Contains(t, collection, "post")
	assert.Contains(t, object(t, collection, "post"), "requestBody")
	assert.Contains(t, object(t, object(t, collection, "post"), "responses"), "201")

	item := object(t, paths, "/pagamentos/{id_pagamento}")
	assert.Contains(t, item, "put")
	assert.Contains(t, object(t, object(t, item, "get"), "responses"), "404")

	assoc := object(t, paths, "/atividades_alunos/{id_atividade}/{id_aluno}")
	assert.NotContains(t, assoc, "put", "associations without payload columns have no update")
	params, ok := object(t, assoc, "delete")["parameters"].([]interface{})
	require.True(t, ok)
	assert.Len(t, params, 2)

	byOrder := object(t, object(t, paths, "/order-details/{order_id}"), "get")
	assert.Contains(t, object(t, byOrder, "responses"), "404")
}

func TestBuildSchemas(t *testing.T) {
	schemas := object(t, object(t, render(t), "components"), "schemas")

	var payment map[string]interface{}
	for name, s := range schemas {
		if strings.HasSuffix(name, "Payment") {
			payment = s.(map[string]interface{})
		}
	}
	require.NotNil(t, payment, "payment schema is published")

	required, ok := payment["required"].([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"id_aluno", "data_pagamento", "valor_pago"}, required)

	props := object(t, payment, "properties")
	assert.Contains(t, props, "data_pagamento")
	assert.NotEqual(t, "object", object(t, props, "valor_pago")["type"], "money is published as a number")

	raw, err := json.Marshal(schemas)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"format":"date"`)
}

func TestMount(t *testing.T) {
	spec, err := docs.Build(docs.Info{Title: "API", Version: "1.0.0"}, sampleResources())
	require.NoError(t, err)

	r := mux.NewRouter()
	require.NoError(t, docs.Mount(r, spec))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apidocs/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var fromJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fromJSON))
	assert.Contains(t, fromJSON["paths"], "/pagamentos")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/apidocs/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &fromYAML))
	assert.Equal(t, "3.0.3", fromYAML["openapi"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, docs.BasePath, rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, docs.BasePath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
