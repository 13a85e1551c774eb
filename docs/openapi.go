// Package docs builds the OpenAPI description of the HTTP API from the same
// resource declarations the router is built from, and serves it together
// with a Swagger UI.
package docs

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// Resource is the documentation view of one CRUD resource.
type Resource struct {
	Path      string
	Tag       string
	Keys      []string
	Updatable bool
	// Model is a pointer to the entity type.
	Model interface{}
	Extra []Operation
}

// Operation documents a route outside the five standard ones.
type Operation struct {
	Method   string
	Path     string
	Summary  string
	Params   []string
	Array    bool
	NotFound bool
}

type Info struct {
	Title       string
	Version     string
	Description string
}

// Message is the body of successful writes. A create also carries the
// record's key columns next to the message.
type Message struct {
	Message string `json:"message" required:"true"`
}

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error" required:"true"`
}

// Build reflects every resource's routes into an OpenAPI 3 document.
func Build(info Info, resources []Resource) (*openapi3.Spec, error) {
	r := openapi3.Reflector{}
	r.Spec = &openapi3.Spec{Openapi: "3.0.3"}
	r.Spec.Info.WithTitle(info.Title).WithVersion(info.Version)
	if info.Description != "" {
		r.Spec.Info.WithDescription(info.Description)
	}
	r.AddTypeMapping(decimal.Decimal{}, float64(0))

	b := builder{r: &r}
	for _, res := range resources {
		r.Spec.Tags = append(r.Spec.Tags, openapi3.Tag{Name: res.Tag})
		b.resource(res)
		for _, extra := range res.Extra {
			b.extra(res, extra)
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return r.Spec, nil
}

// builder keeps the first error so that routes can be added in sequence.
type builder struct {
	r   *openapi3.Reflector
	err error
}

type route struct {
	method  string
	path    string
	id      string
	summary string
	params  []string
	body    interface{}
	// responses by status code
	responses map[int]interface{}
}

func (b *builder) resource(res Resource) {
	name := typeName(res.Model)
	list := reflect.New(reflect.SliceOf(reflect.TypeOf(res.Model).Elem())).Interface()

	b.add(res.Tag, route{
		method: http.MethodGet, path: res.Path, id: "list" + name,
		summary:   "Lista todos os registros",
		responses: map[int]interface{}{http.StatusOK: list, http.StatusBadRequest: new(Error)},
	})

	b.add(res.Tag, route{
		method: http.MethodPost, path: res.Path, id: "create" + name,
		summary:   "Cria um novo registro",
		body:      res.Model,
		responses: map[int]interface{}{http.StatusCreated: new(Message), http.StatusBadRequest: new(Error)},
	})

	item := itemPath(res.Path, res.Keys)
	missing := map[int]interface{}{http.StatusBadRequest: new(Error), http.StatusNotFound: new(Error)}

	b.add(res.Tag, route{
		method: http.MethodGet, path: item, id: "get" + name, params: res.Keys,
		summary:   "Busca um registro",
		responses: with(missing, http.StatusOK, res.Model),
	})
	if res.Updatable {
		b.add(res.Tag, route{
			method: http.MethodPut, path: item, id: "update" + name, params: res.Keys,
			summary:   "Atualiza um registro",
			body:      res.Model,
			responses: with(missing, http.StatusOK, new(Message)),
		})
	}
	b.add(res.Tag, route{
		method: http.MethodDelete, path: item, id: "delete" + name, params: res.Keys,
		summary:   "Remove um registro",
		responses: with(missing, http.StatusOK, new(Message)),
	})
}

func (b *builder) extra(res Resource, op Operation) {
	var out interface{} = res.Model
	if op.Array {
		out = reflect.New(reflect.SliceOf(reflect.TypeOf(res.Model).Elem())).Interface()
	}
	responses := map[int]interface{}{http.StatusOK: out, http.StatusBadRequest: new(Error)}
	if op.NotFound {
		responses[http.StatusNotFound] = new(Error)
	}
	b.add(res.Tag, route{
		method: op.Method, path: op.Path, params: op.Params,
		id:        strings.ToLower(op.Method) + typeName(res.Model) + "By" + strings.Join(op.Params, ""),
		summary:   op.Summary,
		responses: responses,
	})
}

func (b *builder) add(tag string, rt route) {
	if b.err != nil {
		return
	}
	oc, err := b.r.NewOperationContext(rt.method, rt.path)
	if err != nil {
		b.err = err
		return
	}
	oc.SetTags(tag)
	oc.SetSummary(rt.summary)
	oc.SetID(rt.id)

	// Key columns vary per resource, so path parameters are declared
	// directly instead of through a request struct.
	if exp, ok := oc.(openapi3.OperationExposer); ok {
		op := exp.Operation()
		for _, p := range rt.params {
			op.Parameters = append(op.Parameters, pathParam(p))
		}
	}

	if rt.body != nil {
		oc.AddReqStructure(rt.body)
	}
	for status, out := range rt.responses {
		oc.AddRespStructure(out, openapi.WithHTTPStatus(status))
	}

	if err := b.r.AddOperation(oc); err != nil {
		b.err = fmt.Errorf("%s %s: %w", rt.method, rt.path, err)
	}
}

func with(base map[int]interface{}, status int, out interface{}) map[int]interface{} {
	m := make(map[int]interface{}, len(base)+1)
	for k, v := range base {
		m[k] = v
	}
	m[status] = out
	return m
}

func pathParam(name string) openapi3.ParameterOrRef {
	required := true
	schema := (&openapi3.Schema{}).WithType(openapi3.SchemaTypeInteger).WithFormat("int64")
	return openapi3.ParameterOrRef{Parameter: &openapi3.Parameter{
		Name:     name,
		In:       openapi3.ParameterInPath,
		Required: &required,
		Schema:   &openapi3.SchemaOrRef{Schema: schema},
	}}
}

func itemPath(base string, keys []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, k := range keys {
		b.WriteString("/{" + k + "}")
	}
	return b.String()
}

func typeName(model interface{}) string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
