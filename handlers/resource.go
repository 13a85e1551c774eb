package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"school-backend/database"
	"school-backend/docs"
	"school-backend/middleware"
)

const redactedError = "request could not be processed"

// Options are shared by every resource.
type Options struct {
	// ExposeErrors keeps the database's error text in 400 responses.
	ExposeErrors bool
	Logger       *zap.Logger
}

// Messages are the texts returned by a resource's operations.
type Messages struct {
	Created  string
	Updated  string
	Deleted  string
	NotFound string
}

// Definition declares one resource: its route prefix, documentation tag,
// storage and response texts.
type Definition struct {
	Path     string
	Tag      string
	Table    database.TableSpec
	Messages Messages
}

// Resource serves the five CRUD operations of one entity type. Each request
// runs exactly one statement through the table.
type Resource[T any] struct {
	def      Definition
	table    *database.Table[T]
	validate *validator.Validate
	opts     Options
}

func NewResource[T any](table *database.Table[T], def Definition, v *validator.Validate, opts Options) *Resource[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Resource[T]{def: def, table: table, validate: v, opts: opts}
}

// ItemPath is the route of a single record, e.g. /alunos/{id_aluno:[0-9]+}.
func (res *Resource[T]) ItemPath() string {
	var b strings.Builder
	b.WriteString(res.def.Path)
	for _, k := range res.table.Keys() {
		fmt.Fprintf(&b, "/{%s:[0-9]+}", k)
	}
	return b.String()
}

func (res *Resource[T]) Register(r *mux.Router) {
	r.HandleFunc(res.def.Path, res.Create).Methods(http.MethodPost)
	r.HandleFunc(res.def.Path, res.List).Methods(http.MethodGet)

	item := res.ItemPath()
	r.HandleFunc(item, res.Get).Methods(http.MethodGet)
	if res.table.Updatable() {
		r.HandleFunc(item, res.Update).Methods(http.MethodPut)
	}
	r.HandleFunc(item, res.Delete).Methods(http.MethodDelete)
}

// Doc describes the resource's routes for the API documentation.
func (res *Resource[T]) Doc() docs.Resource {
	return docs.Resource{
		Path:      res.def.Path,
		Tag:       res.def.Tag,
		Keys:      res.table.Keys(),
		Updatable: res.table.Updatable(),
		Model:     new(T),
	}
}

func (res *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	rec := new(T)
	if err := decodeBody(w, r, rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkRecord(res.validate, rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := res.table.Insert(r.Context(), rec); err != nil {
		res.fail(w, r, "create", err)
		return
	}

	body := map[string]interface{}{"message": res.def.Messages.Created}
	for k, v := range res.table.KeyValues(rec) {
		body[k] = v
	}
	writeJSON(w, http.StatusCreated, body)
}

func (res *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	keys, err := res.pathKeys(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := res.table.Get(r.Context(), keys...)
	if err != nil {
		res.fail(w, r, "read", err)
		return
	}
	sanitize(rec)
	writeJSON(w, http.StatusOK, rec)
}

func (res *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	list, err := res.table.List(r.Context())
	if err != nil {
		res.fail(w, r, "list", err)
		return
	}
	for i := range list {
		sanitize(&list[i])
	}
	writeJSON(w, http.StatusOK, list)
}

func (res *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	keys, err := res.pathKeys(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := new(T)
	if err := decodeBody(w, r, rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// The path identifies the row; keys in the body are ignored.
	if err := res.table.SetKeys(rec, keys...); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkRecord(res.validate, rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := res.table.Update(r.Context(), rec, keys...); err != nil {
		res.fail(w, r, "update", err)
		return
	}
	writeMessage(w, http.StatusOK, res.def.Messages.Updated)
}

func (res *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	keys, err := res.pathKeys(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := res.table.Delete(r.Context(), keys...); err != nil {
		res.fail(w, r, "delete", err)
		return
	}
	writeMessage(w, http.StatusOK, res.def.Messages.Deleted)
}

// fail maps a store error to a response: no matching row is 404, a
// connection that could not be acquired is 500, anything else is 400.
func (res *Resource[T]) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	fields := []zap.Field{
		zap.String("resource", res.def.Path),
		zap.String("table", res.table.Name()),
		zap.String("op", op),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Error(err),
	}

	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, res.def.Messages.NotFound)
	case errors.Is(err, database.ErrUnavailable):
		res.opts.Logger.Error("database unavailable", fields...)
		writeError(w, http.StatusInternalServerError, "database unavailable")
	default:
		res.opts.Logger.Warn("statement failed", fields...)
		msg := err.Error()
		if !res.opts.ExposeErrors {
			msg = redactedError
		}
		writeError(w, http.StatusBadRequest, msg)
	}
}

func (res *Resource[T]) pathKeys(r *http.Request) ([]int64, error) {
	return parseKeys(mux.Vars(r), res.table.Keys())
}

func parseKeys(vars map[string]string, names []string) ([]int64, error) {
	keys := make([]int64, len(names))
	for i, name := range names {
		v, err := strconv.ParseInt(vars[name], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", name, vars[name])
		}
		keys[i] = v
	}
	return keys, nil
}
