package docs

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggest/openapi-go/openapi3"
	swgui "github.com/swaggest/swgui/v5cdn"
	"gopkg.in/yaml.v3"
)

const (
	BasePath = "/apidocs/"
	specJSON = BasePath + "openapi.json"
	specYAML = BasePath + "openapi.yaml"
)

// Mount serves spec as JSON and YAML, the Swagger UI under BasePath, and
// redirects / to the UI. The documents are rendered once.
func Mount(r *mux.Router, spec *openapi3.Spec) error {
	jsonDoc, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	yamlDoc, err := toYAML(jsonDoc)
	if err != nil {
		return err
	}

	r.HandleFunc(specJSON, serveBytes("application/json", jsonDoc)).Methods(http.MethodGet)
	r.HandleFunc(specYAML, serveBytes("application/yaml", yamlDoc)).Methods(http.MethodGet)
	r.PathPrefix(BasePath).Handler(swgui.New(spec.Info.Title, specJSON, BasePath)).Methods(http.MethodGet)
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, BasePath, http.StatusFound)
	}).Methods(http.MethodGet)
	return nil
}

// toYAML re-encodes the JSON document; YAML is a superset of JSON.
func toYAML(jsonDoc []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(jsonDoc, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(body)
	}
}
