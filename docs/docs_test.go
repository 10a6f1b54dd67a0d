package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var parsed struct {
		Info  map[string]interface{}            `json:"info"`
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	if parsed.Info["title"] != "Todo API" {
		t.Errorf("title = %v", parsed.Info["title"])
	}
	for path, methods := range map[string][]string{
		"/test":       {"get"},
		"/todos":      {"get", "post"},
		"/todos/{id}": {"put", "delete"},
	} {
		for _, m := range methods {
			if _, ok := parsed.Paths[path][m]; !ok {
				t.Errorf("missing %s %s", m, path)
			}
		}
	}
}
