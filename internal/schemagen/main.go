// Command schemagen writes the JSON schema for the lifegen Configuration.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/macropower/lifegen/api/v1beta1/configs"
)

const modulePath = "github.com/macropower/lifegen"

var (
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
	rootDir = flag.String("root", "../../..", "Module root, used to read Go doc comments")
)

// commentPackages contribute field descriptions to the schema.
var commentPackages = []string{
	"./api/v1beta1",
	"./api/v1beta1/configs",
	"./pkg/build",
	"./pkg/ruleset",
}

func main() {
	flag.Parse()

	out, err := filepath.Abs(*outFile)
	if err != nil {
		log.Fatalf("resolve output path: %v", err)
	}

	data, err := generate(*rootDir)
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(out, data, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}

func generate(root string) ([]byte, error) {
	err := os.Chdir(root)
	if err != nil {
		return nil, fmt.Errorf("change to module root: %w", err)
	}

	r := &jsonschema.Reflector{}
	for _, pkg := range commentPackages {
		err = r.AddGoComments(modulePath, pkg)
		if err != nil {
			return nil, fmt.Errorf("read comments from %s: %w", pkg, err)
		}
	}

	js := r.Reflect(configs.New())
	js.ID = jsonschema.ID(modulePath + "/api/v1beta1/configs/config")

	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
