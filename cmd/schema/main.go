// schema writes JSON schema of tickerwire configuration, "-" as output prints it to stdout
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tickerwire/tickerwire/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := writeSchema(out); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if out != "-" {
		fmt.Printf("schema written to %s\n", out)
	}
}

func writeSchema(out string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if out == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(out, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
