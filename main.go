package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	jsonOut := flag.Bool("json", false, "emit the full result as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-json] <script.lisp>\n", os.Args[0])
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	app := NewApp()
	result := app.RunScript(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(os.Stderr, "%s:%d: %s\n", flag.Arg(0), e.Line, e.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s\n", flag.Arg(0), e.Message)
			}
		}
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}

	for i, m := range result.Meshes {
		label := "mesh"
		if i > 0 {
			label = fmt.Sprintf("cut-out %d", i)
		}
		col := result.Colliders[i]
		fmt.Printf("%s: %d vertices, %d triangles, bounds [%.3f %.3f %.3f] .. [%.3f %.3f %.3f]\n",
			label, len(m.Vertices)/3, len(m.Indices)/3,
			col.Min[0], col.Min[1], col.Min[2],
			col.Max[0], col.Max[1], col.Max[2])
	}
	if len(result.Selection) > 0 {
		fmt.Printf("selection: %d faces\n", len(result.Selection))
	}
}
