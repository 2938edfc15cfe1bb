// Command navsh evaluates a navigation script and prints the final
// position of every point the script registered.
//
// Usage:
//
//	navsh -f walk.lisp
//	navsh            (runs a built-in demo script)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/navmesh/pkg/engine"
)

// demoScript walks a point across a square floor and clamps another one
// at the boundary.
const demoScript = `
; 10x10 floor, 4x4 cells
(grid :width 10 :depth 10 :cols 4 :rows 4)

(def a (register (vec3 1 1 0)))
(def b (register (vec3 5 5 0)))

(move-to a (vec3 9 9 0))
(move-to b (vec3 50 5 0))   ; clamps at the floor edge
`

func main() {
	scriptPath := flag.String("f", "", "navigation script to evaluate (default: built-in demo)")
	flag.Parse()

	source := demoScript
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		source = string(data)
	}

	sess, evalErrs, err := engine.NewEngine().Evaluate(source)
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("script error: %s", e.Error())
		}
		os.Exit(1)
	}

	fmt.Printf("mesh: %d vertices, %d edges (%d boundary), %d faces\n",
		sess.Nav.VertexCount(), sess.Nav.EdgeCount(),
		sess.Nav.BoundaryEdgeCount(), sess.Nav.FaceCount())

	for _, id := range sess.Points {
		pos, ok := sess.Nav.Position(id)
		if !ok {
			continue
		}
		face, _ := sess.Nav.FaceOf(id)
		fmt.Printf("%s: (%.4f, %.4f, %.4f) on face %d\n", id, pos.X, pos.Y, pos.Z, face)
	}
}
