package main

import (
	"log"

	"github.com/Nub/meshedit/pkg/engine"
	"github.com/Nub/meshedit/pkg/mesh"
)

// colorPalette is a default palette used to distinguish the edited mesh
// from the pieces cut off it.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the host-facing facade. It exposes script evaluation to UI
// bindings as plain JSON-serializable data.
type App struct {
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	UVs      []float32 `json:"uvs"`
	Indices  []uint32  `json:"indices"`
	Color    string    `json:"color"`
}

// ColliderData is the JSON-serializable collision summary for a mesh.
type ColliderData struct {
	Min       [3]float64 `json:"min"`
	Max       [3]float64 `json:"max"`
	Triangles int        `json:"triangles"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptResult is the full result returned to the frontend: the edited
// mesh first, then any cut-off pieces, each with a collider.
type ScriptResult struct {
	Meshes    []MeshData      `json:"meshes"`
	Colliders []ColliderData  `json:"colliders"`
	Selection []int           `json:"selection"`
	Errors    []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with a fresh engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// RunScript evaluates an edit script and returns mesh data + errors.
// This is the primary binding called by the frontend editor.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{
		Meshes:    []MeshData{},
		Colliders: []ColliderData{},
		Selection: []int{},
		Errors:    []EvalErrorData{},
	}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("RunScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: err.Error(),
		})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	appendMesh := func(r *mesh.Renderable, color string) {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: r.Vertices,
			Normals:  r.Normals,
			UVs:      r.UVs,
			Indices:  r.Indices,
			Color:    color,
		})
		result.Colliders = append(result.Colliders, colliderData(r))
	}

	if res.Mesh != nil {
		appendMesh(res.Mesh, colorPalette[0])
	}
	for i, cut := range res.CutOuts {
		appendMesh(cut, colorPalette[(i+1)%len(colorPalette)])
	}
	if res.Selection != nil {
		result.Selection = res.Selection
	}

	return result
}

// colliderData derives the collision summary for a renderable.
func colliderData(r *mesh.Renderable) ColliderData {
	m, err := mesh.FromRenderable(r)
	if err != nil {
		// The renderable came out of the engine, so this only happens on
		// an internal inconsistency.
		log.Printf("colliderData: %v", err)
		return ColliderData{}
	}
	col := mesh.DeriveCollider(m)
	return ColliderData{
		Min:       [3]float64{col.Min[0], col.Min[1], col.Min[2]},
		Max:       [3]float64{col.Max[0], col.Max[1], col.Max[2]},
		Triangles: len(col.Triangles),
	}
}
