package engine

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Nub/meshedit/pkg/camera"
	"github.com/Nub/meshedit/pkg/kernel"
	sdfxkernel "github.com/Nub/meshedit/pkg/kernel/sdfx"
	"github.com/Nub/meshedit/pkg/mesh"
	"github.com/Nub/meshedit/pkg/pick"
	"github.com/Nub/meshedit/pkg/region"
	"github.com/Nub/meshedit/pkg/tool"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms edit-script Lisp source code before passing
// it to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: select-all -> select_all
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps an mgl64.Vec3.
type sexpVec3 struct {
	vec mgl64.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel.Solid so primitives and booleans compose.
type sexpSolid struct {
	solid kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.solid.BoundingBox()
	return fmt.Sprintf("(solid %.1fx%.1fx%.1f)", max[0]-min[0], max[1]-min[1], max[2]-min[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_flood) and plain strings ("flood").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toVec3 extracts an mgl64.Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (mgl64.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel.Solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toRegionMode converts a keyword to a region.Mode.
func toRegionMode(s zygo.Sexp) (region.Mode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected region mode keyword: %w", err)
	}
	switch name {
	case "world-grid":
		return region.WorldGrid, nil
	case "uv-grid":
		return region.UVGrid, nil
	case "flood-fill":
		return region.FloodFill, nil
	case "lasso":
		return region.Lasso, nil
	}
	return 0, fmt.Errorf("invalid region mode %q, expected world-grid/uv-grid/flood-fill/lasso", name)
}

// toToolMode converts a keyword to a tool.Mode.
func toToolMode(s zygo.Sexp) (tool.Mode, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected tool mode keyword: %w", err)
	}
	switch name {
	case "select":
		return tool.ModeSelect, nil
	case "extrude":
		return tool.ModeExtrude, nil
	case "cut":
		return tool.ModeCut, nil
	}
	return 0, fmt.Errorf("invalid tool mode %q, expected select/extrude/cut", name)
}

// ---------------------------------------------------------------------------
// Edit state shared by the builtins of one evaluation
// ---------------------------------------------------------------------------

// editState carries the session across builtin calls of one evaluation:
// the geometry kernel for source solids, the tool controller driving the
// session, the script's camera and the pieces cut off along the way.
type editState struct {
	kernel     kernel.Kernel
	controller *tool.Controller
	camera     *camera.Camera
	cutOuts    []*mesh.Renderable
}

func newEditState() *editState {
	return &editState{
		kernel:     sdfxkernel.New(),
		controller: tool.NewController(),
	}
}

// result snapshots the state when the script finishes.
func (st *editState) result() *Result {
	res := &Result{CutOuts: st.cutOuts}
	if !st.controller.Active() {
		return res
	}
	s := st.controller.Session()
	m := s.Mesh()
	res.Mesh = m.ToRenderable()
	res.Collider = mesh.DeriveCollider(m)
	res.Selection = s.Selection().Sorted()
	res.Generation = s.Generation()
	return res
}

// recordCommit collects the cut-off piece of a committed edit.
func (st *editState) recordCommit(c *tool.Commit) {
	if c != nil && c.CutOut != nil {
		st.cutOuts = append(st.cutOuts, c.CutOut)
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the edit-script builtins into a zygomys
// environment. The builtins operate on the provided edit state, driving
// one tool session during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, st *editState) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var v mgl64.Vec3
		for i := 0; i < 3; i++ {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: argument %d: %w", i+1, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (box 10 10 10) / (cylinder :height 50 :radius 10) / (sphere 5)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires 3 dimensions, got %d", len(args))
		}
		var d [3]float64
		for i := 0; i < 3; i++ {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: dimension %d: %w", i+1, err)
			}
			d[i] = f
		}
		return &sexpSolid{solid: st.kernel.Box(d[0], d[1], d[2])}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		height, radius := 1.0, 0.5
		segments := 32
		if v, ok := pa.kw["height"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
			}
			height = f
		}
		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
			}
			radius = f
		}
		if v, ok := pa.kw["segments"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: segments: %w", err)
			}
			segments = n
		}
		return &sexpSolid{solid: st.kernel.Cylinder(height, radius, segments)}, nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a radius, got %d arguments", len(args))
		}
		r, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		return &sexpSolid{solid: st.kernel.Sphere(r)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b) / (difference a b) / (intersection a b)
	// -----------------------------------------------------------------------
	binary := func(fname string, op func(a, b kernel.Solid) kernel.Solid) {
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires 2 solids, got %d arguments", fname, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
			}
			return &sexpSolid{solid: op(a, b)}, nil
		})
	}
	binary("union", st.kernel.Union)
	binary("difference", st.kernel.Difference)
	binary("intersection", st.kernel.Intersection)

	// -----------------------------------------------------------------------
	// (translate solid 10 0 0) / (rotate solid 0 0 90)
	// -----------------------------------------------------------------------
	transform := func(fname string, op func(s kernel.Solid, x, y, z float64) kernel.Solid) {
		env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 4 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid and 3 numbers, got %d arguments", fname, len(args))
			}
			s, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
			}
			var d [3]float64
			for i := 0; i < 3; i++ {
				f, err := toFloat64(args[i+1])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: argument %d: %w", fname, i+2, err)
				}
				d[i] = f
			}
			return &sexpSolid{solid: op(s, d[0], d[1], d[2])}, nil
		})
	}
	transform("translate", st.kernel.Translate)
	transform("rotate", st.kernel.Rotate)

	// -----------------------------------------------------------------------
	// (session (box 1 1 1))
	// Tessellates the solid and opens the edit session on it.
	// -----------------------------------------------------------------------
	env.AddFunction("session", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("session requires a solid, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("session: %w", err)
		}
		r, err := st.kernel.ToRenderable(s)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("session: tessellate: %w", err)
		}
		if err := st.controller.Start(r, mgl64.Ident4()); err != nil {
			return zygo.SexpNull, fmt.Errorf("session: %w", err)
		}
		return &zygo.SexpInt{Val: int64(r.TriangleCount())}, nil
	})

	// -----------------------------------------------------------------------
	// (camera :eye (vec3 0 0 5) :target (vec3 0 0 0) :fov 60
	//         :width 800 :height 600)
	// -----------------------------------------------------------------------
	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		eye := mgl64.Vec3{0, 0, 5}
		target := mgl64.Vec3{}
		fov := 60.0
		width, height := 800, 600

		if v, ok := pa.kw["eye"]; ok {
			p, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: eye: %w", err)
			}
			eye = p
		}
		if v, ok := pa.kw["target"]; ok {
			p, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: target: %w", err)
			}
			target = p
		}
		if v, ok := pa.kw["fov"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: fov: %w", err)
			}
			fov = f
		}
		if v, ok := pa.kw["width"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: width: %w", err)
			}
			width = n
		}
		if v, ok := pa.kw["height"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: height: %w", err)
			}
			height = n
		}

		st.camera = camera.NewPerspective(eye, target, mgl64.Vec3{0, 1, 0},
			mgl64.DegToRad(fov), width, height)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (region-mode :flood-fill :angle 45)
	// (region-mode :world-grid :size 2)
	// -----------------------------------------------------------------------
	env.AddFunction("region_mode", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("region-mode requires a mode keyword")
		}
		// The mode keyword is positional; parse only the rest as kwargs.
		mode, err := toRegionMode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("region-mode: %w", err)
		}
		st.controller.SetRegionMode(mode)
		pa := parseArgs(args[1:])

		params := &st.controller.State().Params
		if v, ok := pa.kw["size"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("region-mode: size: %w", err)
			}
			if mode == region.UVGrid {
				params.UVGridSize = f
			} else {
				params.GridSize = f
			}
		}
		if v, ok := pa.kw["angle"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("region-mode: angle: %w", err)
			}
			params.AngleThreshold = mgl64.DegToRad(f)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (grid-step 1) / (grid-step -2)
	// -----------------------------------------------------------------------
	env.AddFunction("grid_step", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("grid-step requires a step count")
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("grid-step: %w", err)
		}
		st.controller.GridStep(n)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (select :from (vec3 0 5 0) :dir (vec3 0 -1 0) :additive true :xray true)
	// (select :screen (vec3 400 300 0))  — ray through a pixel via the camera
	// Returns the hit face index, or -1 on a miss.
	// -----------------------------------------------------------------------
	env.AddFunction("select", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if !st.controller.Active() {
			return zygo.SexpNull, fmt.Errorf("select: no active session; call (session ...) first")
		}
		pa := parseArgs(args)

		var ray pick.Ray
		switch {
		case pa.kw["from"] != nil && pa.kw["dir"] != nil:
			from, err := toVec3(pa.kw["from"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: from: %w", err)
			}
			dir, err := toVec3(pa.kw["dir"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: dir: %w", err)
			}
			ray = pick.Ray{Origin: from, Dir: dir.Normalize()}
		case pa.kw["screen"] != nil:
			if st.camera == nil {
				return zygo.SexpNull, fmt.Errorf("select: screen picking needs a camera; call (camera ...) first")
			}
			p, err := toVec3(pa.kw["screen"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: screen: %w", err)
			}
			origin, dir := st.camera.ViewRay(p[0], p[1])
			ray = pick.Ray{Origin: origin, Dir: dir}
		default:
			return zygo.SexpNull, fmt.Errorf("select requires :from/:dir or :screen")
		}

		additive := false
		if v, ok := pa.kw["additive"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: additive: %w", err)
			}
			additive = b
		}
		xray := false
		if v, ok := pa.kw["xray"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("select: xray: %w", err)
			}
			xray = b
		}

		hit, ok := st.controller.Click(ray, xray, additive)
		if !ok {
			return &zygo.SexpInt{Val: -1}, nil
		}
		return &zygo.SexpInt{Val: int64(hit.Face)}, nil
	})

	// -----------------------------------------------------------------------
	// (lasso-close :additive true)
	// Closes the polygon accumulated by lasso-mode selects.
	// -----------------------------------------------------------------------
	env.AddFunction("lasso_close", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if st.camera == nil {
			return zygo.SexpNull, fmt.Errorf("lasso-close needs a camera; call (camera ...) first")
		}
		pa := parseArgs(args)
		additive := false
		if v, ok := pa.kw["additive"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("lasso-close: additive: %w", err)
			}
			additive = b
		}
		st.controller.LassoClose(st.camera, additive)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (select-all) / (invert-selection) / (clear-selection) / (escape)
	// -----------------------------------------------------------------------
	env.AddFunction("select_all", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		st.controller.SelectAll()
		return zygo.SexpNull, nil
	})
	env.AddFunction("invert_selection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		st.controller.InvertSelection()
		return zygo.SexpNull, nil
	})
	env.AddFunction("clear_selection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		st.controller.ClearSelection()
		return zygo.SexpNull, nil
	})
	env.AddFunction("escape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: st.controller.Escape()}, nil
	})

	// -----------------------------------------------------------------------
	// (selection-count) — for script assertions
	// -----------------------------------------------------------------------
	env.AddFunction("selection_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if !st.controller.Active() {
			return &zygo.SexpInt{Val: 0}, nil
		}
		return &zygo.SexpInt{Val: int64(st.controller.Session().SelectionCount())}, nil
	})

	// -----------------------------------------------------------------------
	// (mode :extrude) / (distance 1.5) / (tilt 45)
	// -----------------------------------------------------------------------
	env.AddFunction("mode", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mode requires a mode keyword")
		}
		m, err := toToolMode(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mode: %w", err)
		}
		st.controller.SetMode(m)
		return zygo.SexpNull, nil
	})
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("distance requires a number")
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		st.controller.SetDistance(f)
		return zygo.SexpNull, nil
	})
	env.AddFunction("tilt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tilt requires an angle in degrees")
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tilt: %w", err)
		}
		st.controller.SetTilt(mgl64.DegToRad(f))
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (confirm) — applies the pending operation; true on commit, false on
	// a no-op (empty selection, zero distance, empty cut side).
	// -----------------------------------------------------------------------
	env.AddFunction("confirm", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		commit, _ := st.controller.Confirm()
		st.recordCommit(commit)
		return &zygo.SexpBool{Val: commit != nil}, nil
	})

	// -----------------------------------------------------------------------
	// (extrude :distance 1 :tilt 0) — convenience: set up and confirm.
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		st.controller.SetMode(tool.ModeExtrude)
		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: distance: %w", err)
			}
			st.controller.SetDistance(f)
		}
		if v, ok := pa.kw["tilt"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: tilt: %w", err)
			}
			st.controller.SetTilt(mgl64.DegToRad(f))
		}
		commit, reason := st.controller.Confirm()
		if commit == nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %s", reason)
		}
		st.recordCommit(commit)
		return &zygo.SexpBool{Val: true}, nil
	})

	// -----------------------------------------------------------------------
	// (cut) — convenience: cut the selection off and confirm.
	// -----------------------------------------------------------------------
	env.AddFunction("cut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		st.controller.SetMode(tool.ModeCut)
		commit, reason := st.controller.Confirm()
		if commit == nil {
			return zygo.SexpNull, fmt.Errorf("cut: %s", reason)
		}
		st.recordCommit(commit)
		return &zygo.SexpBool{Val: true}, nil
	})

	// -----------------------------------------------------------------------
	// (delete-selection) — removes the selected faces outright.
	// -----------------------------------------------------------------------
	env.AddFunction("delete_selection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		commit, reason := st.controller.Delete()
		if commit == nil {
			return zygo.SexpNull, fmt.Errorf("delete-selection: %s", reason)
		}
		st.recordCommit(commit)
		return &zygo.SexpBool{Val: true}, nil
	})
}
