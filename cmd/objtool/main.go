// objtool is a CLI utility for inspecting OBJ meshes and their PPM textures.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshtools/objkit/internal/config"
	"github.com/meshtools/objkit/internal/export"
	"github.com/meshtools/objkit/internal/logger"
	"github.com/meshtools/objkit/internal/model"
	"github.com/meshtools/objkit/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(os.Getenv("OBJKIT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "texture", "tex":
		cmdTexture(cfg, args)
	case "ppm":
		cmdPPM(args)
	case "simplify":
		cmdSimplify(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - OBJ mesh and PPM texture utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                        Show mesh information
  texture <file.obj> [-o out] [-max N]   Decode the deferred texture and export WebP
  ppm <file.ppm>                         Show PPM image information
  simplify <in.obj> <out.obj> [-factor F]  Reduce triangle count

Examples:
  objtool info models/crate.obj
  objtool texture models/crate.obj -o crate.webp -max 512
  objtool ppm textures/crate.ppm
  objtool simplify models/crate.obj crate_low.obj -factor 0.25

Configuration is read from ./objkit.yaml or the user config directory;
set OBJKIT_CONFIG to use an explicit file.`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	m, err := model.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	min, max := m.Bounds()

	fmt.Printf("Mesh:       %s\n", args[0])
	fmt.Printf("Triangles:  %d\n", m.TriangleCount())
	fmt.Printf("Vertices:   %d (flattened)\n", m.TriangleCount()*3)
	fmt.Printf("Buffer:     %d floats\n", len(m.VertexData()))
	fmt.Printf("Bounds min: (%.3f, %.3f, %.3f)\n", min[0], min[1], min[2])
	fmt.Printf("Bounds max: (%.3f, %.3f, %.3f)\n", max[0], max[1], max[2])

	if mat := m.Material(); mat != nil {
		fmt.Printf("Material:   %s\n", mat.Name)
		if mat.HasDiffuseTexture() {
			fmt.Printf("Diffuse:    %s\n", mat.DiffuseTexture)
		}
	} else {
		fmt.Println("Material:   (none)")
	}
	fmt.Printf("Texture pending: %v\n", m.HasPendingTexture())
}

func cmdTexture(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	output := fs.String("o", "", "Output WebP path (default: mesh name with .webp)")
	maxSize := fs.Int("max", cfg.Export.MaxTextureSize, "Longest edge in pixels (0 = original size)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool texture <file.obj> [-o out.webp] [-max N]")
		os.Exit(1)
	}
	meshPath := fs.Arg(0)

	m, err := model.Load(meshPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !m.HasPendingTexture() {
		fmt.Fprintf(os.Stderr, "Mesh has no texture: %s\n", meshPath)
		os.Exit(1)
	}

	ppm, err := m.LoadPendingTexture()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := *output
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(meshPath), filepath.Ext(meshPath))
		out = filepath.Join(cfg.Export.OutputDir, base+".webp")
	}

	if err := export.WriteWebP(ppm, out, *maxSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported: %s (%dx%d source)\n", out, ppm.Width, ppm.Height)
}

func cmdPPM(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool ppm <file.ppm>")
		os.Exit(1)
	}

	ppm, err := formats.ParsePPMFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	variant := "P3 (ASCII)"
	if ppm.Binary {
		variant = "P6 (binary)"
	}
	fmt.Printf("Image:      %s\n", args[0])
	fmt.Printf("Format:     %s\n", variant)
	fmt.Printf("Size:       %dx%d\n", ppm.Width, ppm.Height)
	fmt.Printf("Max value:  %d\n", ppm.MaxValue)
	fmt.Printf("Pixel data: %d bytes (bottom-to-top, BGR)\n", len(ppm.Pixels))
}

func cmdSimplify(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("simplify", flag.ExitOnError)
	factor := fs.Float64("factor", cfg.Simplify.Factor, "Target triangle fraction (0 < factor <= 1)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool simplify <in.obj> <out.obj> [-factor F]")
		os.Exit(1)
	}
	if *factor <= 0 || *factor > 1 {
		fmt.Fprintf(os.Stderr, "Invalid factor %f: must be in (0, 1]\n", *factor)
		os.Exit(1)
	}

	m, err := model.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tris := m.Simplify(*factor)
	if err := writeOBJ(fs.Arg(1), tris); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Simplified: %d -> %d triangles (%s)\n", m.TriangleCount(), len(tris), fs.Arg(1))
}

// writeOBJ writes triangles as a minimal OBJ (v/vn/f lines, flattened
// vertices, no shared indexing).
func writeOBJ(path string, tris []formats.Triangle) error {
	var sb strings.Builder
	for i := range tris {
		for _, v := range tris[i].Vertices {
			fmt.Fprintf(&sb, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
			fmt.Fprintf(&sb, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
	}
	for i := range tris {
		base := i*3 + 1
		fmt.Fprintf(&sb, "f %d//%d %d//%d %d//%d\n", base, base, base+1, base+1, base+2, base+2)
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}
