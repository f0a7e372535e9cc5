package formats

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMTL_DiffuseTexture(t *testing.T) {
	src := `# exported material
newmtl brick
Ka 1.000 1.000 1.000
Kd 0.640 0.640 0.640
map_Kd textures/brick.ppm
`
	mat, err := ParseMTL([]byte(src), "models")
	if err != nil {
		t.Fatalf("failed to parse MTL: %v", err)
	}

	if mat.Name != "brick" {
		t.Errorf("name: got %q, want %q", mat.Name, "brick")
	}
	if mat.DiffuseTexture != "textures/brick.ppm" {
		t.Errorf("diffuse texture: got %q", mat.DiffuseTexture)
	}
	want := filepath.Join("models", "textures", "brick.ppm")
	if mat.DiffusePath != want {
		t.Errorf("diffuse path: got %q, want %q", mat.DiffusePath, want)
	}
	if !mat.HasDiffuseTexture() {
		t.Error("expected HasDiffuseTexture to be true")
	}
}

func TestParseMTL_NoDiffuseMap(t *testing.T) {
	mat, err := ParseMTL([]byte("newmtl plain\nKd 0.5 0.5 0.5\n"), ".")
	if err != nil {
		t.Fatalf("failed to parse MTL: %v", err)
	}
	if mat.Name != "plain" {
		t.Errorf("name: got %q, want %q", mat.Name, "plain")
	}
	if mat.HasDiffuseTexture() {
		t.Errorf("expected no diffuse texture, got %q", mat.DiffusePath)
	}
}

func TestParseMTLFile_ResolvesAgainstOwnDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.mtl")
	if err := os.WriteFile(path, []byte("newmtl a\nmap_Kd a.ppm\n"), 0644); err != nil {
		t.Fatalf("failed to write MTL: %v", err)
	}

	mat, err := ParseMTLFile(path)
	if err != nil {
		t.Fatalf("failed to parse MTL file: %v", err)
	}
	if want := filepath.Join(dir, "a.ppm"); mat.DiffusePath != want {
		t.Errorf("diffuse path: got %q, want %q", mat.DiffusePath, want)
	}
}

func TestParseMTLFile_Missing(t *testing.T) {
	_, err := ParseMTLFile(filepath.Join(t.TempDir(), "nope.mtl"))
	if err == nil {
		t.Error("expected error for missing MTL file")
	}
}
