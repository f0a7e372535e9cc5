package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Material is a decoded material library entry. Only a single material per
// mesh is tracked, and only the diffuse texture map is consumed.
type Material struct {
	Name           string
	DiffuseTexture string // map_Kd value as written in the file
	DiffusePath    string // deferred texture path, resolved against the MTL's directory
}

// ParseMTL decodes MTL data. dir is the directory used to resolve the
// diffuse texture path (pass the directory the MTL file came from).
// The image itself is never opened here; decoding it is deferred until the
// caller has somewhere to put the pixels.
func ParseMTL(data []byte, dir string) (*Material, error) {
	mat := &Material{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) < 2 {
			continue
		}
		switch string(fields[0]) {
		case "newmtl":
			mat.Name = string(fields[1])
		case "map_Kd":
			mat.DiffuseTexture = string(fields[1])
			mat.DiffusePath = filepath.Join(dir, mat.DiffuseTexture)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL data: %w", err)
	}

	return mat, nil
}

// ParseMTLFile decodes an MTL file from disk. The diffuse texture path is
// resolved relative to the file's own directory.
func ParseMTLFile(path string) (*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data, filepath.Dir(path))
}

// HasDiffuseTexture reports whether the material references a diffuse map.
func (m *Material) HasDiffuseTexture() bool {
	return m.DiffusePath != ""
}
